package model

// Transaction is one normalized row of a bank export. Field order is the
// JSON key order the web backend reads.
type Transaction struct {
	Date                string   `json:"date"` // YYYY-MM-DD, or the raw cell when unparseable
	Description         string   `json:"description"`
	Amount              float64  `json:"amount"` // always >= 0
	IsExpense           bool     `json:"isExpense"`
	Category            Category `json:"category"`
	Merchant            string   `json:"merchant"`
	OriginalDescription string   `json:"originalDescription"`
}
