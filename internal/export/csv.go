// Package export writes normalized transactions as CSV, an alternative to
// the JSON array for spreadsheet users.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smartspend-dev/spendcsv/internal/model"
)

// Header is the CSV header, in the JSON key order.
const Header = "date,description,amount,isExpense,category,merchant,originalDescription"

const (
	numFields    = 7
	colDate      = 0
	colDesc      = 1
	colAmount    = 2
	colIsExpense = 3
	colCategory  = 4
	colMerchant  = 5
	colOrigDesc  = 6
)

// WriteTransactions writes txns to w, header first.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date
	row[colDesc] = txn.Description
	row[colAmount] = strconv.FormatFloat(txn.Amount, 'f', -1, 64)
	row[colIsExpense] = strconv.FormatBool(txn.IsExpense)
	row[colCategory] = string(txn.Category)
	row[colMerchant] = txn.Merchant
	row[colOrigDesc] = txn.OriginalDescription
	return row
}
