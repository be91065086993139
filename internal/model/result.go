package model

import (
	"encoding/json"
	"errors"
)

// Result is the outcome of processing one file: the transactions in row
// order, or a single error. Never both.
type Result struct {
	Transactions []Transaction
	Err          error
}

// Success wraps txns. A nil slice becomes empty so it marshals as [].
func Success(txns []Transaction) Result {
	if txns == nil {
		txns = []Transaction{}
	}
	return Result{Transactions: txns}
}

// Failure wraps err. A nil err is replaced so the result still reads as a failure.
func Failure(err error) Result {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result{Err: err}
}

// OK reports whether the result carries transactions.
func (r Result) OK() bool { return r.Err == nil }

type errorBody struct {
	Error string `json:"error"`
}

// MarshalJSON renders a JSON array of transactions on success and
// {"error": "<message>"} on failure.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(errorBody{Error: r.Err.Error()})
	}
	txns := r.Transactions
	if txns == nil {
		txns = []Transaction{}
	}
	return json.Marshal(txns)
}
