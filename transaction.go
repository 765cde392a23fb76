package finlit

import (
	"encoding/json"
	"time"
)

// TxKind is a typed string for identifying ledger transaction kinds.
type TxKind string

// Transaction kinds recorded in the wallet ledger.
const (
	Credit TxKind = "credit"
	Debit  TxKind = "debit"
)

// Transaction is one immutable entry in the wallet log. Amount is always
// positive; the kind tells the direction. BalanceBefore and BalanceAfter
// snapshot the wallet around the entry so the log can be audited without
// replaying it.
type Transaction struct {
	Kind          TxKind
	Amount        Money
	Reason        string
	BalanceBefore Money
	BalanceAfter  Money
	Time          time.Time
}

// Signed returns the transaction amount with its direction applied.
func (t Transaction) Signed() Money {
	if t.Kind == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Equal(o Transaction) bool {
	return t.Kind == o.Kind &&
		t.Amount.Equal(o.Amount) &&
		t.Reason == o.Reason &&
		t.BalanceBefore.Equal(o.BalanceBefore) &&
		t.BalanceAfter.Equal(o.BalanceAfter) &&
		t.Time.Equal(o.Time)
}

// MarshalJSON writes transactions with a fixed field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("kind", t.Kind).
		Append("amount", t.Amount).
		Append("reason", t.Reason).
		Append("balanceBefore", t.BalanceBefore).
		Append("balanceAfter", t.BalanceAfter).
		Append("time", t.Time.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind          TxKind `json:"kind"`
		Amount        Money  `json:"amount"`
		Reason        string `json:"reason"`
		BalanceBefore Money  `json:"balanceBefore"`
		BalanceAfter  Money  `json:"balanceAfter"`
		Time          string `json:"time"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	when, err := time.Parse(time.RFC3339, raw.Time)
	if err != nil {
		return err
	}
	*t = Transaction{
		Kind:          raw.Kind,
		Amount:        raw.Amount,
		Reason:        raw.Reason,
		BalanceBefore: raw.BalanceBefore,
		BalanceAfter:  raw.BalanceAfter,
		Time:          when,
	}
	return nil
}
