package finlit

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRetention is the number of transactions the wallet log keeps.
const DefaultRetention = 50

// ErrInsufficientFunds reports a blocked purchase. It is returned by
// operations that refuse to overdraw, never by Debit itself: mandatory
// debits (EMIs, bills) go through and leave the balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger is the wallet: a single running balance plus a bounded log of the
// most recent transactions, newest first.
//
// Debits never fail on balance grounds. A negative balance is a modeled
// outcome the simulations grade on, not an error.
type Ledger struct {
	balance   Money
	log       []Transaction
	retention int

	// now is the transaction clock, swappable in tests.
	now func() time.Time
}

// NewLedger creates a wallet with the given opening balance and the default
// log retention.
func NewLedger(opening Money) *Ledger {
	return &Ledger{balance: opening, retention: DefaultRetention, now: time.Now}
}

// SetRetention changes how many log entries the wallet keeps. Values below 1
// are ignored.
func (l *Ledger) SetRetention(n int) {
	if n < 1 {
		return
	}
	l.retention = n
	l.truncate()
}

// Balance returns the current wallet balance.
func (l *Ledger) Balance() Money { return l.balance }

// Log returns the recorded transactions, newest first.
func (l *Ledger) Log() []Transaction { return l.log }

// Credit adds amount to the wallet and records the entry.
// The amount must be strictly positive.
func (l *Ledger) Credit(amount Money, reason string) (Transaction, error) {
	return l.append(Credit, amount, reason)
}

// Debit removes amount from the wallet and records the entry. The amount
// must be strictly positive; the resulting balance may be negative.
func (l *Ledger) Debit(amount Money, reason string) (Transaction, error) {
	return l.append(Debit, amount, reason)
}

func (l *Ledger) append(kind TxKind, amount Money, reason string) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%s of %s: amount must be positive", kind, amount)
	}
	before := l.balance
	after := before.Add(amount.Round())
	if kind == Debit {
		after = before.Sub(amount.Round())
	}
	tx := Transaction{
		Kind:          kind,
		Amount:        amount.Round(),
		Reason:        reason,
		BalanceBefore: before,
		BalanceAfter:  after,
		Time:          l.now().Truncate(time.Second), // the log stores second precision
	}
	l.balance = after
	l.log = append([]Transaction{tx}, l.log...)
	l.truncate()
	return tx, nil
}

func (l *Ledger) truncate() {
	if len(l.log) > l.retention {
		l.log = l.log[:l.retention]
	}
}

// Spend is a checked debit: it refuses with ErrInsufficientFunds when the
// wallet cannot cover the amount, leaving balance and log untouched.
func (l *Ledger) Spend(amount Money, reason string) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("spend of %s: amount must be positive", amount)
	}
	if l.balance.LessThan(amount.Round()) {
		return Transaction{}, fmt.Errorf("spend of %s with balance %s: %w", amount, l.balance, ErrInsufficientFunds)
	}
	return l.Debit(amount, reason)
}
