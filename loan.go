package finlit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnknownLoan reports an id that matches no active loan.
var ErrUnknownLoan = errors.New("unknown loan")

// ComputeEMI returns the fixed monthly instalment for a loan of principal
// repaid over months at annualRatePercent per annum, rounded to whole
// rupees.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)   with r = rate/1200
//
// A zero rate degenerates to a straight principal split.
func ComputeEMI(principal Money, annualRatePercent decimal.Decimal, months int) Money {
	if months <= 0 {
		return Rupees(0)
	}
	if annualRatePercent.IsZero() {
		return principal.Div(Q(months)).Round()
	}
	r := annualRatePercent.Div(decimal.NewFromInt(1200))
	pow := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(months)))
	num := principal.value.Mul(r).Mul(pow)
	den := pow.Sub(decimal.NewFromInt(1))
	return M(num.Div(den), principal.cur).Round()
}

// Loan is one active amortized loan.
type Loan struct {
	ID        string
	Reason    string
	Principal Money
	Rate      decimal.Decimal // annual percent
	Months    int             // original tenure
	EMI       Money
	Remaining int // instalments left
	Missed    int // instalments that overdrew the wallet
}

// TotalPayable returns EMI times the original tenure.
func (ln Loan) TotalPayable() Money { return ln.EMI.Mul(Q(ln.Months)) }

// TotalInterest returns what the loan costs over the principal.
func (ln Loan) TotalInterest() Money { return ln.TotalPayable().Sub(ln.Principal) }

// LoanBook tracks active loans against a single wallet.
type LoanBook struct {
	wallet *Ledger
	loans  []Loan

	// newID is swappable in tests for stable ids.
	newID func() string
}

// NewLoanBook creates an empty book over the given wallet.
func NewLoanBook(wallet *Ledger) *LoanBook {
	return &LoanBook{wallet: wallet, newID: func() string { return uuid.NewString() }}
}

// Active returns the active loans in disbursal order.
func (b *LoanBook) Active() []Loan { return b.loans }

// Loan returns the active loan with the given id, or nil.
func (b *LoanBook) Loan(id string) *Loan {
	for i := range b.loans {
		if b.loans[i].ID == id {
			return &b.loans[i]
		}
	}
	return nil
}

// Take disburses a loan: the principal is credited to the wallet and the
// loan joins the book with its full tenure remaining.
func (b *LoanBook) Take(principal Money, annualRatePercent decimal.Decimal, months int, reason string) (Loan, error) {
	if !principal.IsPositive() {
		return Loan{}, fmt.Errorf("loan of %s: principal must be positive", principal)
	}
	if months <= 0 {
		return Loan{}, fmt.Errorf("loan over %d months: tenure must be positive", months)
	}
	ln := Loan{
		ID:        b.newID(),
		Reason:    reason,
		Principal: principal.Round(),
		Rate:      annualRatePercent,
		Months:    months,
		EMI:       ComputeEMI(principal, annualRatePercent, months),
		Remaining: months,
	}
	if _, err := b.wallet.Credit(ln.Principal, "loan disbursed: "+reason); err != nil {
		return Loan{}, err
	}
	b.loans = append(b.loans, ln)
	return ln, nil
}

// AdvancePeriod debits one EMI for the loan with the given id and decrements
// its remaining tenure. The debit always goes through; when it overdraws the
// wallet the instalment counts as missed. The loan leaves the book when the
// last instalment is paid, reported by closed.
func (b *LoanBook) AdvancePeriod(id string) (paid Transaction, missed, closed bool, err error) {
	idx := -1
	for i := range b.loans {
		if b.loans[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Transaction{}, false, false, fmt.Errorf("loan %q: %w", id, ErrUnknownLoan)
	}
	ln := &b.loans[idx]
	paid, err = b.wallet.Debit(ln.EMI, "EMI: "+ln.Reason)
	if err != nil {
		return Transaction{}, false, false, err
	}
	if paid.BalanceAfter.IsNegative() {
		missed = true
		ln.Missed++
	}
	ln.Remaining--
	if ln.Remaining <= 0 {
		b.loans = append(b.loans[:idx], b.loans[idx+1:]...)
		closed = true
	}
	return paid, missed, closed, nil
}

// AdvanceAll advances every active loan by one period and reports how many
// instalments overdrew the wallet.
func (b *LoanBook) AdvanceAll() (missedCount int, err error) {
	// snapshot ids first, AdvancePeriod may remove closed loans
	ids := make([]string, 0, len(b.loans))
	for _, ln := range b.loans {
		ids = append(ids, ln.ID)
	}
	for _, id := range ids {
		_, missed, _, aerr := b.AdvancePeriod(id)
		if aerr != nil {
			return missedCount, aerr
		}
		if missed {
			missedCount++
		}
	}
	return missedCount, nil
}
