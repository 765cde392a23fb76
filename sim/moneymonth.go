package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/finlit/finlit"
	"github.com/shopspring/decimal"
)

// ErrNotEMIEligible reports an EMI request on a purchase below the
// threshold or not flagged for instalments.
var ErrNotEMIEligible = errors.New("EMI not available for this purchase")

// PayMethod is how a money-month expense gets paid.
type PayMethod string

const (
	PayCash   PayMethod = "cash"
	PayUPI    PayMethod = "upi"
	PayCredit PayMethod = "credit"
	PayEMI    PayMethod = "emi"
)

// ParsePayMethod parses a string into a PayMethod.
func ParsePayMethod(s string) (PayMethod, error) {
	switch PayMethod(s) {
	case PayCash, PayUPI, PayCredit, PayEMI:
		return PayMethod(s), nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", s)
	}
}

// Money-month economics.
var (
	MoneyMonthPocket = finlit.Rupees(10_000)
	// MinEMIPurchase gates instalment plans to larger purchases.
	MinEMIPurchase = finlit.Rupees(3000)
	// CreditCardAnnualRate is charged monthly on any unpaid credit bill.
	CreditCardAnnualRate = decimal.NewFromFloat(0.18)
	// adHocEMIMarkup is the surcharge on a 3-month split.
	adHocEMIMarkup = decimal.NewFromFloat(1.12)
	adHocEMIMonths = 3
)

// AdHocEMI splits a purchase over three months at a 12% surcharge and
// returns the monthly instalment, rounded to whole rupees.
func AdHocEMI(cost finlit.Money) finlit.Money {
	return cost.Div(finlit.Q(adHocEMIMonths)).Mul(finlit.Q(adHocEMIMarkup)).Round()
}

// Expense is one entry of the fixed money-month spending script.
type Expense struct {
	ID          int
	Text        string
	Cost        finlit.Money
	Category    string
	EMIEligible bool
}

// MoneyMonthExpenses is the script, presented strictly in order.
func MoneyMonthExpenses() []Expense {
	return []Expense{
		{1, "Lunch with friends", finlit.Rupees(300), "food", false},
		{2, "Auto to college", finlit.Rupees(150), "transport", false},
		{3, "Phone recharge", finlit.Rupees(500), "bill", false},
		{4, "Movie tickets", finlit.Rupees(400), "entertainment", false},
		{5, "Friend's birthday gift", finlit.Rupees(1500), "social", false},
		{6, "Internet bill", finlit.Rupees(600), "bill", false},
		{7, "New shoes", finlit.Rupees(2000), "shopping", false},
		{8, "Electricity bill", finlit.Rupees(1200), "bill", false},
		{9, "Phone screen repair", finlit.Rupees(3500), "emergency", true},
		{10, "Weekend trip", finlit.Rupees(4000), "social", true},
	}
}

// InstalmentPlan is a running 3-month split taken during the month.
type InstalmentPlan struct {
	Name      string
	Monthly   finlit.Money
	Remaining int
}

// MoneyMonth walks a fixed list of expenses, one payment-method decision
// each, then settles the month: instalments are debited, and the credit
// bill is paid off or carried at interest. It plays on its own pocket-money
// wallet, not the learner's main one.
type MoneyMonth struct {
	state    *finlit.State
	wallet   *finlit.Ledger
	expenses []Expense
	idx      int

	creditBill finlit.Money
	plans      []InstalmentPlan
	summary    *Summary
}

// NewMoneyMonth starts the month with the pocket-money wallet.
func NewMoneyMonth(state *finlit.State) *MoneyMonth {
	return &MoneyMonth{
		state:      state,
		wallet:     finlit.NewLedger(MoneyMonthPocket),
		expenses:   MoneyMonthExpenses(),
		creditBill: finlit.Rupees(0),
	}
}

// Wallet returns the pocket-money wallet the month plays on.
func (m *MoneyMonth) Wallet() *finlit.Ledger { return m.wallet }

// CreditBill returns the accrued unpaid credit-card amount.
func (m *MoneyMonth) CreditBill() finlit.Money { return m.creditBill }

// Plans returns the instalment plans taken so far.
func (m *MoneyMonth) Plans() []InstalmentPlan { return m.plans }

// Current returns the expense awaiting a payment choice, nil when the
// script is exhausted and the month is ready to settle.
func (m *MoneyMonth) Current() *Expense {
	if m.idx >= len(m.expenses) {
		return nil
	}
	return &m.expenses[m.idx]
}

// Pay settles the current expense with the chosen method. Cash and UPI are
// blocked when the wallet cannot cover the cost; credit accrues to the
// bill; EMI is gated to eligible purchases above the threshold. A blocked
// payment is a no-op: the expense stays current for another try.
func (m *MoneyMonth) Pay(method PayMethod) error {
	ex := m.Current()
	if ex == nil {
		return fmt.Errorf("pay: no expense pending")
	}
	switch method {
	case PayCash, PayUPI:
		if _, err := m.wallet.Spend(ex.Cost, ex.Text); err != nil {
			return err
		}
	case PayCredit:
		m.creditBill = m.creditBill.Add(ex.Cost)
	case PayEMI:
		if !ex.EMIEligible || ex.Cost.LessThan(MinEMIPurchase) {
			return fmt.Errorf("%s for %s: %w", ex.Text, ex.Cost, ErrNotEMIEligible)
		}
		m.plans = append(m.plans, InstalmentPlan{
			Name:      ex.Text,
			Monthly:   AdHocEMI(ex.Cost),
			Remaining: adHocEMIMonths,
		})
	default:
		return fmt.Errorf("unknown payment method: %q", method)
	}
	m.state.Decide(finlit.Decision{
		Simulation: "money-month",
		Period:     ex.ID,
		Choice:     string(method) + ": " + ex.Text,
		Time:       time.Now(),
	})
	m.idx++
	return nil
}

// Settle closes the month once every expense is decided: each instalment
// plan is debited once, then the credit bill is paid in full if the wallet
// covers it, otherwise whatever the wallet holds goes against it and the
// rest is carried forward with one month of interest.
func (m *MoneyMonth) Settle() (*Summary, error) {
	if m.Current() != nil {
		return nil, fmt.Errorf("settle: %d expenses still pending", len(m.expenses)-m.idx)
	}
	if m.summary != nil {
		return m.summary, nil
	}
	for i := range m.plans {
		if _, err := m.wallet.Debit(m.plans[i].Monthly, "instalment: "+m.plans[i].Name); err != nil {
			return nil, err
		}
		m.plans[i].Remaining--
	}
	var interest finlit.Money
	if m.creditBill.IsPositive() {
		if m.wallet.Balance().GreaterThanOrEqual(m.creditBill) {
			if _, err := m.wallet.Debit(m.creditBill, "credit card bill"); err != nil {
				return nil, err
			}
			m.creditBill = finlit.Rupees(0)
		} else {
			interest = m.creditBill.Mul(finlit.Q(CreditCardAnnualRate)).Div(finlit.Q(12)).Round()
			payment := m.wallet.Balance().Min(m.creditBill)
			if payment.IsNegative() {
				payment = finlit.Rupees(0) // an overdrawn wallet pays nothing
			}
			if payment.IsPositive() {
				if _, err := m.wallet.Debit(payment, "credit card bill (partial)"); err != nil {
					return nil, err
				}
			}
			m.creditBill = m.creditBill.Sub(payment).Add(interest)
		}
	}

	sum := &Summary{
		Kind:         "money-month",
		StartBalance: MoneyMonthPocket,
		FinalBalance: m.wallet.Balance(),
		NetChange:    m.wallet.Balance().Sub(MoneyMonthPocket),
	}
	switch {
	case m.creditBill.IsZero() && !m.wallet.Balance().IsNegative():
		sum.Grade = "A"
	case m.creditBill.IsZero():
		sum.Grade = "C"
	default:
		sum.Grade = "D"
		sum.Remarks = append(sum.Remarks,
			fmt.Sprintf("carried a %s credit bill into next month (%s interest charged)", m.creditBill, interest))
	}
	if len(m.plans) > 0 {
		sum.Remarks = append(sum.Remarks, fmt.Sprintf("%d instalment plans still running", len(m.plans)))
	}
	m.summary = sum
	m.state.CompleteSimulation("money-month")
	return sum, nil
}
