package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/finlit/finlit"
	"github.com/shopspring/decimal"
)

// Item is something the loan walkthrough buys on credit.
type Item struct {
	ID    string
	Name  string
	Price finlit.Money
}

// LoanItems is the walkthrough's shopping catalog.
func LoanItems() []Item {
	return []Item{
		{ID: "bike", Name: "Bike", Price: finlit.Rupees(30_000)},
		{ID: "phone", Name: "Smartphone", Price: finlit.Rupees(50_000)},
		{ID: "laptop", Name: "Laptop", Price: finlit.Rupees(80_000)},
	}
}

// LoanItem returns the catalog item with the given id.
func LoanItem(id string) (Item, error) {
	for _, it := range LoanItems() {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("unknown item %q", id)
}

// Walkthrough economics.
var (
	LoanSalary = finlit.Rupees(20_000)
	LoanRate   = decimal.NewFromInt(12) // annual percent
)

// LoanTenures are the offered repayment horizons in months.
var LoanTenures = []int{6, 12, 24}

func loanEvents() []Event {
	return []Event{
		{Text: "Phone screen cracked! Repair needed", Cost: finlit.Rupees(2000), Category: "emergency"},
		{Text: "Electricity bill arrived", Cost: finlit.Rupees(1500), Category: "bill"},
		{Text: "Birthday gift for friend", Cost: finlit.Rupees(1000), Category: "social"},
		{Text: "Medical checkup required", Cost: finlit.Rupees(2500), Category: "emergency"},
		{Text: "Car/Bike repair", Cost: finlit.Rupees(3000), Category: "emergency"},
		{Text: "Internet bill due", Cost: finlit.Rupees(800), Category: "bill"},
		{Text: "Groceries needed", Cost: finlit.Rupees(4000), Category: "essential"},
	}
}

// NewLoanWalkthrough builds a session that buys item on a loan and lives
// with the EMI for the whole tenure: a salary lands every month, the EMI is
// debited every month, and surprise expenses interrupt roughly half the
// months.
func NewLoanWalkthrough(state *finlit.State, rng *rand.Rand, item Item, months int) *Session {
	var loanID string
	cfg := Config{
		Kind:             "loan",
		Periods:          months,
		EventProbability: 0.5,
		Events: func(period int) []Event {
			// the last month is a clean run to the finish line
			if period >= months {
				return nil
			}
			return loanEvents()
		},
		Begin: func(s *Session) error {
			ln, err := s.State().Loans.Take(item.Price, LoanRate, months, item.Name)
			if err != nil {
				return err
			}
			loanID = ln.ID
			return nil
		},
		OnPeriodStart: func(s *Session) error {
			_, err := s.Wallet().Credit(LoanSalary, "monthly salary")
			return err
		},
		OnPeriodEnd: func(s *Session) error {
			_, _, _, err := s.State().Loans.AdvancePeriod(loanID)
			return err
		},
		Summarize: func(s *Session, sum *Summary) {
			emi := finlit.ComputeEMI(item.Price, LoanRate, months)
			interest := emi.Mul(finlit.Q(months)).Sub(item.Price)
			// worth it when nothing was missed and the interest stayed
			// under a fifth of the price
			limit := item.Price.Mul(finlit.Q(20)).Div(finlit.Q(100))
			switch {
			case sum.MissedPayments == 0 && interest.LessThan(limit):
				sum.Grade = "A"
			case sum.MissedPayments == 0:
				sum.Grade = "B"
			default:
				sum.Grade = "D"
			}
			sum.Remarks = append(sum.Remarks,
				fmt.Sprintf("EMI %s for %d months, %s interest on a %s %s", emi, months, interest, item.Price, item.Name))
		},
		Pacing: 2 * time.Second,
	}
	return New(cfg, state, rng)
}
