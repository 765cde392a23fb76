package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/finlit/finlit"
)

// BudgetSalary is the monthly income of the budget challenge.
var BudgetSalary = finlit.Rupees(25_000)

// BudgetMonths is how long the challenge runs.
const BudgetMonths = 3

// Allocation splits the salary across spending categories. Savings stay in
// the wallet; every other category is debited each month.
type Allocation struct {
	Rent      finlit.Money
	Food      finlit.Money
	Transport finlit.Money
	Savings   finlit.Money
	Fun       finlit.Money
}

// DefaultAllocation is the starting split offered to the player.
func DefaultAllocation() Allocation {
	return Allocation{
		Rent:      finlit.Rupees(8000),
		Food:      finlit.Rupees(5000),
		Transport: finlit.Rupees(2000),
		Savings:   finlit.Rupees(5000),
		Fun:       finlit.Rupees(5000),
	}
}

// Total sums every category.
func (a Allocation) Total() finlit.Money {
	return a.Rent.Add(a.Food).Add(a.Transport).Add(a.Savings).Add(a.Fun)
}

// Spent is the part of the allocation that leaves the wallet each month.
func (a Allocation) Spent() finlit.Money {
	return a.Total().Sub(a.Savings)
}

func budgetEvents(month int) []Event {
	switch month {
	case 1:
		return []Event{
			{Text: "Medical emergency - need ₹3,000", Cost: finlit.Rupees(3000), Category: "emergency"},
			{Text: "Car repair - ₹2,500", Cost: finlit.Rupees(2500), Category: "emergency"},
		}
	case 2:
		return []Event{
			{Text: "Friend's wedding - gift ₹5,000", Cost: finlit.Rupees(5000), Category: "social"},
			{Text: "Phone upgrade temptation - ₹8,000", Cost: finlit.Rupees(8000), Category: "want"},
		}
	case 3:
		return []Event{
			{Text: "Laptop needed for work - ₹15,000", Cost: finlit.Rupees(15_000), Category: "need"},
			{Text: "Home appliance broke - ₹6,000", Cost: finlit.Rupees(6000), Category: "emergency"},
		}
	}
	return nil
}

// NewBudgetChallenge builds a three-month budgeting session: the salary
// lands every month, the allocated spending (everything but savings) is
// debited every month, and each month throws exactly one surprise at the
// player. The allocation must spend the whole salary, no more, no less.
func NewBudgetChallenge(state *finlit.State, rng *rand.Rand, alloc Allocation) (*Session, error) {
	if !alloc.Total().Equal(BudgetSalary) {
		return nil, fmt.Errorf("allocation %s must equal the %s salary", alloc.Total(), BudgetSalary)
	}
	cfg := Config{
		Kind:             "budget",
		Periods:          BudgetMonths,
		EventProbability: 1.0,
		Events:           budgetEvents,
		OnPeriodStart: func(s *Session) error {
			_, err := s.Wallet().Credit(BudgetSalary, fmt.Sprintf("month %d salary", s.Period()))
			return err
		},
		OnPeriodEnd: func(s *Session) error {
			_, err := s.Wallet().Debit(alloc.Spent(), fmt.Sprintf("month %d living costs", s.Period()))
			return err
		},
		Summarize: func(s *Session, sum *Summary) {
			switch {
			case sum.NetChange.IsNegative():
				sum.Grade = "F"
			case sum.NetChange.GreaterThanOrEqual(finlit.Rupees(12_000)):
				sum.Grade = "A"
			case sum.NetChange.GreaterThanOrEqual(finlit.Rupees(9000)):
				sum.Grade = "B"
			case sum.NetChange.GreaterThanOrEqual(finlit.Rupees(6000)):
				sum.Grade = "C"
			default:
				sum.Grade = "D"
			}
			sum.Remarks = append(sum.Remarks,
				fmt.Sprintf("saved %s over %d months against a %s savings plan",
					sum.NetChange, BudgetMonths, alloc.Savings.Mul(finlit.Q(BudgetMonths))))
		},
		Pacing: time.Second,
	}
	return New(cfg, state, rng), nil
}
