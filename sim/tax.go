package sim

import (
	"fmt"
	"time"

	"github.com/finlit/finlit"
)

// DefaultTaxIncome is the planner's gross annual income when the player
// does not supply one.
var DefaultTaxIncome = finlit.Rupees(800_000)

// TaxDecision is one scripted tax-saving opportunity in the financial year.
type TaxDecision struct {
	Month      string
	Text       string
	Instrument string
	Section    string
	Amount     finlit.Money
}

// TaxPlanScript is the fixed sequence of opportunities, one per scripted
// month.
func TaxPlanScript() []TaxDecision {
	return []TaxDecision{
		{"April", "Open a PPF account and deposit for the year", "PPF", "80C", finlit.Rupees(30_000)},
		{"June", "Buy health insurance for the family", "Health Insurance", "80D", finlit.Rupees(25_000)},
		{"September", "Invest a lump sum in an ELSS mutual fund", "ELSS", "80C", finlit.Rupees(40_000)},
		{"December", "Pay the annual life insurance premium", "LIC", "80C", finlit.Rupees(20_000)},
		{"February", "Top up the NPS account before year end", "NPS", "80CCD", finlit.Rupees(35_000)},
	}
}

// TaxChoiceRecord is a resolved planner decision.
type TaxChoiceRecord struct {
	TaxDecision
	Invested bool
}

// TaxPlanner walks the financial year as a decision tree: the regime is
// locked in up front, then each scripted month offers a tax-saving
// instrument to take or skip. Deductions only count under the old regime;
// under the new one the same choices build savings but shave nothing off
// the bill, which is the lesson.
type TaxPlanner struct {
	state  *finlit.State
	regime finlit.Regime
	income finlit.Money
	script []TaxDecision
	idx    int

	deductions finlit.Money
	choices    []TaxChoiceRecord
	summary    *Summary
}

// NewTaxPlanner locks in the regime and income for the year.
func NewTaxPlanner(state *finlit.State, regime finlit.Regime, grossAnnualIncome finlit.Money) *TaxPlanner {
	if !grossAnnualIncome.IsPositive() {
		grossAnnualIncome = DefaultTaxIncome
	}
	return &TaxPlanner{
		state:      state,
		regime:     regime,
		income:     grossAnnualIncome,
		script:     TaxPlanScript(),
		deductions: finlit.Rupees(0),
	}
}

// Regime returns the regime locked in for the run.
func (p *TaxPlanner) Regime() finlit.Regime { return p.regime }

// Deductions returns the deductions accumulated so far. Always zero under
// the new regime.
func (p *TaxPlanner) Deductions() finlit.Money { return p.deductions }

// Choices returns the decisions resolved so far.
func (p *TaxPlanner) Choices() []TaxChoiceRecord { return p.choices }

// Current returns the decision awaiting a choice, nil when the year is
// played out.
func (p *TaxPlanner) Current() *TaxDecision {
	if p.idx >= len(p.script) {
		return nil
	}
	return &p.script[p.idx]
}

// Invest resolves the current decision. Taking the instrument accumulates
// its amount as a deduction under the old regime only.
func (p *TaxPlanner) Invest(yes bool) error {
	d := p.Current()
	if d == nil {
		return fmt.Errorf("invest: no decision pending")
	}
	if yes && p.regime == finlit.OldRegime {
		p.deductions = p.deductions.Add(d.Amount)
	}
	p.choices = append(p.choices, TaxChoiceRecord{TaxDecision: *d, Invested: yes})
	choice := "skip"
	if yes {
		choice = "invest"
	}
	p.state.Decide(finlit.Decision{
		Simulation: "tax",
		Period:     p.idx + 1,
		Choice:     fmt.Sprintf("%s: %s (%s %s)", choice, d.Instrument, d.Section, d.Amount),
		Time:       time.Now(),
	})
	p.idx++
	return nil
}

// Breakdown computes the year's tax position as played so far.
func (p *TaxPlanner) Breakdown() finlit.TaxBreakdown {
	return finlit.NewTaxBreakdown(p.income, p.deductions, p.regime)
}

// Finish grades the played year once every decision is resolved. The grade
// compares the regime the player locked in against what the other regime
// would have cost with the same choices.
func (p *TaxPlanner) Finish() (*Summary, error) {
	if p.Current() != nil {
		return nil, fmt.Errorf("finish: %d decisions still pending", len(p.script)-p.idx)
	}
	if p.summary != nil {
		return p.summary, nil
	}

	b := p.Breakdown()
	invested := finlit.Rupees(0)
	for _, c := range p.choices {
		if c.Invested {
			invested = invested.Add(c.Amount)
		}
	}
	other := finlit.NewRegime
	otherDeductions := finlit.Rupees(0)
	if p.regime == finlit.NewRegime {
		other = finlit.OldRegime
		otherDeductions = invested
	}
	alt := finlit.NewTaxBreakdown(p.income, otherDeductions, other)

	sum := &Summary{
		Kind:         "tax",
		FinalBalance: b.Net,
		NetChange:    b.Tax.Neg(),
	}
	if b.Tax.LessThanOrEqual(alt.Tax) {
		sum.Grade = "A"
		sum.Remarks = append(sum.Remarks,
			fmt.Sprintf("the %s regime was the right call: %s tax vs %s under the %s regime", p.regime, b.Tax, alt.Tax, other))
	} else {
		sum.Grade = "C"
		sum.Remarks = append(sum.Remarks,
			fmt.Sprintf("the %s regime would have cost %s instead of %s", other, alt.Tax, b.Tax))
	}
	sum.Remarks = append(sum.Remarks,
		fmt.Sprintf("effective rate %s%%, monthly surplus %s", b.EffectiveRate, b.MonthlySurplus()))
	p.summary = sum
	p.state.CompleteSimulation("tax")
	return sum, nil
}
