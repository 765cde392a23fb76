package finlit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime selects an Indian income-tax regime.
type Regime string

const (
	// NewRegime is the FY 2023-24 default regime: more slabs, no deductions.
	NewRegime Regime = "new"
	// OldRegime is the simplified pre-2020 regime: fewer slabs, deductions
	// allowed, section 87A rebate.
	OldRegime Regime = "old"
)

// ParseRegime parses a string into a Regime.
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case NewRegime, OldRegime:
		return Regime(s), nil
	default:
		return "", fmt.Errorf("unknown tax regime: %q", s)
	}
}

// slab taxes the income above From at Percent, up to the next slab's From.
type slab struct {
	From    Money
	Percent int64
}

var newSlabs = []slab{
	{Rupees(0), 0},
	{Rupees(300_000), 5},
	{Rupees(600_000), 10},
	{Rupees(900_000), 15},
	{Rupees(1_200_000), 20},
	{Rupees(1_500_000), 30},
}

var oldSlabs = []slab{
	{Rupees(0), 0},
	{Rupees(250_000), 5},
	{Rupees(500_000), 20},
}

// rebateCap87A zeroes the old-regime tax for taxable income up to ₹5,00,000.
var (
	rebateThreshold = Rupees(500_000)
	rebateCap       = Rupees(12_500)
)

const cessPercent = 4

// ComputeTax returns the income tax on taxable income under the given
// regime, including the 4% health-and-education cess, rounded to whole
// rupees. Negative input is treated as zero.
func ComputeTax(taxable Money, regime Regime) Money {
	if taxable.IsNegative() {
		taxable = Rupees(0)
	}
	slabs := newSlabs
	if regime == OldRegime {
		slabs = oldSlabs
	}
	base := slabTax(taxable, slabs)
	if regime == OldRegime && taxable.LessThanOrEqual(rebateThreshold) {
		base = base.Sub(base.Min(rebateCap))
	}
	cess := decimal.NewFromInt(100 + cessPercent).Div(decimal.NewFromInt(100))
	return base.Mul(Q(cess)).Round()
}

func slabTax(taxable Money, slabs []slab) Money {
	tax := Rupees(0)
	for i, s := range slabs {
		if !taxable.GreaterThan(s.From) {
			break
		}
		top := taxable
		if i+1 < len(slabs) && slabs[i+1].From.LessThan(taxable) {
			top = slabs[i+1].From
		}
		portion := top.Sub(s.From)
		tax = tax.Add(portion.Mul(Q(s.Percent)).Div(Q(100)))
	}
	return tax
}

// TaxBreakdown is the advisory view of a tax computation.
type TaxBreakdown struct {
	Regime        Regime
	Gross         Money
	Deductions    Money
	Taxable       Money
	Tax           Money
	Net           Money
	EffectiveRate decimal.Decimal // percent of gross
}

// NewTaxBreakdown computes the full position for a gross annual income with
// deductions. Deductions only reduce taxable income under the old regime.
func NewTaxBreakdown(gross, deductions Money, regime Regime) TaxBreakdown {
	taxable := gross
	if regime == OldRegime {
		taxable = gross.Sub(deductions)
	}
	if taxable.IsNegative() {
		taxable = Rupees(0)
	}
	tax := ComputeTax(taxable, regime)
	b := TaxBreakdown{
		Regime:     regime,
		Gross:      gross,
		Deductions: deductions,
		Taxable:    taxable,
		Tax:        tax,
		Net:        gross.Sub(tax),
	}
	if gross.IsPositive() {
		b.EffectiveRate = tax.value.Div(gross.value).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return b
}

// MonthlySurplus is what remains each month after tax and deductions.
func (b TaxBreakdown) MonthlySurplus() Money {
	return b.Net.Sub(b.Deductions).Div(Q(12)).Round()
}
