package cmd

import (
	"strings"
	"testing"

	"github.com/finlit/finlit"
	"github.com/shopspring/decimal"
)

func testLoan() finlit.Loan {
	return finlit.Loan{
		ID:        "1",
		Reason:    "bike",
		Principal: finlit.Rupees(30_000),
		Rate:      decimal.NewFromInt(12),
		Months:    12,
		EMI:       finlit.Rupees(2_665),
		Remaining: 12,
	}
}

func TestLoanLine(t *testing.T) {
	got := loanLine(testLoan())
	if !strings.Contains(got, "12 of 12 instalments remaining") {
		t.Errorf("loanLine = %q, want the remaining tenure spelled out", got)
	}
	if strings.Contains(got, "%!") {
		t.Errorf("loanLine = %q, has a formatting artifact", got)
	}
}

func TestLoanRow(t *testing.T) {
	ln := testLoan()
	ln.Remaining = 7
	ln.Missed = 2
	got := loanRow(ln)
	if !strings.Contains(got, "| 7 | 2 |") {
		t.Errorf("loanRow = %q, want remaining and missed counts", got)
	}
	if strings.Contains(got, "%!") {
		t.Errorf("loanRow = %q, has a formatting artifact", got)
	}
}

func TestCheckTenure(t *testing.T) {
	for _, months := range []int{6, 12, 24} {
		if err := checkTenure(months); err != nil {
			t.Errorf("checkTenure(%d): %v", months, err)
		}
	}
	for _, months := range []int{0, -6, 13, 36} {
		if err := checkTenure(months); err == nil {
			t.Errorf("checkTenure(%d) should fail", months)
		}
	}
}
