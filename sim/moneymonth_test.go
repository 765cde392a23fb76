package sim

import (
	"errors"
	"testing"

	"github.com/finlit/finlit"
)

func TestAdHocEMI(t *testing.T) {
	// round(3500/3 * 1.12) = 1307, totalling 3921 over three months
	got := AdHocEMI(finlit.Rupees(3500))
	if !got.Equal(finlit.Rupees(1307)) {
		t.Fatalf("AdHocEMI(3500) = %s, want 1307", got)
	}
	if total := got.Mul(finlit.Q(3)); !total.Equal(finlit.Rupees(3921)) {
		t.Errorf("3 instalments = %s, want 3921", total)
	}
}

func TestMoneyMonthCashBlocked(t *testing.T) {
	m := NewMoneyMonth(finlit.DefaultState("asha"))
	// drain the pocket below the first expense
	m.Wallet().Debit(finlit.Rupees(9900), "setup")

	before := len(m.Wallet().Log())
	err := m.Pay(PayCash)
	if !errors.Is(err, finlit.ErrInsufficientFunds) {
		t.Fatalf("Pay(cash) error = %v, want ErrInsufficientFunds", err)
	}
	if !m.Wallet().Balance().Equal(finlit.Rupees(100)) {
		t.Errorf("balance = %s, want 100", m.Wallet().Balance())
	}
	if len(m.Wallet().Log()) != before {
		t.Error("blocked payment must not append a transaction")
	}
	if m.Current() == nil || m.Current().ID != 1 {
		t.Error("blocked payment must keep the expense current")
	}
	// the same expense can still go on credit
	if err := m.Pay(PayCredit); err != nil {
		t.Fatalf("Pay(credit) error = %v", err)
	}
	if m.Current().ID != 2 {
		t.Errorf("current = %d, want 2", m.Current().ID)
	}
}

func TestMoneyMonthEMIGate(t *testing.T) {
	m := NewMoneyMonth(finlit.DefaultState("asha"))
	// expense 1 (₹300, not eligible) cannot go on EMI
	if err := m.Pay(PayEMI); !errors.Is(err, ErrNotEMIEligible) {
		t.Fatalf("Pay(emi) on small expense error = %v, want ErrNotEMIEligible", err)
	}
	// walk to expense 9, the eligible screen repair
	for m.Current().ID < 9 {
		if err := m.Pay(PayUPI); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Pay(PayEMI); err != nil {
		t.Fatalf("Pay(emi) on eligible expense error = %v", err)
	}
	plans := m.Plans()
	if len(plans) != 1 || !plans[0].Monthly.Equal(finlit.Rupees(1307)) || plans[0].Remaining != 3 {
		t.Errorf("plans = %+v", plans)
	}
}

func TestMoneyMonthPocketRunsOut(t *testing.T) {
	m := NewMoneyMonth(finlit.DefaultState("asha"))
	// the script totals 14150 against a 10000 pocket: paying everything
	// over UPI must block at the screen repair (spent 6650, cost 3500)
	for {
		err := m.Pay(PayUPI)
		if err == nil {
			continue
		}
		if !errors.Is(err, finlit.ErrInsufficientFunds) {
			t.Fatalf("Pay(upi) error = %v, want ErrInsufficientFunds", err)
		}
		break
	}
	if m.Current().ID != 9 {
		t.Fatalf("blocked at expense %d, want 9", m.Current().ID)
	}
	// the rest goes on credit, settled at month end
	for m.Current() != nil {
		if err := m.Pay(PayCredit); err != nil {
			t.Fatal(err)
		}
	}
	sum, err := m.Settle()
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	// bill 7500 against a 3350 balance: pays 3350, carries
	// 7500 - 3350 + round(7500*0.18/12) = 4263
	if !m.CreditBill().Equal(finlit.Rupees(4263)) {
		t.Errorf("carried bill = %s, want 4263", m.CreditBill())
	}
	if !sum.FinalBalance.IsZero() {
		t.Errorf("FinalBalance = %s, want 0", sum.FinalBalance)
	}
}

func TestMoneyMonthSettlementCarriesBill(t *testing.T) {
	state := finlit.DefaultState("asha")
	m := NewMoneyMonth(state)
	for m.Current() != nil {
		// cheap ones in cash, the rest on credit
		var err error
		if m.Current().Cost.LessThan(finlit.Rupees(1000)) {
			err = m.Pay(PayCash)
		} else {
			err = m.Pay(PayCredit)
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	// cash: 300+150+500+400+600 = 1950, credit: 1500+2000+1200+3500+4000 = 12200
	if !m.CreditBill().Equal(finlit.Rupees(12_200)) {
		t.Fatalf("CreditBill = %s, want 12200", m.CreditBill())
	}
	sum, err := m.Settle()
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	// balance 8050 cannot cover 12200: pays 8050, carries
	// 12200 - 8050 + round(12200*0.18/12) = 4333
	if !m.CreditBill().Equal(finlit.Rupees(4333)) {
		t.Errorf("carried bill = %s, want 4333", m.CreditBill())
	}
	if !sum.FinalBalance.IsZero() {
		t.Errorf("FinalBalance = %s, want 0", sum.FinalBalance)
	}
	if sum.Grade != "D" {
		t.Errorf("Grade = %s, want D", sum.Grade)
	}
}

func TestMoneyMonthSettleRequiresAllDecisions(t *testing.T) {
	m := NewMoneyMonth(finlit.DefaultState("asha"))
	if _, err := m.Settle(); err == nil {
		t.Error("Settle() with pending expenses expected error")
	}
}
