package finlit

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// loanRaw is a specialized struct for decoding loan JSON.
type loanRaw struct {
	ID        string          `json:"id"`
	Reason    string          `json:"reason"`
	Principal Money           `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Months    int             `json:"months"`
	EMI       Money           `json:"emi"`
	Remaining int             `json:"remaining"`
	Missed    int             `json:"missed"`
}

// MarshalJSON writes loans with a fixed field order.
func (ln Loan) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", ln.ID).
		Append("reason", ln.Reason).
		Append("principal", ln.Principal).
		Append("rate", ln.Rate).
		Append("months", ln.Months).
		Append("emi", ln.EMI).
		Append("remaining", ln.Remaining).
		Optional("missed", ln.Missed)
	return w.MarshalJSON()
}

func (ln *Loan) UnmarshalJSON(data []byte) error {
	var raw loanRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*ln = Loan{
		ID:        raw.ID,
		Reason:    raw.Reason,
		Principal: raw.Principal,
		Rate:      raw.Rate,
		Months:    raw.Months,
		EMI:       raw.EMI,
		Remaining: raw.Remaining,
		Missed:    raw.Missed,
	}
	return nil
}

// stateBlob mirrors the persisted JSON shape. One blob holds the whole
// learner.
type stateBlob struct {
	User struct {
		Name      string `json:"name"`
		XP        int    `json:"xp"`
		Level     int    `json:"level"`
		Streak    int    `json:"streak"`
		Hearts    int    `json:"hearts"`
		MaxHearts int    `json:"maxHearts"`
		Gems      int    `json:"gems"`
		LastLogin string `json:"lastLogin"`
	} `json:"user"`
	Wallet struct {
		Balance      Money               `json:"balance"`
		Portfolio    map[string]Quantity `json:"portfolio"`
		Loans        []Loan              `json:"loans"`
		Transactions []Transaction       `json:"transactions"`
	} `json:"wallet"`
	Progress struct {
		CurrentUnit          int      `json:"currentUnit"`
		CompletedLessons     []string `json:"completedLessons"`
		PerfectLessons       []string `json:"perfectLessons"`
		SimulationsCompleted []string `json:"simulationsCompleted"`
	} `json:"progress"`
	Achievements struct {
		Unlocked []string `json:"unlocked"`
		Pending  []string `json:"pending"`
	} `json:"achievements"`
	Decisions []Decision `json:"decisions,omitempty"`
}

// EncodeState writes the whole state as one JSON blob with a stable field
// order.
func EncodeState(w io.Writer, s *State) error {
	user := &jsonObjectWriter{}
	user.Append("name", s.User.Name).
		Append("xp", s.User.XP).
		Append("level", s.User.Level).
		Append("streak", s.User.Streak).
		Append("hearts", s.User.Hearts).
		Append("maxHearts", s.User.MaxHearts).
		Append("gems", s.User.Gems).
		Append("lastLogin", s.User.LastLogin.UTC().Format(time.RFC3339))

	positions := make(map[string]Quantity, len(s.Portfolio.positions))
	for sym, units := range s.Portfolio.positions {
		positions[sym] = units
	}
	wallet := &jsonObjectWriter{}
	wallet.Append("balance", s.Wallet.Balance()).
		Append("portfolio", positions).
		Append("loans", s.Loans.Active()).
		Append("transactions", s.Wallet.Log())

	progress := &jsonObjectWriter{}
	progress.Append("currentUnit", s.Progress.CurrentUnit).
		Append("completedLessons", s.Progress.CompletedLessons).
		Append("perfectLessons", s.Progress.PerfectLessons).
		Append("simulationsCompleted", s.Progress.SimulationsCompleted)

	achievements := &jsonObjectWriter{}
	achievements.Append("unlocked", s.Achievements.Unlocked).
		Append("pending", s.Achievements.Pending)

	blob := &jsonObjectWriter{}
	blob.Append("user", user).
		Append("wallet", wallet).
		Append("progress", progress).
		Append("achievements", achievements).
		Optional("decisions", s.Decisions)

	data, err := blob.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode state: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write state: %w", err)
	}
	return nil
}

// DecodeState reads one state blob. The caller decides what a decode error
// falls back to; LoadState falls back to DefaultState.
func DecodeState(r io.Reader) (*State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read state: %w", err)
	}
	var raw stateBlob
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not decode state: %w", err)
	}

	lastLogin, err := time.Parse(time.RFC3339, raw.User.LastLogin)
	if err != nil {
		lastLogin = time.Time{}
	}
	wallet := NewLedger(raw.Wallet.Balance)
	wallet.log = raw.Wallet.Transactions
	wallet.truncate()

	loans := NewLoanBook(wallet)
	loans.loans = raw.Wallet.Loans

	portfolio := NewPortfolio(wallet)
	for sym, units := range raw.Wallet.Portfolio {
		if units.IsZero() {
			continue
		}
		portfolio.positions[sym] = units
	}

	return &State{
		User: User{
			Name:      raw.User.Name,
			XP:        raw.User.XP,
			Level:     raw.User.Level,
			Streak:    raw.User.Streak,
			Hearts:    raw.User.Hearts,
			MaxHearts: raw.User.MaxHearts,
			Gems:      raw.User.Gems,
			LastLogin: lastLogin,
		},
		Wallet:    wallet,
		Loans:     loans,
		Portfolio: portfolio,
		Progress: Progress{
			CurrentUnit:          raw.Progress.CurrentUnit,
			CompletedLessons:     raw.Progress.CompletedLessons,
			PerfectLessons:       raw.Progress.PerfectLessons,
			SimulationsCompleted: raw.Progress.SimulationsCompleted,
		},
		Achievements: Achievements{
			Unlocked: raw.Achievements.Unlocked,
			Pending:  raw.Achievements.Pending,
		},
		Decisions: raw.Decisions,
	}, nil
}
