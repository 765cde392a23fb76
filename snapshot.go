package finlit

import (
	"slices"
	"time"
)

// Decision is one recorded user choice inside a simulation, kept so the
// advisor can comment on patterns rather than single moves.
type Decision struct {
	Simulation string    `json:"simulation"`
	Period     int       `json:"period"`
	Choice     string    `json:"choice"`
	Time       time.Time `json:"time"`
}

// Snapshot is the read-only view of a learner handed to advice providers.
// It is derived from state, never written back.
type Snapshot struct {
	Balance          Money         `json:"balance"`
	Level            int           `json:"level"`
	CompletedLessons []string      `json:"completedLessons"`
	ActiveLoans      []Loan        `json:"activeLoans"`
	PortfolioValue   Money         `json:"portfolioValue"`
	RecentSpending   []Transaction `json:"recentSpending"`
	Decisions        []Decision    `json:"decisions"`
}

// recentSpendingMax bounds the debit history handed to the advisor.
const recentSpendingMax = 10

// NewSnapshot derives the advisor view from the current state, pricing the
// portfolio at the given market. A nil market prices it at zero.
func NewSnapshot(s *State, m *Market) Snapshot {
	snap := Snapshot{
		Balance:          s.Wallet.Balance(),
		Level:            s.User.Level,
		CompletedLessons: slices.Clone(s.Progress.CompletedLessons),
		ActiveLoans:      slices.Clone(s.Loans.Active()),
		Decisions:        slices.Clone(s.Decisions),
	}
	if m != nil {
		snap.PortfolioValue = s.Portfolio.Value(m)
	} else {
		snap.PortfolioValue = Rupees(0)
	}
	for _, tx := range s.Wallet.Log() {
		if tx.Kind != Debit {
			continue
		}
		snap.RecentSpending = append(snap.RecentSpending, tx)
		if len(snap.RecentSpending) == recentSpendingMax {
			break
		}
	}
	return snap
}
