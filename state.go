package finlit

import (
	"fmt"
	"slices"
	"time"
)

// StartingBalance seeds every new wallet. Scarcity is part of the lesson.
var StartingBalance = Rupees(10_000)

// XPPerLevel is the experience needed to gain a level.
const XPPerLevel = 100

// Default rewards for completing a lesson.
var (
	LessonXP     = 50
	LessonReward = Rupees(200)
)

// User holds the learner's gamification stats.
type User struct {
	Name      string
	XP        int
	Level     int
	Streak    int
	Hearts    int
	MaxHearts int
	Gems      int
	LastLogin time.Time
}

// Progress tracks the learning journey.
type Progress struct {
	CurrentUnit          int
	CompletedLessons     []string
	PerfectLessons       []string
	SimulationsCompleted []string
}

// Achievements lists unlocked and pending achievement ids. Unlock logic
// lives in the UI; the engine only persists the lists.
type Achievements struct {
	Unlocked []string
	Pending  []string
}

// State is the whole persisted world of one learner: stats, wallet, loans,
// portfolio, progress, achievements, and the decision trail simulations
// leave behind for the advisor.
type State struct {
	User         User
	Wallet       *Ledger
	Loans        *LoanBook
	Portfolio    *Portfolio
	Progress     Progress
	Achievements Achievements
	Decisions    []Decision
}

// DefaultState creates a fresh learner with the starting balance and stats.
func DefaultState(name string) *State {
	wallet := NewLedger(StartingBalance)
	return &State{
		User: User{
			Name:      name,
			XP:        0,
			Level:     1,
			Streak:    1,
			Hearts:    5,
			MaxHearts: 5,
			Gems:      100,
			LastLogin: time.Now(),
		},
		Wallet:    wallet,
		Loans:     NewLoanBook(wallet),
		Portfolio: NewPortfolio(wallet),
		Progress:  Progress{CurrentUnit: 1},
	}
}

// AddXP grants experience and recomputes the level. It reports the new
// level when the grant crossed a level boundary, zero otherwise.
func (s *State) AddXP(xp int) (leveledUp int) {
	s.User.XP += xp
	level := s.User.XP/XPPerLevel + 1
	if level > s.User.Level {
		s.User.Level = level
		return level
	}
	s.User.Level = level
	return 0
}

// CompleteLesson records a finished lesson, grants the XP and money reward,
// and reports a level-up. Completing the same lesson twice is a no-op.
func (s *State) CompleteLesson(lessonID string, perfect bool) (leveledUp int, err error) {
	if slices.Contains(s.Progress.CompletedLessons, lessonID) {
		return 0, nil
	}
	if _, err := s.Wallet.Credit(LessonReward, fmt.Sprintf("Lesson %s Reward", lessonID)); err != nil {
		return 0, err
	}
	s.Progress.CompletedLessons = append(s.Progress.CompletedLessons, lessonID)
	if perfect {
		s.Progress.PerfectLessons = append(s.Progress.PerfectLessons, lessonID)
	}
	return s.AddXP(LessonXP), nil
}

// CompleteSimulation records that a simulation was played through.
func (s *State) CompleteSimulation(kind string) {
	if slices.Contains(s.Progress.SimulationsCompleted, kind) {
		return
	}
	s.Progress.SimulationsCompleted = append(s.Progress.SimulationsCompleted, kind)
}

// Decide appends a decision to the trail the advisor reads.
func (s *State) Decide(d Decision) {
	s.Decisions = append(s.Decisions, d)
}
