// Package advisor produces informational financial tips and summaries for
// the learner. Advice is strictly advisory: it never feeds back into the
// wallet, the simulations, or grading, and every provider failure degrades
// to canned fallback text rather than an error the engine would have to
// handle.
package advisor

import (
	"context"

	"github.com/finlit/finlit"
	"github.com/finlit/finlit/sim"
)

// LessonSummary is the post-simulation debrief shown to the learner.
type LessonSummary struct {
	Learned       []string
	Mastered      []string
	Understanding string
	NextLesson    string
	Encouragement string
}

// Provider generates advice from read-only learner snapshots.
type Provider interface {
	// Tips returns 3-4 short actionable tips for the learner.
	Tips(ctx context.Context, snap finlit.Snapshot) ([]string, error)
	// LearningSummary debriefs a finished simulation run.
	LearningSummary(ctx context.Context, sum sim.Summary) (LessonSummary, error)
	// ExplainTerm explains a financial term to a beginner.
	ExplainTerm(ctx context.Context, term string) (string, error)
	// NextTopic recommends what to learn next.
	NextTopic(ctx context.Context, snap finlit.Snapshot) (string, error)
}

// Static is the no-network provider: it always answers with the canned
// fallback text. It is also the safety net the Resilient wrapper drops to.
type Static struct{}

func (Static) Tips(ctx context.Context, snap finlit.Snapshot) ([]string, error) {
	return []string{
		"💰 Save at least 20% of your income each month",
		"📚 Complete all lessons to master money management",
		"🎯 Track your spending to identify savings opportunities",
	}, nil
}

func (Static) LearningSummary(ctx context.Context, sum sim.Summary) (LessonSummary, error) {
	s := LessonSummary{
		Learned: []string{
			"How EMIs and fixed commitments shape a monthly budget",
			"Why an emergency buffer matters when surprises hit",
			"The real cost of borrowing over the full tenure",
		},
		Mastered:      []string{"Budgeting basics", "Payment planning"},
		Understanding: "good",
		NextLesson:    "Budgeting - Master the basics to build a strong financial foundation",
		Encouragement: "Well done! You handled the month without missing a single payment.",
	}
	if sum.MissedPayments > 0 || sum.NetChange.IsNegative() {
		s.Understanding = "needs-improvement"
		s.Encouragement = "Money got tight this time. Replaying with a bigger buffer for surprises will make a real difference."
	}
	return s, nil
}

func (Static) ExplainTerm(ctx context.Context, term string) (string, error) {
	return term + " is an important financial concept. Learn more about it to improve your money management skills.", nil
}

func (Static) NextTopic(ctx context.Context, snap finlit.Snapshot) (string, error) {
	return "Budgeting - Master the basics to build a strong financial foundation", nil
}

// Resilient wraps a provider with the single fallback policy: any error
// from the primary is swallowed and answered from the fallback instead, so
// callers never see advice fail.
type Resilient struct {
	Primary  Provider
	Fallback Provider
}

// WithFallback wraps p so every call degrades to the static answers.
func WithFallback(p Provider) Resilient {
	return Resilient{Primary: p, Fallback: Static{}}
}

func (r Resilient) Tips(ctx context.Context, snap finlit.Snapshot) ([]string, error) {
	if tips, err := r.Primary.Tips(ctx, snap); err == nil {
		return tips, nil
	}
	return r.Fallback.Tips(ctx, snap)
}

func (r Resilient) LearningSummary(ctx context.Context, sum sim.Summary) (LessonSummary, error) {
	if s, err := r.Primary.LearningSummary(ctx, sum); err == nil {
		return s, nil
	}
	return r.Fallback.LearningSummary(ctx, sum)
}

func (r Resilient) ExplainTerm(ctx context.Context, term string) (string, error) {
	if s, err := r.Primary.ExplainTerm(ctx, term); err == nil {
		return s, nil
	}
	return r.Fallback.ExplainTerm(ctx, term)
}

func (r Resilient) NextTopic(ctx context.Context, snap finlit.Snapshot) (string, error) {
	if s, err := r.Primary.NextTopic(ctx, snap); err == nil {
		return s, nil
	}
	return r.Fallback.NextTopic(ctx, snap)
}

// GoTips launches a tips call fire-and-forget and returns a channel the
// caller may read or abandon. The call never blocks a simulation step and
// always delivers something thanks to the fallback policy.
func GoTips(ctx context.Context, p Provider, snap finlit.Snapshot) <-chan []string {
	out := make(chan []string, 1)
	go func() {
		tips, err := WithFallback(p).Tips(ctx, snap)
		if err != nil {
			// the fallback itself cannot fail, but stay safe
			tips = nil
		}
		out <- tips
		close(out)
	}()
	return out
}
