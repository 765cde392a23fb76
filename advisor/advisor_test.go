package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finlit/finlit"
	"github.com/finlit/finlit/sim"
)

// failing always errors, standing in for a dead or slow upstream.
type failing struct{}

func (failing) Tips(context.Context, finlit.Snapshot) ([]string, error) {
	return nil, errors.New("upstream down")
}
func (failing) LearningSummary(context.Context, sim.Summary) (LessonSummary, error) {
	return LessonSummary{}, errors.New("upstream down")
}
func (failing) ExplainTerm(context.Context, string) (string, error) {
	return "", errors.New("upstream down")
}
func (failing) NextTopic(context.Context, finlit.Snapshot) (string, error) {
	return "", errors.New("upstream down")
}

func TestResilientFallsBack(t *testing.T) {
	p := WithFallback(failing{})
	ctx := context.Background()

	tips, err := p.Tips(ctx, finlit.Snapshot{})
	if err != nil || len(tips) == 0 {
		t.Fatalf("Tips() = %v, %v; want fallback tips", tips, err)
	}

	sum, err := p.LearningSummary(ctx, sim.Summary{})
	if err != nil || sum.Encouragement == "" {
		t.Fatalf("LearningSummary() = %+v, %v; want fallback summary", sum, err)
	}

	text, err := p.ExplainTerm(ctx, "EMI")
	if err != nil || text == "" {
		t.Fatalf("ExplainTerm() = %q, %v; want fallback text", text, err)
	}
}

func TestResilientPrefersPrimary(t *testing.T) {
	p := WithFallback(Static{})
	p.Primary = primaryStub{}
	tips, err := p.Tips(context.Background(), finlit.Snapshot{})
	if err != nil || len(tips) != 1 || tips[0] != "primary tip" {
		t.Fatalf("Tips() = %v, %v", tips, err)
	}
}

type primaryStub struct{ Static }

func (primaryStub) Tips(context.Context, finlit.Snapshot) ([]string, error) {
	return []string{"primary tip"}, nil
}

func TestStaticSummaryMatchesPerformance(t *testing.T) {
	ctx := context.Background()
	good, _ := Static{}.LearningSummary(ctx, sim.Summary{MissedPayments: 0, NetChange: finlit.Rupees(500)})
	if good.Understanding != "good" {
		t.Errorf("clean run Understanding = %q, want good", good.Understanding)
	}
	bad, _ := Static{}.LearningSummary(ctx, sim.Summary{MissedPayments: 2, NetChange: finlit.Rupees(-100)})
	if bad.Understanding != "needs-improvement" {
		t.Errorf("missed run Understanding = %q, want needs-improvement", bad.Understanding)
	}
}

func TestGoTipsNeverBlocks(t *testing.T) {
	ch := GoTips(context.Background(), failing{}, finlit.Snapshot{})
	select {
	case tips := <-ch:
		if len(tips) == 0 {
			t.Error("fire-and-forget tips must still deliver the fallback")
		}
	case <-time.After(time.Second):
		t.Fatal("GoTips() did not deliver")
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		opening, closing byte
		wantErr          bool
	}{
		{"bare array", `["a","b"]`, '[', ']', false},
		{"fenced array", "```json\n[\"a\",\"b\"]\n```", '[', ']', false},
		{"prose around object", `Sure! {"learned":["x"]} Hope it helps.`, '{', '}', false},
		{"no payload", "I cannot help with that.", '{', '}', true},
		{"broken payload", "[oops", '[', ']', true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseReply(tc.text, tc.opening, tc.closing)
			if (err != nil) != tc.wantErr {
				t.Errorf("parseReply(%q) error = %v, wantErr %v", tc.text, err, tc.wantErr)
			}
		})
	}
}

func TestPathHelpers(t *testing.T) {
	jobj, err := parseReply(`{"understanding":"good","learned":["a","b"],"n":1}`, '{', '}')
	if err != nil {
		t.Fatal(err)
	}
	if got := pathString(jobj, "$.understanding"); got != "good" {
		t.Errorf("pathString = %q, want good", got)
	}
	if got := pathStrings(jobj, "$.learned[*]"); len(got) != 2 || got[0] != "a" {
		t.Errorf("pathStrings = %v", got)
	}
	if got := pathString(jobj, "$.missing"); got != "" {
		t.Errorf("pathString(missing) = %q, want empty", got)
	}
}
