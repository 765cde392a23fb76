package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"google.golang.org/genai"

	"github.com/finlit/finlit"
	"github.com/finlit/finlit/sim"
)

// DefaultModel is the generative model advice calls go to.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds every single advice call. Advice that arrives late
// is advice nobody reads.
const DefaultTimeout = 15 * time.Second

// Gemini generates advice with Google's generative-language API. Wrap it
// in WithFallback before handing it to anything user-facing.
type Gemini struct {
	client  *genai.Client
	Model   string
	Timeout time.Duration
}

// NewGemini creates the client. Credentials come from the environment
// (GEMINI_API_KEY or Vertex project settings).
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, Model: DefaultModel, Timeout: DefaultTimeout}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Gemini) Tips(ctx context.Context, snap finlit.Snapshot) ([]string, error) {
	recent := finlit.Rupees(0)
	for _, tx := range snap.RecentSpending {
		recent = recent.Add(tx.Amount)
	}
	prompt := fmt.Sprintf(`You are a friendly financial advisor helping a student learn about money management.

User's Financial Profile:
- Current Balance: %s
- Level: %d
- Completed Lessons: %d
- Active Loans: %d
- Portfolio Value: %s
- Recent Spending: %s

Provide 3-4 **short, actionable tips** (each max 15 words) to help them improve their financial health. Be encouraging and specific to their situation. Use emojis.

Format as a JSON array of strings: ["tip1", "tip2", "tip3"]`,
		snap.Balance, snap.Level, len(snap.CompletedLessons), len(snap.ActiveLoans), snap.PortfolioValue, recent)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	jobj, err := parseReply(text, '[', ']')
	if err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get("$[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing tips reply: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("tips reply is not a list: %v", jval)
	}
	var tips []string
	for _, v := range jlist {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			tips = append(tips, s)
		}
	}
	if len(tips) == 0 {
		return nil, fmt.Errorf("tips reply holds no usable tip")
	}
	return tips, nil
}

func (g *Gemini) LearningSummary(ctx context.Context, sum sim.Summary) (LessonSummary, error) {
	prompt := fmt.Sprintf(`The user completed a %q simulation with these results:
- Start Balance: %s
- Final Balance: %s
- Net Change: %s
- Missed Payments: %d
- Grade: %s

Based on this, provide a personalized learning summary as JSON:
{
  "learned": ["key takeaway 1", "key takeaway 2", "key takeaway 3"],
  "mastered": ["Concept 1", "Concept 2"],
  "understanding": "good/needs-improvement",
  "nextLesson": "Recommended topic - short reason",
  "encouragement": "Personalized encouraging message"
}

Be specific to their performance. If they had missed payments or negative balance, address it constructively.`,
		sum.Kind, sum.StartBalance, sum.FinalBalance, sum.NetChange, sum.MissedPayments, sum.Grade)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return LessonSummary{}, err
	}
	jobj, err := parseReply(text, '{', '}')
	if err != nil {
		return LessonSummary{}, err
	}
	out := LessonSummary{
		Learned:       pathStrings(jobj, "$.learned[*]"),
		Mastered:      pathStrings(jobj, "$.mastered[*]"),
		Understanding: pathString(jobj, "$.understanding"),
		NextLesson:    pathString(jobj, "$.nextLesson"),
		Encouragement: pathString(jobj, "$.encouragement"),
	}
	if len(out.Learned) == 0 || out.Encouragement == "" {
		return LessonSummary{}, fmt.Errorf("summary reply misses required fields")
	}
	return out, nil
}

func (g *Gemini) ExplainTerm(ctx context.Context, term string) (string, error) {
	prompt := fmt.Sprintf("Explain the financial term %q to a beginner in 2-3 simple sentences. Use an example with Indian Rupees (₹). Be conversational and clear.", term)
	return g.generate(ctx, prompt)
}

func (g *Gemini) NextTopic(ctx context.Context, snap finlit.Snapshot) (string, error) {
	prompt := fmt.Sprintf(`Based on this user's profile, recommend which financial topic they should learn next:

Completed Lessons: %s
Current Level: %d
Balance: %s
Active Loans: %d

Available topics: Budgeting, Loans & EMI, Stock Market, Credit Cards, Taxes, Savings

Respond with just the topic name and a one-sentence reason (max 20 words).
Format: "Topic: [name] - [reason]"`,
		strings.Join(snap.CompletedLessons, ", "), snap.Level, snap.Balance, len(snap.ActiveLoans))
	return g.generate(ctx, prompt)
}

// parseReply extracts the JSON payload out of a model reply that may wrap
// it in prose or markdown fences.
func parseReply(text string, opening, closing byte) (any, error) {
	start := strings.IndexByte(text, opening)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON payload in reply %q", text)
	}
	var jobj any
	if err := json.Unmarshal([]byte(text[start:end+1]), &jobj); err != nil {
		return nil, fmt.Errorf("malformed JSON payload in reply: %w", err)
	}
	return jobj, nil
}

func pathString(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	// jsonpath may return a list of one answer, keep the first
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

func pathStrings(jobj any, path string) []string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range jlist {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
