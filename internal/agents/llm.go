package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/prompts"
	"github.com/dmcameron/attest/pkg/dates"
	"github.com/dmcameron/attest/pkg/formatting"
)

const (
	// maxEvidenceChars bounds text sent for date extraction and summaries.
	maxEvidenceChars = 200_000
	// maxAssignEvidenceChars bounds evidence sent alongside the full catalog.
	maxAssignEvidenceChars = 5000
	// maxSpecChars bounds each specification in the catalog listing.
	maxSpecChars = 400
)

// LLM implements System by delegating to a chat model. Every failure mode
// degrades to a null result with an explanatory rationale; the fallback
// confidence values mirror the deterministic strategy's scale.
type LLM struct {
	config gaconfig.AgentConfig
	logger *slog.Logger
}

// NewLLM creates the model-backed capability system.
func NewLLM(cfg gaconfig.AgentConfig, logger *slog.Logger) *LLM {
	return &LLM{
		config: cfg,
		logger: logger.With("system", "agents", "strategy", "llm"),
	}
}

type dateResponse struct {
	Date   *string `json:"date"`
	Quote  string  `json:"quote"`
	Reason string  `json:"reason"`
}

func (l *LLM) ExtractDate(ctx context.Context, text string) DateResult {
	bounded := bound(text, maxEvidenceChars)

	content, err := l.chat(ctx, prompts.TaskExtractDate, "Text:\n"+bounded)
	if err != nil {
		l.logger.Warn("date extraction call failed", "error", err)
		return DateResult{Confidence: 0, Rationale: "llm_error: " + err.Error()}
	}

	resp, perr := formatting.Parse[dateResponse](content)
	if perr != nil {
		// Some models answer with a bare date string instead of JSON.
		trimmed := strings.TrimSpace(content)
		resp = dateResponse{Date: &trimmed, Reason: "string_result"}
	}

	if resp.Quote != "" && !strings.Contains(bounded, resp.Quote) {
		return DateResult{Confidence: 0, Rationale: "quote_not_in_text"}
	}

	if resp.Date == nil || *resp.Date == "" {
		reason := resp.Reason
		if reason == "" {
			reason = "no date found"
		}
		return DateResult{Confidence: 0, Rationale: reason}
	}

	parsed, ok := dates.ParseAny(*resp.Date)
	if !ok {
		return DateResult{Confidence: 0, Rationale: "unparseable date: " + *resp.Date}
	}

	iso := parsed.Format("2006-01-02")
	rationale := resp.Reason
	if rationale == "" {
		rationale = "model extraction"
	}

	return DateResult{
		EvidenceDate: &iso,
		Candidates:   []string{iso},
		Confidence:   0.9,
		Rationale:    rationale,
	}
}

func (l *LLM) SummarizeActions(ctx context.Context, text string) string {
	bounded := bound(text, maxEvidenceChars)

	content, err := l.chat(ctx, prompts.TaskDescribeActions, "Document text:\n"+bounded)
	if err != nil {
		l.logger.Warn("action summary call failed", "error", err)
		return ""
	}

	return formatting.SummarizeWords(content, summaryWordLimit)
}

type assignResponse struct {
	ControlID *string `json:"control_id"`
	ID        *string `json:"id"`
	Rationale string  `json:"rationale"`
}

func (l *LLM) AssignControl(ctx context.Context, text string, specs []catalog.ControlSpec) Assignment {
	listing, idToCode, codeToID := catalogListing(specs)
	evidence := bound(text, maxAssignEvidenceChars)

	user := "Evidence:\n" + evidence +
		"\n\nControl specifications (id|control_id|specification):\n" + listing +
		"\n\nRespond with JSON only."

	content, err := l.chat(ctx, prompts.TaskAssignControl, user)
	if err != nil {
		l.logger.Warn("control assignment call failed", "error", err)
		return Assignment{Rationale: "llm_error: " + err.Error()}
	}

	resp, perr := formatting.Parse[assignResponse](content)
	if perr != nil {
		resp, perr = l.retryAssign(ctx, user)
		if perr != nil {
			l.logger.Warn("control assignment returned no parseable JSON")
			return Assignment{Rationale: "non_json_output"}
		}
	}

	code, record := resp.ControlID, resp.ID

	// Fill the missing identifier from the catalog mapping when possible.
	if record != nil && code == nil {
		if c, ok := idToCode[*record]; ok {
			code = &c
		}
	}
	if code != nil && record == nil {
		if r, ok := codeToID[*code]; ok && r != "" {
			record = &r
		}
	}

	valid := false
	if record != nil {
		_, valid = idToCode[*record]
	}
	if !valid && code != nil {
		_, valid = codeToID[*code]
	}

	if !valid {
		l.logger.Warn("model proposed control outside catalog",
			"control_id", deref(code), "id", deref(record))
		return Assignment{Rationale: "not_in_catalog"}
	}

	return Assignment{ControlCode: code, RecordID: record, Rationale: resp.Rationale}
}

func (l *LLM) retryAssign(ctx context.Context, user string) (assignResponse, error) {
	spec, _ := prompts.RetrySpec(prompts.TaskAssignControl)

	content, err := l.send(ctx, spec, user)
	if err != nil {
		return assignResponse{}, err
	}
	return formatting.Parse[assignResponse](content)
}

// chat composes the task's instructions and response specification into a
// system prompt and sends one exchange.
func (l *LLM) chat(ctx context.Context, task prompts.Task, user string) (string, error) {
	instructions, err := prompts.Instructions(task)
	if err != nil {
		return "", err
	}
	spec, err := prompts.Spec(task)
	if err != nil {
		return "", err
	}

	return l.send(ctx, instructions+"\n\n"+spec, user)
}

func (l *LLM) send(ctx context.Context, system, user string) (string, error) {
	a, err := agent.New(&l.config)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, system+"\n\n"+user)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

// catalogListing renders the specs as pipe-delimited lines and returns the
// identifier mappings used to validate and complete the model's choice.
func catalogListing(specs []catalog.ControlSpec) (string, map[string]string, map[string]string) {
	lines := make([]string, 0, len(specs))
	idToCode := make(map[string]string, len(specs))
	codeToID := make(map[string]string, len(specs))

	for _, spec := range specs {
		text := bound(spec.Specification, maxSpecChars)
		lines = append(lines, spec.ID+"|"+spec.ControlID+"|"+text)
		if spec.ID != "" {
			idToCode[spec.ID] = spec.ControlID
		}
		codeToID[spec.ControlID] = spec.ID
	}

	return strings.Join(lines, "\n"), idToCode, codeToID
}

func bound(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
