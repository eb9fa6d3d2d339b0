// Command draftmodel is a demo upstream-model adapter. The
// contractreview core never calls an LLM (determinism, spec.md §5), but
// a reviewer realistically wants a first pass of candidate issues and
// edits to hand to Review. draftmodel prompts a chat model with the
// contract content, its clauses, and the chosen playbook's checklist,
// and prints a {candidateIssues, candidateEdits} JSON document shaped
// exactly like the fields contractreview.Review accepts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/brunobiangulo/contractreview"
	"github.com/brunobiangulo/contractreview/llm"
	"github.com/brunobiangulo/contractreview/playbook"
)

type draftInput struct {
	Content     string                  `json:"content"`
	Clauses     []contractreview.Clause `json:"clauses"`
	PlaybookKey string                  `json:"playbookKey"`
}

type draftOutput struct {
	CandidateIssues []contractreview.Issue        `json:"candidateIssues"`
	CandidateEdits  []contractreview.ProposedEdit `json:"candidateEdits"`
}

func main() {
	provider := flag.String("provider", "openai", "llm provider (openai, custom)")
	model := flag.String("model", "gpt-4o-mini", "chat model name")
	baseURL := flag.String("base-url", "", "override the provider's base URL")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	var in draftInput
	if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
		slog.Error("decoding stdin", "error", err)
		os.Exit(1)
	}

	pb, ok := playbook.ByKey(in.PlaybookKey)
	if !ok {
		slog.Error("unknown playbook key", "key", in.PlaybookKey)
		os.Exit(1)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	p, err := llm.NewProvider(llm.Config{
		Provider: *provider,
		Model:    *model,
		BaseURL:  *baseURL,
		APIKey:   apiKey,
	})
	if err != nil {
		slog.Error("creating llm provider", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := p.Chat(ctx, llm.ChatRequest{
		Model:          *model,
		Messages:       []llm.Message{{Role: "user", Content: buildPrompt(in, pb)}},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		os.Exit(1)
	}

	var out draftOutput
	if err := json.Unmarshal([]byte(resp.Content), &out); err != nil {
		slog.Error("model response was not the expected JSON shape", "error", err, "content", resp.Content)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("encoding output", "error", err)
		os.Exit(1)
	}
}

// buildPrompt asks the model to return exactly the
// {candidateIssues, candidateEdits} shape Review consumes, seeded with
// the playbook's checklist so the model has something concrete to
// check the contract against. Review re-validates every clause
// reference and excerpt the model proposes, so a hallucinated
// ClauseId or excerpt is simply downgraded, never trusted blind.
func buildPrompt(in draftInput, pb contractreview.Playbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are reviewing a %s against the following checklist:\n", pb.DisplayName)
	for _, item := range pb.Checklist {
		fmt.Fprintf(&b, "- %s: %s\n", item.ID, item.Title)
	}
	b.WriteString("\nContract clauses (clauseId: title):\n")
	for _, c := range in.Clauses {
		fmt.Fprintf(&b, "- %s: %s\n", c.ClauseID, c.Title)
	}
	b.WriteString("\nContract text:\n")
	b.WriteString(in.Content)
	b.WriteString("\n\nRespond with a single JSON object with two keys, " +
		"\"candidateIssues\" and \"candidateEdits\", matching the " +
		"contractreview.Issue and contractreview.ProposedEdit JSON shapes. " +
		"Every issue's clauseReference.excerpt must be a literal " +
		"substring of the clause it cites. Do not include commentary.")
	return b.String()
}
