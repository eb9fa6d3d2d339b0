// Command mcpserver exposes contractreview.Review as an MCP tool
// (contract_review) over stdio, for agentic callers that prefer MCP
// over the raw HTTP endpoint in cmd/server. It is a thin adapter: no
// new semantics, no second implementation of the core.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/brunobiangulo/contractreview"
)

const instructions = `This server exposes one tool, contract_review, which runs a
deterministic, evidence-anchored review of a contract against a fixed
playbook. Every issue and proposed edit it returns is pinned to a
literal excerpt of the supplied contract text; nothing is inferred.`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := mcpserver.NewMCPServer(
		"contractreview",
		"v1",
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions(instructions),
	)

	s.AddTool(
		mcplib.NewTool("contract_review",
			mcplib.WithDescription("Run a deterministic contract review against a playbook and return an AnalysisReport."),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("content",
				mcplib.Description("The full contract text."),
				mcplib.Required(),
			),
			mcplib.WithString("clauses",
				mcplib.Description("JSON array of contractreview.Clause values extracted from the contract."),
				mcplib.Required(),
			),
			mcplib.WithString("playbookKey",
				mcplib.Description("One of the seven closed playbook keys, e.g. non_disclosure_agreement."),
				mcplib.Required(),
			),
			mcplib.WithString("candidateIssues",
				mcplib.Description("Optional JSON array of candidate contractreview.Issue values from an upstream model."),
			),
			mcplib.WithString("candidateEdits",
				mcplib.Description("Optional JSON array of candidate contractreview.ProposedEdit values from an upstream model."),
			),
		),
		handleContractReview,
	)

	if err := mcpserver.ServeStdio(s); err != nil {
		slog.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}

func handleContractReview(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	content := request.GetString("content", "")
	playbookKey := request.GetString("playbookKey", "")

	var clauses []contractreview.Clause
	if raw := request.GetString("clauses", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &clauses); err != nil {
			return errorResult("clauses: invalid JSON: " + err.Error()), nil
		}
	}

	var candidateIssues []contractreview.Issue
	if raw := request.GetString("candidateIssues", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &candidateIssues); err != nil {
			return errorResult("candidateIssues: invalid JSON: " + err.Error()), nil
		}
	}

	var candidateEdits []contractreview.ProposedEdit
	if raw := request.GetString("candidateEdits", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &candidateEdits); err != nil {
			return errorResult("candidateEdits: invalid JSON: " + err.Error()), nil
		}
	}

	report, err := contractreview.Review(content, clauses, playbookKey, candidateIssues, candidateEdits)
	if err != nil {
		if reviewErr, ok := err.(*contractreview.ReviewError); ok {
			return errorResult(string(reviewErr.Kind) + ": " + reviewErr.Message), nil
		}
		return errorResult(err.Error()), nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errorResult("encoding report: " + err.Error()), nil
	}

	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: string(data)},
		},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
