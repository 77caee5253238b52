package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ai-rewriter/internal/config"
	"ai-rewriter/internal/history"
	"ai-rewriter/internal/llm"
	"ai-rewriter/internal/rewrite"
	"ai-rewriter/internal/stats"
)

// RewriteParams are the arguments of the rewrite_text tool.
type RewriteParams struct {
	Text string `json:"text" mcp:"text to rephrase into natural conversational form"`
}

// HistoryParams are the arguments of the list_history tool.
type HistoryParams struct {
	Limit int `json:"limit,omitempty" mcp:"maximum number of most recent entries to return (default: all)"`
}

// StatsParams are the arguments of the usage_stats tool.
type StatsParams struct {
	Days int `json:"days,omitempty" mcp:"number of days in the daily series (default: 7)"`
}

// ClearParams are the arguments of the clear_history tool.
type ClearParams struct{}

// RewriterMCPServer exposes the rewriter core as MCP tools.
type RewriterMCPServer struct {
	rewriter *rewrite.Service
	store    history.Store
	agg      *stats.Aggregator
}

func NewRewriterMCPServer(cfg *config.Config) (*RewriterMCPServer, error) {
	store, err := history.NewFileStore(cfg.HistoryFilePath)
	if err != nil {
		return nil, fmt.Errorf("init history store: %w", err)
	}
	agg, err := stats.NewAggregator(cfg.StatsFilePath)
	if err != nil {
		return nil, fmt.Errorf("init stats aggregator: %w", err)
	}
	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return &RewriterMCPServer{
		rewriter: rewrite.New(llmClient, store, agg, cfg.RewriteLanguage, cfg.RewriteTimeout),
		store:    store,
		agg:      agg,
	}, nil
}

func (s *RewriterMCPServer) RewriteText(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[RewriteParams]) (*mcp.CallToolResultFor[any], error) {
	result, err := s.rewriter.Rewrite(ctx, params.Arguments.Text)
	if err != nil {
		return textResult(fmt.Sprintf("Rewrite failed: %v", err)), nil
	}
	return textResult(result), nil
}

func (s *RewriterMCPServer) ListHistory(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[HistoryParams]) (*mcp.CallToolResultFor[any], error) {
	entries := s.store.List()
	if limit := params.Arguments.Limit; limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}
	if len(entries) == 0 {
		return textResult("No rewrites recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d rewrite(s), oldest first:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n[%s] (%d chars)\nOriginal: %s\nRewritten: %s\n", e.Timestamp, e.CharCount, e.Original, e.Rewritten)
	}
	return textResult(b.String()), nil
}

func (s *RewriterMCPServer) UsageStats(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[StatsParams]) (*mcp.CallToolResultFor[any], error) {
	days := params.Arguments.Days
	if days <= 0 {
		days = 7
	}
	payload := struct {
		Summary stats.Usage      `json:"summary"`
		Daily   []stats.DayCount `json:"daily"`
	}{
		Summary: s.agg.Snapshot(),
		Daily:   s.agg.DailySeries(days),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("Failed to render stats: %v", err)), nil
	}
	return textResult(string(data)), nil
}

func (s *RewriterMCPServer) ClearHistory(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ClearParams]) (*mcp.CallToolResultFor[any], error) {
	if err := s.store.Clear(); err != nil {
		return textResult(fmt.Sprintf("Failed to clear history: %v", err)), nil
	}
	if err := s.agg.Reset(); err != nil {
		return textResult(fmt.Sprintf("History cleared but stats reset failed: %v", err)), nil
	}
	return textResult("History and usage stats cleared."), nil
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	rewriterServer, err := NewRewriterMCPServer(cfg)
	if err != nil {
		log.Fatalf("failed to create rewriter server: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ai-rewriter-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rewrite_text",
		Description: "Rephrases text into natural conversational form in the configured language and records it in the rewrite history",
	}, rewriterServer.RewriteText)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_history",
		Description: "Lists past rewrites in chronological order",
	}, rewriterServer.ListHistory)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "usage_stats",
		Description: "Returns aggregate usage counters and a gap-filled daily usage series",
	}, rewriterServer.UsageStats)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_history",
		Description: "Irreversibly clears the rewrite history and resets usage stats",
	}, rewriterServer.ClearHistory)

	log.Printf("starting rewriter MCP server on stdin/stdout")
	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("rewriter MCP server failed: %v", err)
	}
}
