package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-rewriter/internal/history"
	"ai-rewriter/internal/llm"
	"ai-rewriter/internal/stats"
)

// ErrEmptyInput is returned when the submitted text is empty or whitespace.
var ErrEmptyInput = errors.New("input text is empty")

const promptTemplate = "Rephrase the following text into natural conversational %s, the way an ordinary person speaks, using active voice. Output only the rewritten text:\n\n%s"

// Service turns user text into a rewrite request against the configured
// generation provider and records every successful rewrite in the history
// store and usage counters.
type Service struct {
	client   llm.Client
	store    history.Store
	agg      *stats.Aggregator
	language string
	timeout  time.Duration
}

func New(client llm.Client, store history.Store, agg *stats.Aggregator, language string, timeout time.Duration) *Service {
	return &Service{
		client:   client,
		store:    store,
		agg:      agg,
		language: language,
		timeout:  timeout,
	}
}

// Rewrite sends text to the generation provider and returns the rewritten
// result. A successful call appends exactly one history entry and records
// it in the usage counters before success is reported; a provider failure
// leaves both stores untouched.
func (s *Service) Rewrite(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(promptTemplate, s.language, text)
	resp, err := s.client.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	rewritten := strings.TrimSpace(resp.Content)
	if rewritten == "" {
		return "", errors.New("generation returned empty text")
	}

	entry, err := s.store.Append(text, rewritten)
	if err != nil {
		return "", err
	}
	day, perr := time.ParseInLocation(history.TimeLayout, entry.Timestamp, time.Local)
	if perr != nil {
		day = time.Now()
	}
	if err := s.agg.Record(entry.CharCount, day); err != nil {
		// History is already persisted; the counter update could not be.
		log.Printf("history entry persisted but stats update failed: %v", err)
		return "", err
	}
	return rewritten, nil
}
