package herdai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"breeding-records/internal/ports/summarizer"
)

// Summarizer implementa summarizer.Summarizer usando HerdAI.
type Summarizer struct {
	client *Client
}

func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, in summarizer.Input) (summarizer.Output, error) {
	if s == nil || s.client == nil {
		return summarizer.Output{}, ErrHerdAINotConfigured
	}

	resp, err := s.client.Summarize(ctx, in.Name, in.TargetMothers, in.Results)
	if err != nil {
		return summarizer.Output{}, fmt.Errorf("herdai summarize failed: %w", err)
	}

	// Una respuesta 2xx sin narrativa es tan inválida como un error.
	if strings.TrimSpace(resp.Narrative) == "" {
		return summarizer.Output{}, errors.New("herdai response missing narrative")
	}

	return summarizer.Output{
		CategorizedFindings: resp.CategorizedFindings,
		Narrative:           resp.Narrative,
	}, nil
}
