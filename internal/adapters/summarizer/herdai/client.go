package herdai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"breeding-records/internal/platform/httpclient"
)

var (
	ErrHerdAINotConfigured = errors.New("herdai client not configured")
	ErrHerdAIUnauthorized  = errors.New("herdai unauthorized")
	ErrHerdAIUpstream      = errors.New("herdai upstream error")
)

// Config del cliente HerdAI (el servicio de resúmenes narrativos).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header donde viaja la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		// los resúmenes con LLM tardan más que un request normal
		timeout = 30 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type summarizeRequest struct {
	ReportName    string   `json:"report_name"`
	TargetMothers []string `json:"target_mothers"`
	Results       []string `json:"results"`
}

type summarizeResponse struct {
	CategorizedFindings map[string][]string `json:"categorized_findings"`
	Narrative           string              `json:"narrative"`
}

// Summarize manda el contenido del reporte y devuelve la narrativa.
func (c *Client) Summarize(ctx context.Context, name string, targetMothers, results []string) (summarizeResponse, error) {
	if !c.IsConfigured() {
		return summarizeResponse{}, ErrHerdAINotConfigured
	}

	var out summarizeResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/summaries",
		map[string]string{c.apiKeyHeader: c.apiKey},
		summarizeRequest{
			ReportName:    name,
			TargetMothers: targetMothers,
			Results:       results,
		},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return summarizeResponse{}, ErrHerdAIUnauthorized
			}
			return summarizeResponse{}, fmt.Errorf("%w: status=%d", ErrHerdAIUpstream, httpErr.StatusCode)
		}
		return summarizeResponse{}, fmt.Errorf("%w: %v", ErrHerdAIUpstream, err)
	}

	return out, nil
}
