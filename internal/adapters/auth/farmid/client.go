package farmid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"breeding-records/internal/platform/httpclient"
	"breeding-records/internal/ports/auth"
)

var (
	ErrFarmIDNotConfigured = errors.New("farmid client not configured")
	ErrFarmIDUnauthorized  = errors.New("farmid unauthorized")
	ErrFarmIDUpstream      = errors.New("farmid upstream error")
)

// Config del cliente FarmID (el servicio de identidad de la plataforma).
// BaseURL y APIKey normalmente vienen de env vars de quien lo instancie.
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

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
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

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	FarmID string `json:"farm_id"`
}

// VerifyToken valida el token contra FarmID y devuelve los claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrFarmIDNotConfigured
	}

	var out verifyResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify",
		map[string]string{c.apiKeyHeader: c.apiKey},
		verifyRequest{Token: token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrFarmIDUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrFarmIDUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrFarmIDUpstream, err)
	}

	return auth.Claims{
		UserID: strings.TrimSpace(out.UserID),
		Email:  strings.TrimSpace(out.Email),
		FarmID: strings.TrimSpace(out.FarmID),
	}, nil
}
