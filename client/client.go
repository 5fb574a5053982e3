// Package client is the sole network boundary of the application. It
// speaks the clinical RAG backend's HTTP API and nothing else: no retries,
// no caching, one request per call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is used when no backend address is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single request when the caller does not
	// supply one.
	DefaultTimeout = 60 * time.Second
)

// Client issues requests against the clinical RAG backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client for the given base URL. A zero timeout falls back
// to DefaultTimeout; a nil logger disables diagnostics.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type queryRequest struct {
	Query  string  `json:"query"`
	Domain *string `json:"domain"`
}

type feedbackRequest struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Rating   Rating `json:"rating"`
}

type graphRequest struct {
	Query   string  `json:"query"`
	Domain  *string `json:"domain"`
	VizType VizKind `json:"viz_type"`
}

type graphResponse struct {
	Image string `json:"image"`
}

// SubmitQuery runs one retrieval-augmented query. The returned bundle's
// sources are ranked by the backend and preserved in received order.
func (c *Client) SubmitQuery(ctx context.Context, query string, domain Domain) (*AnswerBundle, error) {
	var bundle AnswerBundle
	err := c.postJSON(ctx, "/query", queryRequest{Query: query, Domain: domain.wire()}, &bundle)
	if err != nil {
		c.log.Warn("query failed",
			zap.String("domain", string(domain)),
			zap.Error(err))
		return nil, err
	}
	c.log.Info("query answered",
		zap.String("domain", string(domain)),
		zap.String("confidence", bundle.Confidence),
		zap.Int("sources", len(bundle.Sources)))
	return &bundle, nil
}

// SubmitFeedback records a binary rating for an answer. The response body
// is ignored; callers treat failures as advisory.
func (c *Client) SubmitFeedback(ctx context.Context, query, answer string, rating Rating) error {
	err := c.postJSON(ctx, "/feedback", feedbackRequest{
		Query:    query,
		Response: answer,
		Rating:   rating,
	}, nil)
	if err != nil {
		c.log.Warn("feedback not recorded", zap.String("rating", string(rating)), zap.Error(err))
		return err
	}
	c.log.Info("feedback recorded", zap.String("rating", string(rating)))
	return nil
}

// GenerateGraph asks the backend to render a visualization over the
// evidence retrieved for the query. The result is an image payload,
// normally a base64 data URI.
func (c *Client) GenerateGraph(ctx context.Context, query string, domain Domain, kind VizKind) (string, error) {
	var out graphResponse
	err := c.postJSON(ctx, "/generate-graph", graphRequest{
		Query:   query,
		Domain:  domain.wire(),
		VizType: kind,
	}, &out)
	if err != nil {
		c.log.Warn("graph generation failed", zap.String("viz_type", string(kind)), zap.Error(err))
		return "", err
	}
	return out.Image, nil
}

// Domains fetches the backend's clinical domain listing.
func (c *Client) Domains(ctx context.Context) ([]DomainInfo, error) {
	var out struct {
		Domains []DomainInfo `json:"domains"`
	}
	if err := c.getJSON(ctx, "/domains", &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// Health fetches the backend's detailed index health report.
func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	var report HealthReport
	if err := c.getJSON(ctx, "/health", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures carry no backend detail; status 0 and an
		// empty Detail tell the caller to use its own fallback message.
		return &RequestError{cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Detail: fmt.Sprintf("malformed response from backend: %v", err)}
	}
	return nil
}
