// Package oracle is the client for the external advice oracle (Google
// Gemini). Both operations are stateless request/response: one request per
// invocation, no caching, no retry, no streaming. Responses are constrained
// to a declared JSON schema and strictly decoded; anything that violates the
// schema is a failure, never a partial result.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"trafficpro/internal/domain"
)

// DefaultModel matches the model the dashboard was built against.
const DefaultModel = "gemini-3-flash-preview"

// ErrInvalidResponse marks a response that is missing required fields, has
// mistyped values, or carries unknown enum members. The oracle is untrusted:
// nothing crosses into domain state unless it validates.
var ErrInvalidResponse = errors.New("oracle response violates schema")

// Config configures the oracle client.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string
	// Model overrides DefaultModel when set.
	Model string
}

// Client talks to the Gemini API. Safe for use from a single goroutine, which
// is all the dashboard needs.
type Client struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// New creates an oracle client.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{client: client, model: model, log: log}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// ExtractMetrics extracts the fixed set of advertising metrics from a
// dashboard screenshot. The response schema requires every numeric field, so
// a successful call always yields a complete snapshot. The returned record
// carries no date label; the caller stamps it.
func (c *Client) ExtractMetrics(ctx context.Context, image []byte, mimeType string) (domain.MetricData, error) {
	if len(image) == 0 {
		return domain.MetricData{}, fmt.Errorf("analysis failed: empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(metricsPrompt),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   metricsSchema(),
	})
	if err != nil {
		c.log.Warn("metric extraction failed", zap.Error(err))
		return domain.MetricData{}, fmt.Errorf("analysis failed: %w", err)
	}

	m, err := DecodeMetrics([]byte(resp.Text()))
	if err != nil {
		c.log.Warn("metric extraction returned invalid payload", zap.Error(err))
		return domain.MetricData{}, fmt.Errorf("analysis failed: %w", err)
	}
	c.log.Info("metrics extracted from screenshot",
		zap.String("model", c.model),
		zap.Float64("spend", m.Spend),
		zap.Float64("roi", m.ROI))
	return m, nil
}

// StrategicAdvice asks the oracle for a diagnosis and action plan for the
// project. On failure the caller must leave any previously attached insight
// in place; this method never returns a partial insight.
func (c *Client) StrategicAdvice(ctx context.Context, p domain.Project) (domain.AIInsight, error) {
	prompt, err := advicePrompt(p)
	if err != nil {
		return domain.AIInsight{}, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   adviceSchema(),
		})
	if err != nil {
		c.log.Warn("strategic advice failed",
			zap.String("project", p.ID),
			zap.Error(err))
		return domain.AIInsight{}, fmt.Errorf("strategic advice failed: %w", err)
	}

	insight, err := DecodeInsight([]byte(resp.Text()))
	if err != nil {
		c.log.Warn("strategic advice returned invalid payload",
			zap.String("project", p.ID),
			zap.Error(err))
		return domain.AIInsight{}, fmt.Errorf("strategic advice failed: %w", err)
	}
	c.log.Info("strategic advice received",
		zap.String("project", p.ID),
		zap.String("status", string(insight.Status)),
		zap.Int("suggestions", len(insight.ActionPlan)))
	return insight, nil
}

// advicePrompt embeds the project summary the oracle reasons over: client,
// niche, target metric, the latest metric snapshot (or an empty object), and
// the funnel type.
func advicePrompt(p domain.Project) (string, error) {
	snapshot := "{}"
	if m, ok := p.LatestMetric(); ok {
		raw, err := json.Marshal(m)
		if err != nil {
			return "", fmt.Errorf("failed to encode metric snapshot: %w", err)
		}
		snapshot = string(raw)
	}
	return fmt.Sprintf(adviceTemplate, p.ClientName, p.Niche, p.TargetMetric, snapshot, p.FunnelType), nil
}
