package insights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInsightsUnavailable = errors.New("insights collaborator unavailable")

// responses above this size are cut off, the collaborator is expected to answer with a short text
const maxResponseBytes = 1 << 20

// Client talks to the external summarization collaborator.
// It POSTs the projected workouts and expects {"response": "<markdown text>"} back.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) Summarize(ctx context.Context, body []byte) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.insights.summarize")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("request.id", requestID))
	span.SetAttributes(attribute.Int("request.size", len(body)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new insights request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInsightsUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %s", ErrInsightsUnavailable, err)
	}

	span.SetAttributes(attribute.Int("response.status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("insights [%s] response %d: %s", requestID, resp.StatusCode, respBytes)
		return "", fmt.Errorf("%w: status %d", ErrInsightsUnavailable, resp.StatusCode)
	}

	text := gjson.GetBytes(respBytes, "response")
	if !text.Exists() || text.Type != gjson.String {
		return "", fmt.Errorf("%w: response text missing", ErrInsightsUnavailable)
	}

	return text.String(), nil
}
