package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"truemeter-client/internal/domain/fraud"
	"truemeter-client/internal/domain/vehicle"
)

const (
	// DefaultBaseURL is used when no base URL is configured
	DefaultBaseURL = "https://truemeter-api.onrender.com"

	checkPath  = "/api/check"
	healthPath = "/health"

	requestIDHeader = "X-Request-ID"
)

// Config holds scoring client configuration
type Config struct {
	BaseURL string // overrides DefaultBaseURL
	Tracing bool   // wrap the transport with OpenTelemetry instrumentation

	// Transport replaces the default round tripper; used by tests
	Transport http.RoundTripper
}

// Client talks to the remote scoring service.
// Every call is a single attempt: no retries and no client-side timeout.
type Client struct {
	rc      *resty.Client
	baseURL string
	logger  *zap.Logger
	metrics *Metrics
}

// NewClient creates a new scoring client. A nil logger or metrics disables them.
func NewClient(cfg Config, logger *zap.Logger, metrics *Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetLogger(logger.Sugar())

	if cfg.Transport != nil {
		rc.SetTransport(cfg.Transport)
	}
	if cfg.Tracing {
		rc.SetTransport(otelhttp.NewTransport(rc.GetClient().Transport))
	}

	return &Client{
		rc:      rc,
		baseURL: baseURL,
		logger:  logger.Named("scoring"),
		metrics: metrics,
	}
}

// BaseURL returns the endpoint the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit sends the vehicle to POST /api/check and classifies what came back
func (c *Client) Submit(ctx context.Context, query vehicle.Query) fraud.Outcome {
	requestID := uuid.NewString()
	start := time.Now()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", checkPath))

	log.Debug("submitting vehicle",
		zap.String("make", query.Make),
		zap.String("model", query.Model),
		zap.Int("year", query.Year),
	)

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(requestIDHeader, requestID).
		SetBody(query).
		Post(checkPath)

	outcome := classify(resp, err)
	c.metrics.observe(checkPath, outcomeLabel(outcome.Failure), time.Since(start))

	if outcome.Failure != nil {
		log.Warn("fraud check failed",
			zap.String("kind", string(outcome.Failure.Kind)),
			zap.Int("status", outcome.Failure.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.Error(outcome.Failure),
		)
		return outcome
	}

	log.Debug("fraud check succeeded",
		zap.Float64("fraud_score", outcome.Verdict.FraudScore),
		zap.Bool("is_suspicious", outcome.Verdict.IsSuspicious),
		zap.Duration("duration", time.Since(start)),
	)
	return outcome
}

// classify turns a resty result into an outcome
func classify(resp *resty.Response, err error) fraud.Outcome {
	if err != nil {
		return fraud.Failed(fraud.NewTransportFailure(err))
	}

	if !resp.IsSuccess() {
		return fraud.Failed(fraud.NewServiceFailure(resp.StatusCode(), string(resp.Body())))
	}

	verdict, err := fraud.DecodeVerdict(resp.Body())
	if err != nil {
		return fraud.Failed(fraud.NewProtocolFailure(resp.StatusCode(), err))
	}

	return fraud.Succeeded(verdict)
}

// CheckHealth calls GET /health for diagnostics and returns the JSON it got.
// Failures are *fraud.Failure values classified like Submit's.
func (c *Client) CheckHealth(ctx context.Context) (json.RawMessage, error) {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		Get(healthPath)

	var failure *fraud.Failure
	switch {
	case err != nil:
		failure = fraud.NewTransportFailure(err)
	case !resp.IsSuccess():
		failure = fraud.NewServiceFailure(resp.StatusCode(), string(resp.Body()))
	case !json.Valid(resp.Body()):
		failure = fraud.NewProtocolFailure(resp.StatusCode(), fraud.ErrInvalidVerdictShape)
	}

	c.metrics.observe(healthPath, outcomeLabel(failure), time.Since(start))

	if failure != nil {
		c.logger.Warn("health check failed",
			zap.String("request_id", requestID),
			zap.String("kind", string(failure.Kind)),
			zap.Error(failure),
		)
		return nil, failure
	}

	return json.RawMessage(resp.Body()), nil
}
