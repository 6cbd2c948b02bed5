package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"EnergyOptimizer/internal/domain/models"
	drepo "EnergyOptimizer/internal/domain/repository"
	xhttp "EnergyOptimizer/pkg/http"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPayload marks a 2xx JSON body that does not match the status contract.
var ErrInvalidPayload = errors.New("status: invalid payload")

// Error kinds reported to metrics.
const (
	KindTransport = "transport"
	KindHTTP      = "http_status"
	KindDecode    = "decode"
	KindContract  = "contract"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Wire shapes. Pointers tell "missing" apart from a legitimate zero.
type wireRecommendation struct {
	Type             string  `json:"type"`
	Message          *string `json:"message" validate:"required"`
	PotentialSavings *string `json:"potential_savings" validate:"required"`
}

type wireSnapshot struct {
	CurrentUsage    *float64             `json:"current_usage" validate:"required"`
	ExpectedUsage   *float64             `json:"expected_usage" validate:"required"`
	EfficiencyScore *float64             `json:"efficiency_score" validate:"required"`
	Recommendations []wireRecommendation `json:"recommendations" validate:"required,dive"`
}

type wirePoint struct {
	Time      *string  `json:"time" validate:"required"`
	Predicted *float64 `json:"predicted" validate:"required"`
	Optimal   *float64 `json:"optimal" validate:"required"`
}

type wirePayload struct {
	Predictions   []wirePoint   `json:"predictions" validate:"required,dive"`
	CurrentStatus *wireSnapshot `json:"current_status" validate:"required"`
}

// Client polls the status endpoint over HTTP.
type Client struct {
	url     string
	http    *xhttp.Client
	metrics drepo.Metrics
}

var _ drepo.StatusSource = (*Client)(nil)

// NewClient builds a source for url. metrics may be nil.
func NewClient(url string, timeout time.Duration, metrics drepo.Metrics, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		url:     url,
		http:    xhttp.NewClient(opts...),
		metrics: metrics,
	}
}

// URL returns the polled endpoint.
func (c *Client) URL() string { return c.url }

// Fetch issues one GET with no body and no custom headers and returns the
// validated payload.
func (c *Client) Fetch(ctx context.Context) (*models.StatusPayload, error) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordLatency("status_fetch", time.Since(start).Seconds())
		}
	}()

	var body wirePayload
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodGet,
		URL:    c.url,
	}, &body)
	if err == nil {
		if verr := validate.StructCtx(ctx, &body); verr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPayload, verr)
		}
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(Kind(err))
		}
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}

	return body.toModel(), nil
}

// Kind classifies a Fetch error for metrics and logs.
func Kind(err error) string {
	var statusErr *xhttp.StatusError
	var decodeErr *xhttp.DecodeError
	switch {
	case errors.Is(err, ErrInvalidPayload):
		return KindContract
	case errors.As(err, &statusErr):
		return KindHTTP
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindTransport
	}
}

func (p *wirePayload) toModel() *models.StatusPayload {
	out := &models.StatusPayload{
		Predictions: make([]models.PredictionPoint, len(p.Predictions)),
		CurrentStatus: models.StatusSnapshot{
			CurrentUsage:    *p.CurrentStatus.CurrentUsage,
			ExpectedUsage:   *p.CurrentStatus.ExpectedUsage,
			EfficiencyScore: *p.CurrentStatus.EfficiencyScore,
			Recommendations: make([]models.Recommendation, len(p.CurrentStatus.Recommendations)),
		},
	}
	for i, pt := range p.Predictions {
		out.Predictions[i] = models.PredictionPoint{
			Time:      *pt.Time,
			Predicted: *pt.Predicted,
			Optimal:   *pt.Optimal,
		}
	}
	for i, r := range p.CurrentStatus.Recommendations {
		out.CurrentStatus.Recommendations[i] = models.Recommendation{
			Type:             r.Type,
			Message:          *r.Message,
			PotentialSavings: *r.PotentialSavings,
		}
	}
	return out
}
