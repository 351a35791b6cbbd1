package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=insights_test

var ErrNoWorkouts = errors.New("no workouts logged")

type workoutsLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]analytics.WorkoutRecord, error)
}

type summarizer interface {
	Summarize(ctx context.Context, body []byte) (string, error)
}

type Insight struct {
	Raw    string `json:"raw"`
	HTML   string `json:"html"`
	Cached bool   `json:"cached"`
}

type Service struct {
	workouts       workoutsLister
	summarizer     summarizer
	cache          Cache
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
}

func NewService(
	workouts workoutsLister,
	summarizer summarizer,
	cache Cache,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		workouts:       workouts,
		summarizer:     summarizer,
		cache:          cache,
		cacheTTL:       cacheTTL,
		metricsManager: metricsManager,
	}
}

// Generate asks the summarization collaborator about the owner's workouts.
// Raw responses are cached by the content of the request body, so unchanged
// workouts never hit the collaborator twice within the cache TTL.
func (s *Service) Generate(ctx context.Context, ownerID string) (_ *Insight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.insights.generate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("owner", ownerID))

	records, err := s.workouts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoWorkouts
	}

	body, err := json.Marshal(Project(records))
	if err != nil {
		return nil, fmt.Errorf("marshal projected workouts: %w", err)
	}

	sum := sha256.Sum256(body)
	cacheKey := hex.EncodeToString(sum[:])

	raw, err := s.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("from-cache", true))
		s.countInsight(metrics.InsightSourceCache)
		return &Insight{
			Raw:    raw,
			HTML:   RenderMarkup(raw),
			Cached: true,
		}, nil
	case !errors.Is(err, ErrCacheMiss):
		// a broken cache only costs a collaborator call
		log.Errorf("insights cache get for [%s]: %s", ownerID, err)
	}
	span.SetAttributes(attribute.Bool("from-cache", false))

	raw, err = s.summarizer.Summarize(ctx, body)
	if err != nil {
		s.countInsight(metrics.InsightSourceFailed)
		return nil, fmt.Errorf("summarize workouts: %w", err)
	}
	s.countInsight(metrics.InsightSourceCollaborator)

	if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
		log.Errorf("insights cache set for [%s]: %s", ownerID, err)
	}

	return &Insight{
		Raw:  raw,
		HTML: RenderMarkup(raw),
	}, nil
}

func (s *Service) countInsight(source string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterInsights.WithLabelValues(source).Inc()
}
