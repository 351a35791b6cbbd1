package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftstats/internal/middleware"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=insights_test

type insightsGenerator interface {
	Generate(ctx context.Context, ownerID string) (*Insight, error)
}

type Handler struct {
	generator insightsGenerator
}

func NewHandler(generator insightsGenerator) *Handler {
	return &Handler{
		generator: generator,
	}
}

// SetupRoutes registers the insights route, rate limited per owner since every
// uncached request costs a collaborator call.
func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	insightsRouter := r.PathPrefix("/owners/{owner}/insights").Subrouter()
	insightsRouter.HandleFunc("", handler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-insight")
	if allowedPerMin > 0 {
		insightsRouter.Use(middleware.RateLimit(rateLimiter, "insights", allowedPerMin, metricsManager))
	}
}

// HandleGenerate responds with the insight as JSON, or with the rendered HTML only when ?format=html.
func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.generate")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	span.SetAttributes(attribute.String("owner", owner))

	insight, err := handler.generator.Generate(ctx, owner)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoWorkouts):
			http.Error(w, "no workouts logged", http.StatusNotFound)
		case errors.Is(err, ErrInsightsUnavailable):
			log.Warnf("generate insight for [%s]: %s", owner, err)
			http.Error(w, "insights currently unavailable", http.StatusBadGateway)
		default:
			log.Errorf("generate insight for [%s]: %s", owner, err)
			http.Error(w, "generate insight failed", http.StatusInternalServerError)
		}
		return
	}

	if r.URL.Query().Get("format") == "html" {
		pkg.WriteHTMLResponseOK(w, insight.HTML)
		return
	}

	insightJson, err := json.Marshal(insight)
	if err != nil {
		log.Errorf("marshal insight: %s", err)
		http.Error(w, "marshal insight error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, insightJson)
}
