package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, record analytics.WorkoutRecord) (*analytics.WorkoutRecord, error)
	Get(ctx context.Context, id int) (*analytics.WorkoutRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]analytics.WorkoutRecord, error)
	Delete(ctx context.Context, ownerID string, id int) error
}

type NewWorkoutRequest struct {
	Name      string               `json:"name" validate:"required"`
	Date      string               `json:"date"`
	Exercises []NewExerciseRequest `json:"exercises" validate:"required,min=1,dive"`
}

// NewExerciseRequest keeps Weight as a pointer so that a null or absent weight
// is rejected instead of read as 0.
type NewExerciseRequest struct {
	MuscleGroup  string   `json:"muscleGroup" validate:"required"`
	ExerciseName string   `json:"exercise" validate:"required"`
	Sets         int      `json:"sets" validate:"gt=0"`
	Reps         int      `json:"reps" validate:"gt=0"`
	Weight       *float64 `json:"weight" validate:"required"`
	IsAssisted   bool     `json:"isAssisted"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Workouts []analytics.WorkoutRecord `json:"workouts"`
	Total    int                       `json:"total"`
}

type Handler struct {
	repo           workoutsRepo
	engine         analytics.Engine
	metricsManager *metrics.Manager
	validate       *validator.Validate
	now            func() time.Time
}

func NewHandler(repo workoutsRepo, engine analytics.Engine, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		engine:         engine,
		metricsManager: metricsManager,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		now:            time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/owners/{owner}/workouts", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/owners/{owner}/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/owners/{owner}/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/owners/{owner}/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/owners/{owner}/analytics", handler.HandleAnalytics).Methods("GET", "OPTIONS").Name("get-analytics")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	span.SetAttributes(attribute.String("owner", owner))

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req NewWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if err := handler.validate.Struct(req); err != nil {
		log.Tracef("new workout, validation: %s", err)
		http.Error(w, fmt.Sprintf("invalid workout: %s", err), http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		req.Date = handler.now().Format("2006-01-02")
	} else if _, err := analytics.ParseWorkoutDate(req.Date); err != nil {
		http.Error(w, fmt.Sprintf("invalid workout date: %s", req.Date), http.StatusBadRequest)
		return
	}

	record := analytics.WorkoutRecord{
		OwnerID:   owner,
		Name:      req.Name,
		Date:      req.Date,
		Exercises: make([]analytics.ExerciseEntry, 0, len(req.Exercises)),
	}
	for _, e := range req.Exercises {
		record.Exercises = append(record.Exercises, analytics.ExerciseEntry{
			MuscleGroup:  e.MuscleGroup,
			ExerciseName: e.ExerciseName,
			Sets:         e.Sets,
			Reps:         e.Reps,
			Weight:       *e.Weight,
			IsAssisted:   e.IsAssisted,
		})
	}

	added, err := handler.repo.Add(ctx, record)
	if err != nil {
		log.Errorf("add workout for [%s]: %s", owner, err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}
	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsAdded.Inc()
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added workout: %s", err)
		http.Error(w, "marshal workout error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	span.SetAttributes(attribute.String("owner", owner))

	records, err := handler.repo.ListByOwner(ctx, owner)
	if err != nil {
		log.Errorf("list workouts for [%s]: %s", owner, err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Workouts: records,
		Total:    len(records),
	})
	if err != nil {
		log.Errorf("marshal workouts: %s", err)
		http.Error(w, "marshal workouts error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	owner := vars["owner"]
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	record, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) || (err == nil && record.OwnerID != owner) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get workout %d: %s", id, err)
		http.Error(w, "get workout failed", http.StatusInternalServerError)
		return
	}

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("marshal workout %d: %s", id, err)
		http.Error(w, "marshal workout error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recordJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	owner := vars["owner"]
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	if err := handler.repo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete workout %d of [%s]: %s", id, owner, err)
		http.Error(w, "delete workout failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteWorkoutResponse{DeletedID: id})
	if err != nil {
		log.Errorf("marshal delete workout response: %s", err)
		http.Error(w, "marshal response error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

// HandleAnalytics recomputes the owner's analytics from all stored workouts.
func (handler *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.analytics")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	span.SetAttributes(attribute.String("owner", owner))

	records, err := handler.repo.ListByOwner(ctx, owner)
	if err != nil {
		log.Errorf("analytics, list workouts for [%s]: %s", owner, err)
		http.Error(w, "get analytics failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("workouts", len(records)))

	start := time.Now()
	result, err := handler.engine.Recompute(records)
	handler.observeRecompute(time.Since(start), err)
	if err != nil {
		if errors.Is(err, analytics.ErrValidation) {
			log.Debugf("analytics for [%s]: %s", owner, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("analytics for [%s]: %s", owner, err)
		http.Error(w, "get analytics failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal analytics result: %s", err)
		http.Error(w, "marshal analytics error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}

func (handler *Handler) observeRecompute(took time.Duration, err error) {
	if handler.metricsManager == nil {
		return
	}

	handler.metricsManager.HistogramAnalyticsDuration.Observe(took.Seconds())
	switch {
	case err == nil:
		handler.metricsManager.CounterAnalyticsRecomputes.WithLabelValues(metrics.AnalyticsResultOK).Inc()
	case errors.Is(err, analytics.ErrValidation):
		handler.metricsManager.CounterAnalyticsRecomputes.WithLabelValues(metrics.AnalyticsResultValidationError).Inc()
	default:
		handler.metricsManager.CounterAnalyticsRecomputes.WithLabelValues(metrics.AnalyticsResultError).Inc()
	}
}
