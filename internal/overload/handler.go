package overload

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/overload/volume"
	"github.com/2beens/overload/internal/telemetry/metrics"
	"github.com/2beens/overload/internal/telemetry/tracing"
	"github.com/2beens/overload/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const defaultSplitDays = 3

type RecordsResponse struct {
	Records []strength.Record `json:"records"`
	Total   int               `json:"total"`
}

type BestResponse struct {
	UserID             string   `json:"userId"`
	ExerciseID         string   `json:"exerciseId"`
	EstimatedOneRepMax *float64 `json:"estimatedOneRepMax"`
}

type VolumeRequest struct {
	Workouts []training.Workout `json:"workouts"`
}

type VolumeResponse struct {
	Volume []volume.MuscleGroupVolume `json:"volume"`
}

type Handler struct {
	engine         *Engine
	metricsManager *metrics.Manager
}

func NewHandler(engine *Engine, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		engine:         engine,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers every engine route on r. recordLimiter, when not nil,
// wraps the record-a-set route.
func (handler *Handler) SetupRoutes(r *mux.Router, recordLimiter mux.MiddlewareFunc) {
	var recordSet http.Handler = http.HandlerFunc(handler.HandleRecordSet)
	if recordLimiter != nil {
		recordSet = recordLimiter(recordSet)
	}

	r.Handle("/users/{user}/sets", recordSet).Methods("POST", "OPTIONS").Name("record-set")
	r.HandleFunc("/users/{user}/exercises/{exercise}/history", handler.HandleHistory).Methods("GET", "OPTIONS").Name("exercise-history")
	r.HandleFunc("/users/{user}/exercises/{exercise}/best", handler.HandleCurrentBest).Methods("GET", "OPTIONS").Name("current-best")
	r.HandleFunc("/users/{user}/exercises/{exercise}/recommendation", handler.HandleRecommendation).Methods("GET", "OPTIONS").Name("recommendation")
	r.HandleFunc("/users/{user}/prs", handler.HandlePRs).Methods("GET", "OPTIONS").Name("personal-records")
	r.HandleFunc("/users/{user}/volume", handler.HandleUserVolume).Methods("GET", "OPTIONS").Name("user-volume")
	r.HandleFunc("/users/{user}/split", handler.HandleSplit).Methods("GET", "OPTIONS").Name("split")
	r.HandleFunc("/users/{user}/advice", handler.HandleAdvice).Methods("GET", "OPTIONS").Name("advice")
	r.HandleFunc("/volume", handler.HandleVolume).Methods("POST", "OPTIONS").Name("weekly-volume")
}

func (handler *Handler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.recordSet")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var input SetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("record set, unmarshal json params: %s", err)
		http.Error(w, "record set failed, invalid json", http.StatusBadRequest)
		return
	}
	input.UserID = mux.Vars(r)["user"]

	evaluation, err := handler.engine.LogAndEvaluate(ctx, input)
	if err != nil {
		handler.writeError(w, "record set", err)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterSetsRecorded.Inc()
		if evaluation.IsPR {
			handler.metricsManager.CounterPersonalRecords.Inc()
		}
	}

	log.Debugf("set recorded: [%s] [%s] %v x %d, pr: %t",
		input.UserID, evaluation.Record.ExerciseID, evaluation.Record.Weight, evaluation.Record.Reps, evaluation.IsPR)
	pkg.WriteJSON(w, evaluation, http.StatusCreated)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.history")
	defer span.End()

	vars := mux.Vars(r)
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "error, limit NaN", http.StatusBadRequest)
		return
	}

	records, err := handler.engine.History(ctx, vars["user"], vars["exercise"], limit)
	if err != nil {
		handler.writeError(w, "history", err)
		return
	}

	pkg.WriteJSON(w, RecordsResponse{Records: nonNil(records), Total: len(records)}, http.StatusOK)
}

func (handler *Handler) HandleCurrentBest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.currentBest")
	defer span.End()

	vars := mux.Vars(r)
	best, err := handler.engine.CurrentBest(ctx, vars["user"], vars["exercise"])
	if err != nil {
		handler.writeError(w, "current best", err)
		return
	}

	pkg.WriteJSON(w, BestResponse{
		UserID:             vars["user"],
		ExerciseID:         vars["exercise"],
		EstimatedOneRepMax: best,
	}, http.StatusOK)
}

func (handler *Handler) HandlePRs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.prs")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "error, limit NaN", http.StatusBadRequest)
		return
	}

	records, err := handler.engine.AllPRs(ctx, mux.Vars(r)["user"], limit)
	if err != nil {
		handler.writeError(w, "personal records", err)
		return
	}

	pkg.WriteJSON(w, RecordsResponse{Records: nonNil(records), Total: len(records)}, http.StatusOK)
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.volume")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req VolumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("weekly volume, unmarshal json params: %s", err)
		http.Error(w, "weekly volume failed, invalid json", http.StatusBadRequest)
		return
	}

	volumes, err := handler.engine.WeeklyVolume(req.Workouts)
	if err != nil {
		handler.writeError(w, "weekly volume", err)
		return
	}

	pkg.WriteJSON(w, VolumeResponse{Volume: volumes}, http.StatusOK)
}

func (handler *Handler) HandleUserVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.userVolume")
	defer span.End()

	volumes, err := handler.engine.UserVolume(ctx, mux.Vars(r)["user"])
	if err != nil {
		handler.writeError(w, "user volume", err)
		return
	}

	pkg.WriteJSON(w, VolumeResponse{Volume: volumes}, http.StatusOK)
}

func (handler *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.recommendation")
	defer span.End()

	vars := mux.Vars(r)
	strategy := progression.Strategy(r.URL.Query().Get("strategy"))

	rec, err := handler.engine.Recommend(ctx, vars["user"], vars["exercise"], strategy)
	if err != nil {
		handler.writeError(w, "recommendation", err)
		return
	}
	handler.countRecommendations(rec)

	pkg.WriteJSON(w, rec, http.StatusOK)
}

func (handler *Handler) HandleSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.split")
	defer span.End()

	days, err := queryInt(r, "days", defaultSplitDays)
	if err != nil {
		http.Error(w, "error, days NaN", http.StatusBadRequest)
		return
	}

	plan, err := handler.engine.Split(ctx, mux.Vars(r)["user"], days)
	if err != nil {
		handler.writeError(w, "split", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overload.advice")
	defer span.End()

	days, err := queryInt(r, "days", defaultSplitDays)
	if err != nil {
		http.Error(w, "error, days NaN", http.StatusBadRequest)
		return
	}
	strategy := progression.Strategy(r.URL.Query().Get("strategy"))

	advice, err := handler.engine.Advise(ctx, mux.Vars(r)["user"], days, strategy)
	if err != nil {
		handler.writeError(w, "advice", err)
		return
	}
	handler.countRecommendations(advice.Recommendations...)

	pkg.WriteJSON(w, advice, http.StatusOK)
}

func (handler *Handler) countRecommendations(recs ...progression.Recommendation) {
	if handler.metricsManager == nil {
		return
	}
	for _, rec := range recs {
		handler.metricsManager.CounterRecommendations.With(prometheus.Labels{
			"strategy":  string(rec.Strategy),
			"rationale": string(rec.Rationale),
		}).Inc()
	}
}

func (handler *Handler) writeError(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, training.ErrInvalidInput) {
		log.Tracef("%s, invalid input: %s", operation, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Errorf("%s failed: %s", operation, err)
	http.Error(w, "error, "+operation+" failed", http.StatusInternalServerError)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func nonNil(records []strength.Record) []strength.Record {
	if records == nil {
		return []strength.Record{}
	}
	return records
}
