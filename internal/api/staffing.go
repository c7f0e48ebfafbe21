// Package api exposes the staffing engine over HTTP. Handlers stay
// thin: convert call-center units, call the engine, persist and
// broadcast the outcome.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffcast/staffcast/internal/metrics"
	"github.com/staffcast/staffcast/internal/staffing"
	"github.com/staffcast/staffcast/internal/storage"
)

const secondsPerHour = 3600.0

// RequiredSolver answers "how many agents do I need" queries without a
// current agent count.
type RequiredSolver interface {
	RequiredAgentsFor(arrivalRate, serviceTime, targetServiceLevel float64) (int, error)
}

// Broadcaster pushes evaluation snapshots to live subscribers.
type Broadcaster interface {
	Broadcast(message []byte)
}

// StaffingHandler handles HTTP requests for staffing computations
type StaffingHandler struct {
	evaluator             staffing.Evaluator
	solver                RequiredSolver
	store                 storage.Store
	broadcaster           Broadcaster
	defaultAnswerTimeSecs float64
	logger                zerolog.Logger
}

// NewStaffingHandler creates a new StaffingHandler
func NewStaffingHandler(evaluator staffing.Evaluator, solver RequiredSolver, store storage.Store, broadcaster Broadcaster, defaultAnswerTimeSecs float64, logger zerolog.Logger) *StaffingHandler {
	return &StaffingHandler{
		evaluator:             evaluator,
		solver:                solver,
		store:                 store,
		broadcaster:           broadcaster,
		defaultAnswerTimeSecs: defaultAnswerTimeSecs,
		logger:                logger.With().Str("component", "staffing-api").Logger(),
	}
}

// evaluateRequest is the JSON body for POST /api/staffing/evaluate
type evaluateRequest struct {
	ArrivalRatePerHour   float64  `json:"arrivalRatePerHour"`
	AvgHandleTimeSecs    float64  `json:"avgHandleTimeSecs"`
	AgentCount           int      `json:"agentCount"`
	TargetServiceLevel   float64  `json:"targetServiceLevel"`
	TargetAnswerTimeSecs *float64 `json:"targetAnswerTimeSecs,omitempty"` // defaults when omitted
}

// evaluateResponse mirrors staffing.Result in call-center units.
// AverageWaitSecs is null when the queue is unstable.
type evaluateResponse struct {
	TrafficIntensity float64  `json:"trafficIntensity"`
	WaitProbability  float64  `json:"waitProbability"`
	AverageWaitSecs  *float64 `json:"averageWaitSecs"`
	ServiceLevel     float64  `json:"serviceLevel"`
	RequiredAgents   int      `json:"requiredAgents"`
	MeetsTarget      bool     `json:"meetsTarget"`
	QueueStable      bool     `json:"queueStable"`
	Recommendation   string   `json:"recommendation"`
}

// snapshot is the payload broadcast on the live feed after an evaluation
type snapshot struct {
	Type      string           `json:"type"`
	Timestamp string           `json:"timestamp"`
	Request   evaluateRequest  `json:"request"`
	Result    evaluateResponse `json:"result"`
}

func (req evaluateRequest) query(defaultAnswerTimeSecs float64) staffing.Query {
	answerTimeSecs := defaultAnswerTimeSecs
	if req.TargetAnswerTimeSecs != nil {
		answerTimeSecs = *req.TargetAnswerTimeSecs
	}
	return staffing.Query{
		ArrivalRate:        req.ArrivalRatePerHour,
		ServiceTime:        req.AvgHandleTimeSecs / secondsPerHour,
		AgentCount:         req.AgentCount,
		TargetServiceLevel: req.TargetServiceLevel,
		TargetAnswerTime:   answerTimeSecs / secondsPerHour,
	}
}

// HandleEvaluate handles POST /api/staffing/evaluate
func (h *StaffingHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.evaluator.Evaluate(req.query(h.defaultAnswerTimeSecs))
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if result.Unstable() {
		metrics.EvaluationsTotal.WithLabelValues(metrics.OutcomeUnstable).Inc()
	} else {
		metrics.EvaluationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	}

	resp := toResponse(result)
	h.persist(req, resp)
	h.publish(req, resp)

	writeJSON(w, http.StatusOK, resp)
}

// requiredAgentsRequest is the JSON body for POST /api/staffing/required-agents
type requiredAgentsRequest struct {
	ArrivalRatePerHour float64 `json:"arrivalRatePerHour"`
	AvgHandleTimeSecs  float64 `json:"avgHandleTimeSecs"`
	TargetServiceLevel float64 `json:"targetServiceLevel"`
}

// HandleRequiredAgents handles POST /api/staffing/required-agents
func (h *StaffingHandler) HandleRequiredAgents(w http.ResponseWriter, r *http.Request) {
	var req requiredAgentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	serviceTime := req.AvgHandleTimeSecs / secondsPerHour
	required, err := h.solver.RequiredAgentsFor(req.ArrivalRatePerHour, serviceTime, req.TargetServiceLevel)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	metrics.RequiredAgentsQueriesTotal.Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requiredAgents":   required,
		"trafficIntensity": req.ArrivalRatePerHour * serviceTime,
	})
}

// HandleHistory handles GET /api/staffing/history?date=YYYY-MM-DD
func (h *StaffingHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	dateKey := r.URL.Query().Get("date")
	if dateKey == "" {
		dateKey = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	records, err := h.store.GetEvaluations(dateKey)
	if err != nil {
		h.logger.Error().Err(err).Str("date", dateKey).Msg("failed to load evaluation history")
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []storage.EvaluationRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":        dateKey,
		"evaluations": records,
	})
}

// writeEngineError maps engine errors onto HTTP statuses: validation
// failures carry the offending field at 422, anything else is a 500.
func (h *StaffingHandler) writeEngineError(w http.ResponseWriter, err error) {
	var verr *staffing.ValidationError
	if errors.As(err, &verr) {
		metrics.EvaluationsTotal.WithLabelValues(metrics.OutcomeValidationError).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
		return
	}
	h.logger.Error().Err(err).Msg("staffing evaluation failed")
	http.Error(w, "evaluation failed", http.StatusInternalServerError)
}

func (h *StaffingHandler) persist(req evaluateRequest, resp evaluateResponse) {
	now := time.Now().UTC()
	record := storage.EvaluationRecord{
		DateKey:            now.Format("2006-01-02"),
		ID:                 uuid.New().String(),
		Timestamp:          now.Format(time.RFC3339),
		ArrivalRatePerHour: req.ArrivalRatePerHour,
		AvgHandleTimeSecs:  req.AvgHandleTimeSecs,
		AgentCount:         req.AgentCount,
		TargetServiceLevel: req.TargetServiceLevel,
		TrafficIntensity:   resp.TrafficIntensity,
		WaitProbability:    resp.WaitProbability,
		AverageWaitSecs:    -1,
		ServiceLevel:       resp.ServiceLevel,
		RequiredAgents:     resp.RequiredAgents,
		MeetsTarget:        resp.MeetsTarget,
		QueueStable:        resp.QueueStable,
	}
	record.TargetAnswerTimeSecs = h.defaultAnswerTimeSecs
	if req.TargetAnswerTimeSecs != nil {
		record.TargetAnswerTimeSecs = *req.TargetAnswerTimeSecs
	}
	if resp.AverageWaitSecs != nil {
		record.AverageWaitSecs = *resp.AverageWaitSecs
	}

	if err := h.store.SaveEvaluation(record); err != nil {
		h.logger.Error().Err(err).Msg("failed to persist evaluation")
	}
}

func (h *StaffingHandler) publish(req evaluateRequest, resp evaluateResponse) {
	if h.broadcaster == nil {
		return
	}
	data, err := json.Marshal(snapshot{
		Type:      "staffing_snapshot",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Request:   req,
		Result:    resp,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal feed snapshot")
		return
	}
	h.broadcaster.Broadcast(data)
}

func toResponse(result staffing.Result) evaluateResponse {
	resp := evaluateResponse{
		TrafficIntensity: result.TrafficIntensity,
		WaitProbability:  result.WaitProbability,
		ServiceLevel:     result.ServiceLevel,
		RequiredAgents:   result.RequiredAgents,
		MeetsTarget:      result.MeetsTarget,
		QueueStable:      !result.Unstable(),
		Recommendation:   result.Recommendation,
	}
	if !result.Unstable() {
		waitSecs := result.AverageWaitTime * secondsPerHour
		resp.AverageWaitSecs = &waitSecs
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// InstrumentEndpoint wraps a handler func with the per-endpoint HTTP
// request counter.
func InstrumentEndpoint(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
