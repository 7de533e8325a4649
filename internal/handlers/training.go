package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/requestdata"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/services"
)

type TrainingHandler struct {
	log         *logger.Logger
	trainingSvc services.TrainingService
}

func NewTrainingHandler(log *logger.Logger, trainingSvc services.TrainingService) *TrainingHandler {
	return &TrainingHandler{
		log:         log.With("handler", "TrainingHandler"),
		trainingSvc: trainingSvc,
	}
}

// metricsPayload decouples the wire format from the engine type: absent
// fields stay nil and get neutral defaults instead of zero values, per the
// engine's never-fail contract for UI telemetry.
type metricsPayload struct {
	Completed       *bool              `json:"completed"`
	Accuracy        *float64           `json:"accuracy"`
	AvgResponseMS   *float64           `json:"avg_response_ms"`
	TimeRemainingMS *float64           `json:"time_remaining_ms"`
	Frustration     *float64           `json:"frustration"`
	Engagement      *float64           `json:"engagement"`
	EarlyClicks     int                `json:"early_clicks"`
	Moves           int                `json:"moves"`
	ComboStreak     int                `json:"combo_streak"`
	SubSkills       map[string]float64 `json:"sub_skill_accuracy"`
}

func (p metricsPayload) toMetrics() bandit.PerformanceMetrics {
	m := bandit.PerformanceMetrics{
		Accuracy:         0.5,
		Engagement:       0.5,
		EarlyClicks:      p.EarlyClicks,
		Moves:            p.Moves,
		ComboStreak:      p.ComboStreak,
		SubSkillAccuracy: p.SubSkills,
	}
	if p.Completed != nil {
		m.Completed = *p.Completed
	}
	if p.Accuracy != nil {
		m.Accuracy = *p.Accuracy
	}
	if p.AvgResponseMS != nil {
		m.AvgResponseMS = *p.AvgResponseMS
	}
	if p.TimeRemainingMS != nil {
		m.TimeRemainingMS = *p.TimeRemainingMS
	}
	if p.Frustration != nil {
		m.Frustration = *p.Frustration
	}
	if p.Engagement != nil {
		m.Engagement = *p.Engagement
	}
	return m
}

type nextActionRequest struct {
	Context bandit.Context `json:"context"`
}

type completeRequest struct {
	Context bandit.Context `json:"context"`
	Action  bandit.Action  `json:"action"`
	Metrics metricsPayload `json:"metrics"`
}

type trendRequest struct {
	Context bandit.Context `json:"context"`
}

func currentUserID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no authenticated user")
	}
	return rd.UserID, nil
}

// GET /api/games
func (h *TrainingHandler) ListGames(c *gin.Context) {
	RespondOK(c, gin.H{"games": h.trainingSvc.ListGames()})
}

// POST /api/games/:game/next-action
func (h *TrainingHandler) NextAction(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req nextActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	action, err := h.trainingSvc.NextAction(c.Request.Context(), userID, c.Param("game"), req.Context)
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, gin.H{"action": action})
}

// POST /api/games/:game/complete
func (h *TrainingHandler) CompleteLevel(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.trainingSvc.CompleteLevel(
		c.Request.Context(), userID, c.Param("game"),
		req.Context, req.Action, req.Metrics.toMetrics())
	if errors.Is(err, services.ErrUnknownAction) {
		RespondError(c, http.StatusBadRequest, "unknown_action", err)
		return
	}
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/games/:game/stats
func (h *TrainingHandler) Stats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	stats, err := h.trainingSvc.Stats(c.Request.Context(), userID, c.Param("game"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, stats)
}

// GET /api/games/:game/history
func (h *TrainingHandler) History(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := h.trainingSvc.History(c.Request.Context(), userID, c.Param("game"), limit)
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, gin.H{"history": events})
}

// POST /api/games/:game/trend
func (h *TrainingHandler) Trend(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req trendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	trend, err := h.trainingSvc.Trend(c.Request.Context(), userID, c.Param("game"), req.Context)
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, trend)
}

// POST /api/games/:game/reset
func (h *TrainingHandler) Reset(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	if err := h.trainingSvc.Reset(c.Request.Context(), userID, c.Param("game")); err != nil {
		RespondError(c, http.StatusNotFound, "unknown_game", err)
		return
	}
	RespondOK(c, gin.H{"status": "reset"})
}
