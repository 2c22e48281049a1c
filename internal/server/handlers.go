// internal/server/handlers.go
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/history"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner"
)

type handlers struct {
	planner *planner.Planner
	store   *history.Store
	logger  logger.Logger
}

func newHandlers(p *planner.Planner, store *history.Store, log logger.Logger) *handlers {
	return &handlers{
		planner: p,
		store:   store,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

type workoutRequest struct {
	Query  string `json:"query" binding:"required"`
	UserID string `json:"user_id"`
}

type workoutResponse struct {
	WorkoutPlan *models.WorkoutPlan `json:"workout_plan"`
}

func (h *handlers) generateWorkout(c *gin.Context) {
	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewInvalidRequestError(err.Error())
		c.JSON(apperrors.HTTPStatus(appErr), apperrors.ToEnvelope(appErr))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		appErr := apperrors.NewInvalidRequestError("query must not be blank")
		c.JSON(apperrors.HTTPStatus(appErr), apperrors.ToEnvelope(appErr))
		return
	}

	plan := h.planner.Generate(c.Request.Context(), req.Query)

	// History is best effort, a failed save never blocks the response.
	if h.store != nil && req.UserID != "" {
		entry := models.HistoryEntry{
			UserID:      req.UserID,
			Query:       req.Query,
			WorkoutPlan: plan,
			Timestamp:   time.Now().UTC(),
		}
		if err := h.store.Save(c.Request.Context(), entry); err != nil {
			h.logger.WithError(err).Warn("failed to save workout history", map[string]interface{}{
				"userId": req.UserID,
			})
		}
	}

	c.JSON(http.StatusOK, workoutResponse{WorkoutPlan: plan})
}

func (h *handlers) listHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, apperrors.HTTPEnvelope{
			Status:  "error",
			Message: "history is disabled",
		})
		return
	}

	userID := c.Param("userID")
	entries, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), apperrors.ToEnvelope(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"history": entries,
	})
}

func (h *handlers) recentHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, apperrors.HTTPEnvelope{
			Status:  "error",
			Message: "history is disabled",
		})
		return
	}

	userID := c.Param("userID")
	entry, err := h.store.Recent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), apperrors.ToEnvelope(err))
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, apperrors.HTTPEnvelope{
			Status:  "error",
			Message: "no workout history for user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"recent":  entry,
	})
}

func (h *handlers) deleteHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, apperrors.HTTPEnvelope{
			Status:  "error",
			Message: "history is disabled",
		})
		return
	}

	userID := c.Param("userID")
	deleted, err := h.store.DeleteByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), apperrors.ToEnvelope(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"deleted": deleted,
	})
}

func (h *handlers) healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
