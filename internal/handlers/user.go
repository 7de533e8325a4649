package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/services"
)

type UserHandler struct {
	log     *logger.Logger
	userSvc services.UserService
}

func NewUserHandler(log *logger.Logger, userSvc services.UserService) *UserHandler {
	return &UserHandler{
		log:     log.With("handler", "UserHandler"),
		userSvc: userSvc,
	}
}

// GET /api/user
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	user, err := h.userSvc.GetMe(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

// DELETE /api/user
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	if err := h.userSvc.DeleteMe(c.Request.Context(), userID); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
