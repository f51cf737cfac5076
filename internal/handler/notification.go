package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	log                 logger.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 log,
	}
}

type dispatchRequest struct {
	ThreadID   uuid.UUID `json:"thread_id" binding:"required"`
	Body       string    `json:"body" binding:"required"`
	SenderName string    `json:"sender_name"`
}

// Dispatch emails the other participant of a thread about a new message.
// The service re-validates the bearer token itself so the dispatch path
// can also be called outside the gin middleware chain.
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := c.MustGet("bearer_token").(string)

	result, err := h.notificationService.Dispatch(c.Request.Context(), token, req.ThreadID, req.Body, req.SenderName)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
