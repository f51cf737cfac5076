package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/domain"
	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type ThreadHandler struct {
	threadService service.ThreadService
	log           logger.Logger
}

func NewThreadHandler(threadService service.ThreadService, log logger.Logger) *ThreadHandler {
	return &ThreadHandler{
		threadService: threadService,
		log:           log,
	}
}

func (h *ThreadHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	views, err := h.threadService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *ThreadHandler) Messages(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	messages, err := h.threadService.Messages(c.Request.Context(), threadID, userID)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

type postMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *ThreadHandler) PostMessage(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread ID"})
		return
	}

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	message, err := h.threadService.PostMessage(c.Request.Context(), threadID, userID, req.Body)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

type contactRequest struct {
	ContentType string    `json:"content_type" binding:"required"`
	ContentID   uuid.UUID `json:"content_id" binding:"required"`
	HostID      uuid.UUID `json:"host_id" binding:"required"`
	Body        string    `json:"body" binding:"required"`
}

// Contact handles the first message to a listing or request owner,
// creating the thread if it does not exist yet.
func (h *ThreadHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	ref := domain.ContentRef{Type: req.ContentType, ID: req.ContentID}
	thread, message, err := h.threadService.Contact(c.Request.Context(), ref, userID, req.HostID, req.Body)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"thread":  thread,
		"message": message,
	})
}
