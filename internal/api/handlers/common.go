package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/service"
	"debate_hub/internal/utils"
)

// respondError 把服務層的哨兵錯誤對應到 HTTP 狀態碼
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrDebateNotFound),
		errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrDebateModified):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAlreadyJoined),
		errors.Is(err, service.ErrNotJoined),
		errors.Is(err, service.ErrDebateCancelled),
		errors.Is(err, service.ErrDebateLocked),
		errors.Is(err, service.ErrAlreadyRevealed),
		errors.Is(err, service.ErrNoTopicsAvailable),
		errors.Is(err, service.ErrTopicInUse),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, utils.ErrInvalidTimeFormat):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
