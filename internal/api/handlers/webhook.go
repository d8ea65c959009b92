package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/service"
)

// WebhookHandler 處理 Clerk 的用戶生命週期 webhook
type WebhookHandler struct {
	userService *service.UserService
}

func NewWebhookHandler(userService *service.UserService) *WebhookHandler {
	return &WebhookHandler{userService: userService}
}

// clerkEvent 是 Clerk webhook 事件中我們關心的欄位
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleClerkWebhook 同步 user.created / user.updated，刪除 user.deleted
func (h *WebhookHandler) HandleClerkWebhook(c *gin.Context) {
	var evt clerkEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook processing failed"})
		return
	}

	switch evt.Type {
	case "user.created", "user.updated":
		name := strings.TrimSpace(evt.Data.FirstName + " " + evt.Data.LastName)
		if name == "" {
			name = "User"
		}
		var email string
		if len(evt.Data.EmailAddresses) > 0 {
			email = evt.Data.EmailAddresses[0].EmailAddress
		}

		if _, err := h.userService.SyncUser(evt.Data.ID, name, email, evt.Data.ImageURL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook processing failed"})
			return
		}

	case "user.deleted":
		if err := h.userService.DeleteByClerkID(evt.Data.ID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook processing failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
