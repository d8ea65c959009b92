package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/models"
	"debate_hub/internal/service"
)

// UserHandler 處理用戶同步與個人資料查詢
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SyncUser 前端在 Clerk 登入後呼叫，建立或更新本地用戶記錄
func (h *UserHandler) SyncUser(c *gin.Context) {
	var input struct {
		ClerkID string `json:"clerk_id" binding:"required"`
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Avatar  string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.SyncUser(input.ClerkID, input.Name, input.Email, input.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetProfile 查詢當前用戶的資料與已加入的辯論
func (h *UserHandler) GetProfile(c *gin.Context) {
	current := c.MustGet("currentUser").(*models.User)

	user, err := h.userService.GetProfile(current.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
