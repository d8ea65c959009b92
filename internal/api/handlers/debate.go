package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/models"
	"debate_hub/internal/service"
)

// DebateHandler 處理辯論的查詢、管理與成員進出
type DebateHandler struct {
	debateService *service.DebateService
}

func NewDebateHandler(debateService *service.DebateService) *DebateHandler {
	return &DebateHandler{debateService: debateService}
}

// parseDate 接受 "2006-01-02" 或完整的 RFC3339 日期字串
func parseDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateDebate 處理建立辯論（僅限管理員）
func (h *DebateHandler) CreateDebate(c *gin.Context) {
	var input struct {
		Date     string `json:"date" binding:"required"`
		Time     string `json:"time" binding:"required"`
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的日期格式"})
		return
	}

	debate, err := h.debateService.CreateDebate(date, input.Time, input.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debate": debate})
}

// ListDebates 列出所有辯論
func (h *DebateHandler) ListDebates(c *gin.Context) {
	debates, err := h.debateService.ListDebates()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debates": debates})
}

// GetDebate 查詢單一辯論
func (h *DebateHandler) GetDebate(c *gin.Context) {
	debate, err := h.debateService.GetDebate(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debate": debate})
}

// UpdateDebate 處理管理員更新辯論欄位
func (h *DebateHandler) UpdateDebate(c *gin.Context) {
	var input struct {
		Date     *string `json:"date"`
		Time     *string `json:"time"`
		Location *string `json:"location"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.UpdateDebateInput{
		Time:     input.Time,
		Location: input.Location,
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "無效的日期格式"})
			return
		}
		update.Date = &date
	}
	if input.Status != nil {
		status := models.DebateStatus(*input.Status)
		update.Status = &status
	}

	debate, err := h.debateService.UpdateDebate(c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debate": debate})
}

// DeleteDebate 處理刪除辯論（成員關聯一併清除）
func (h *DebateHandler) DeleteDebate(c *gin.Context) {
	if err := h.debateService.DeleteDebate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "辯論已刪除"})
}

// membershipInput 定義加入/退出辯論請求的結構
type membershipInput struct {
	DebateID string `json:"debate_id" binding:"required"`
}

// JoinDebate 處理用戶加入辯論
func (h *DebateHandler) JoinDebate(c *gin.Context) {
	var input membershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := c.MustGet("currentUser").(*models.User)
	if err := h.debateService.Join(input.DebateID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入辯論"})
}

// LeaveDebate 處理用戶退出辯論
func (h *DebateHandler) LeaveDebate(c *gin.Context) {
	var input membershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := c.MustGet("currentUser").(*models.User)
	if err := h.debateService.Leave(input.DebateID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功退出辯論"})
}

// RevealDebate 處理管理員手動揭示題目
func (h *DebateHandler) RevealDebate(c *gin.Context) {
	topic, err := h.debateService.RevealNow(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "題目「" + topic.Title + "」已揭示並通知所有成員",
		"topic":   topic,
	})
}
