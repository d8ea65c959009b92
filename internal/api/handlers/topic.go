package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/service"
)

// TopicHandler 處理題目的管理請求（僅限管理員）
type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// CreateTopic 處理新增題目
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := c.Get("adminID")
	topic, err := h.topicService.CreateTopic(input.Title, input.Description, adminID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

// ListTopics 列出所有題目
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topicService.ListTopics()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// ListUnusedTopics 列出尚未被任何辯論使用的題目
func (h *TopicHandler) ListUnusedTopics(c *gin.Context) {
	topics, err := h.topicService.ListUnused()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// GetTopic 查詢單一題目
func (h *TopicHandler) GetTopic(c *gin.Context) {
	topic, err := h.topicService.GetTopic(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

// DeleteTopic 刪除題目（被辯論引用的題目會被拒絕）
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	if err := h.topicService.DeleteTopic(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "題目已刪除"})
}
