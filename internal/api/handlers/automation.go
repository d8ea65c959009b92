package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/service"
)

// AutomationHandler 讓外部排程器（或手動呼叫）觸發一次自動排程
type AutomationHandler struct {
	automationService *service.AutomationService
}

func NewAutomationHandler(automationService *service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automationService: automationService}
}

// Run 執行一次完整掃描並回傳統計結果。
// 單筆失敗已累計在 summary 裡，整個執行不會以錯誤收場
func (h *AutomationHandler) Run(c *gin.Context) {
	summary := h.automationService.Run()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Debate automation processed",
		"summary": summary,
	})
}
