package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"debate_hub/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS 交由前端部署環境處理
	},
}

// WebSocketHandler 處理辯論事件訂閱的 WebSocket 連線
type WebSocketHandler struct {
	feed          *service.EventFeed
	debateService *service.DebateService
}

func NewWebSocketHandler(feed *service.EventFeed, debateService *service.DebateService) *WebSocketHandler {
	return &WebSocketHandler{feed: feed, debateService: debateService}
}

// HandleWebSocket 升級連線並訂閱指定辯論的狀態事件
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	debateID := c.Param("id")

	// 確認辯論存在再升級連線
	if _, err := h.debateService.GetDebate(debateID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.feed.HandleConnection(conn, debateID)
}
