package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"debate_hub/internal/models"
)

// FeedClient 代表一個訂閱辯論事件的 WebSocket 連線
type FeedClient struct {
	Conn     *websocket.Conn
	DebateID string
	SendChan chan *models.Event // 事件發送通道，用於異步推送
}

// EventFeed 管理所有訂閱連線，按辯論分組廣播狀態事件。
// 訂閱者是唯讀的：加入、退出、揭示、結束等事件由服務端推送
type EventFeed struct {
	clients    map[string]map[*FeedClient]bool // 兩層 map: debateID -> client -> bool
	clientsMux sync.RWMutex                    // 保護 clients map 的讀寫鎖
}

func NewEventFeed() *EventFeed {
	return &EventFeed{
		clients: make(map[string]map[*FeedClient]bool),
	}
}

// HandleConnection 處理新的訂閱連線，阻塞直到連線關閉
func (f *EventFeed) HandleConnection(conn *websocket.Conn, debateID string) {
	client := &FeedClient{
		Conn:     conn,
		DebateID: debateID,
		SendChan: make(chan *models.Event, 256),
	}

	f.addClient(client)

	// 連線關閉時移除訂閱。SendChan 不主動 close，
	// 以免與並發中的 Broadcast 發送相撞，留給 GC 回收即可
	defer func() {
		f.removeClient(client)
		conn.Close()
	}()

	go f.writePump(client)
	f.readPump(client)
}

// readPump 只負責偵測斷線與回應心跳，訂閱者傳來的內容一律丟棄
func (f *EventFeed) readPump(client *FeedClient) {
	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向客戶端推送事件的邏輯
func (f *EventFeed) writePump(client *FeedClient) {
	// 心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("event encoding error: %v", err)
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast 向訂閱該辯論的所有客戶端推送事件。
// 在鎖內先快照訂閱者清單，發送時才不會與 add/remove 並發讀寫同一個 map
func (f *EventFeed) Broadcast(event *models.Event) {
	f.clientsMux.RLock()
	subscribers := make([]*FeedClient, 0, len(f.clients[event.DebateID]))
	for client := range f.clients[event.DebateID] {
		subscribers = append(subscribers, client)
	}
	f.clientsMux.RUnlock()

	for _, client := range subscribers {
		select {
		case client.SendChan <- event:
			// 事件成功加入發送隊列
		default:
			// 客戶端隊列已滿，關閉連線
			f.removeClient(client)
			client.Conn.Close()
		}
	}
}

// addClient 安全地加入新的訂閱連線
func (f *EventFeed) addClient(client *FeedClient) {
	f.clientsMux.Lock()
	defer f.clientsMux.Unlock()

	if f.clients[client.DebateID] == nil {
		f.clients[client.DebateID] = make(map[*FeedClient]bool)
	}
	f.clients[client.DebateID][client] = true
}

// removeClient 安全地移除訂閱連線
func (f *EventFeed) removeClient(client *FeedClient) {
	f.clientsMux.Lock()
	defer f.clientsMux.Unlock()

	if clients, ok := f.clients[client.DebateID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(f.clients, client.DebateID)
		}
	}
}
