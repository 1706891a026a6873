package websocket

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Hub держит подключенных клиентов и рассылает им сообщения.
// Все изменения множества клиентов идут через горутину Run.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 8),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Register после остановки хаба сразу закрывает Send клиента.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run обслуживает хаб до отмены ctx, затем закрывает все соединения.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("websocket client connected", zap.String("role", string(client.Role)), zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("websocket client disconnected", zap.String("role", string(client.Role)))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// медленный клиент; следующий снимок он получит после переподключения
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast упаковывает payload в Envelope и отправляет всем клиентам.
func (h *Hub) Broadcast(messageType string, payload interface{}) error {
	messageBytes, err := Encode(messageType, payload)
	if err != nil {
		h.logger.Error("failed to encode websocket message", zap.String("type", messageType), zap.Error(err))
		return err
	}
	select {
	case h.broadcast <- messageBytes:
	case <-h.done:
	}
	return nil
}

// Encode сериализует сообщение в формат Envelope.
func Encode(messageType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}
