package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"ybchat/relay"
	"ybchat/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientEvent is one inbound frame.
type clientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

type typingPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type markAsSeenPayload struct {
	UserID   string `json:"userId"`
	FriendID string `json:"friendId"`
}

// Handler upgrades HTTP requests into real-time sessions and dispatches
// inbound events to the presence, message, seen and typing relays.
type Handler struct {
	Hub       *Hub
	Presence  *relay.Presence
	Messages  *relay.Messages
	Seen      *relay.Seen
	Typing    *relay.Typing
	JWTSecret string
	Log       *logrus.Logger
}

type client struct {
	id     string
	userID string
	joined bool
	h      *Handler
	conn   *websocket.Conn
	send   chan relay.Event
}

// Handle authenticates the upgrade via the token query parameter; browser
// WebSocket clients cannot set an Authorization header.
func (h *Handler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := utils.ParseToken(token, h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.WithField("error", err).Warn("websocket upgrade failed")
		return
	}

	cl := &client{
		id:     uuid.New().String(),
		userID: claims.UserID,
		h:      h,
		conn:   conn,
		send:   make(chan relay.Event, 256),
	}
	h.Hub.Register(cl.id, cl.send)
	h.Log.WithFields(logrus.Fields{"conn": cl.id, "user": cl.userID}).Info("websocket connected")

	go cl.writePump()
	go cl.readPump()
}

func (c *client) readPump() {
	defer func() {
		if c.joined {
			c.h.Presence.Disconnect(context.Background(), c.id)
		}
		c.h.Hub.Unregister(c.id)
		c.conn.Close()
		c.h.Log.WithFields(logrus.Fields{"conn": c.id, "user": c.userID}).Info("websocket disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.h.Log.WithField("error", err).Warn("websocket read error")
			}
			return
		}
		c.handleEvent(raw)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent dispatches one inbound frame. Identity always comes from the
// authenticated token, never from the payload.
func (c *client) handleEvent(raw []byte) {
	var ev clientEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		c.h.Log.WithFields(logrus.Fields{"conn": c.id, "error": err}).Warn("malformed websocket frame")
		return
	}

	ctx := context.Background()

	switch ev.Event {
	case relay.EventJoin:
		c.joined = true
		c.h.Presence.Join(ctx, c.id, c.userID)

	case relay.EventSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			c.h.Log.WithFields(logrus.Fields{"conn": c.id, "error": err}).Warn("bad sendMessage payload")
			return
		}
		if _, err := c.h.Messages.Send(ctx, c.userID, p.ReceiverID, p.Message); err != nil {
			c.h.Log.WithFields(logrus.Fields{"user": c.userID, "error": err}).Warn("send message failed")
		}

	case relay.EventTyping:
		var p typingPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return
		}
		c.h.Typing.Forward(c.userID, p.To)

	case relay.EventMarkAsSeen:
		var p markAsSeenPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return
		}
		if err := c.h.Seen.MarkSeen(ctx, c.userID, p.FriendID); err != nil {
			c.h.Log.WithFields(logrus.Fields{"user": c.userID, "error": err}).Warn("mark seen failed")
		}

	default:
		c.h.Log.WithFields(logrus.Fields{"conn": c.id, "event": ev.Event}).Debug("unknown event")
	}
}
