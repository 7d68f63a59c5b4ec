package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ybchat/middleware"
	"ybchat/relay"
	"ybchat/utils"
)

type MessageHandler struct {
	Messages *relay.Messages
	Seen     *relay.Seen
	Log      *logrus.Logger
}

// History returns every message between the caller and friendId, oldest
// first. Same set regardless of which side asks.
func (h *MessageHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friendId")

	messages, err := h.Messages.History(c.Request.Context(), userID, friendID)
	if err != nil {
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("history load failed")
		utils.InternalError(c, "failed to load messages")
		return
	}

	utils.Success(c, messages)
}

func (h *MessageHandler) MarkSeen(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friendId")

	if err := h.Seen.MarkSeen(c.Request.Context(), userID, friendID); err != nil {
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("mark seen failed")
		utils.InternalError(c, "failed to mark messages as seen")
		return
	}

	utils.Success(c, gin.H{"message": "messages marked as seen"})
}
