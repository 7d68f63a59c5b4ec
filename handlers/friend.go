package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ybchat/friendship"
	"ybchat/middleware"
	"ybchat/utils"
)

type FriendHandler struct {
	Friends *friendship.Service
	Log     *logrus.Logger
}

func (h *FriendHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friendId")

	err := h.Friends.Request(c.Request.Context(), userID, friendID)
	switch {
	case err == nil:
		utils.Success(c, gin.H{"message": "friend request sent"})
	case errors.Is(err, friendship.ErrSelfRequest):
		utils.BadRequest(c, "cannot add yourself as a friend")
	case errors.Is(err, friendship.ErrUserNotFound):
		utils.NotFound(c, "user not found")
	case errors.Is(err, friendship.ErrAlreadyRelated):
		utils.BadRequest(c, "already friends or request exists")
	default:
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("friend request failed")
		utils.InternalError(c, "failed to send friend request")
	}
}

func (h *FriendHandler) Accept(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friendId")

	err := h.Friends.Accept(c.Request.Context(), userID, friendID)
	switch {
	case err == nil:
		utils.Success(c, gin.H{"message": "friend request accepted"})
	case errors.Is(err, friendship.ErrNoRequest):
		utils.BadRequest(c, "friend request not found")
	default:
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("accept failed")
		utils.InternalError(c, "failed to accept friend request")
	}
}

func (h *FriendHandler) Reject(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friendId")

	err := h.Friends.Reject(c.Request.Context(), userID, friendID)
	switch {
	case err == nil:
		utils.Success(c, gin.H{"message": "friend request rejected"})
	case errors.Is(err, friendship.ErrNoRequest):
		utils.BadRequest(c, "friend request not found")
	default:
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("reject failed")
		utils.InternalError(c, "failed to reject friend request")
	}
}

func (h *FriendHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	lists, err := h.Friends.List(c.Request.Context(), userID)
	if err != nil {
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("friend list failed")
		utils.InternalError(c, "failed to load friends")
		return
	}

	utils.Success(c, lists)
}
