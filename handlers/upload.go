package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ybchat/middleware"
	"ybchat/utils"
)

type UploadHandler struct {
	Users UserStore
	Log   *logrus.Logger
}

type profilePicRequest struct {
	ProfilePic string `json:"profilePic" binding:"required"`
}

// ProfilePic stores a base64 image on the user record.
func (h *UploadHandler) ProfilePic(c *gin.Context) {
	var req profilePicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "no image received")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.Users.SetProfilePic(c.Request.Context(), userID, req.ProfilePic); err != nil {
		h.Log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("profile pic update failed")
		utils.InternalError(c, "failed to update profile picture")
		return
	}

	utils.Success(c, gin.H{"message": "profile picture updated", "profilePic": req.ProfilePic})
}
