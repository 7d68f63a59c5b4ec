package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"ybchat/database"
	"ybchat/middleware"
	"ybchat/models"
	"ybchat/utils"
)

// UserStore is the slice of user persistence the HTTP handlers need.
// *database.UserStore satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	SetProfilePic(ctx context.Context, id, pic string) error
}

type AuthHandler struct {
	Users     UserStore
	JWTSecret string
	Log       *logrus.Logger
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	ProfilePic string `json:"profilePic"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	taken, err := h.Users.EmailTaken(c.Request.Context(), req.Email)
	if err != nil {
		h.Log.WithField("error", err).Error("email lookup failed")
		utils.InternalError(c, "database error")
		return
	}
	if taken {
		utils.BadRequest(c, "email already in use")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	user := &models.User{
		ID:         utils.GenerateUUID(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		ProfilePic: req.ProfilePic,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		h.Log.WithField("error", err).Error("user insert failed")
		utils.InternalError(c, "failed to create user")
		return
	}

	utils.Success(c, gin.H{"message": "user created"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, database.ErrNotFound) {
		utils.Unauthorized(c, "invalid email or password")
		return
	}
	if err != nil {
		h.Log.WithField("error", err).Error("user lookup failed")
		utils.InternalError(c, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, h.JWTSecret)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.Summary()})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if errors.Is(err, database.ErrNotFound) {
		utils.NotFound(c, "user not found")
		return
	}
	if err != nil {
		h.Log.WithField("error", err).Error("user lookup failed")
		utils.InternalError(c, "database error")
		return
	}

	utils.Success(c, user.Summary())
}

func (h *AuthHandler) All(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.Log.WithField("error", err).Error("user list failed")
		utils.InternalError(c, "database error")
		return
	}

	utils.Success(c, users)
}
