package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ybchat/config"
	"ybchat/database"
	"ybchat/friendship"
	"ybchat/handlers"
	"ybchat/middleware"
	"ybchat/relay"
	"ybchat/websocket"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logrus.New()

	db, err := database.Connect(cfg.MysqlDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logger.Fatalf("Failed to create tables: %v", err)
	}

	users := database.NewUserStore(db)
	edges := database.NewEdgeStore(db)
	messages := database.NewMessageStore(db)

	hub := websocket.NewHub()
	presence := relay.NewPresence(hub, users, logger)
	messageRelay := relay.NewMessages(hub, messages)
	seen := relay.NewSeen(hub, messages)
	typing := relay.NewTyping(hub)

	friends := friendship.NewService(edges, users)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LogMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authH := &handlers.AuthHandler{Users: users, JWTSecret: cfg.JWTSecret, Log: logger}
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authH.Me)
		auth.GET("/all", authH.All)
	}

	friendH := &handlers.FriendHandler{Friends: friends, Log: logger}
	fr := r.Group("/api/friends")
	fr.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		fr.POST("/add/:friendId", friendH.Add)
		fr.POST("/accept/:friendId", friendH.Accept)
		fr.POST("/reject/:friendId", friendH.Reject)
		fr.GET("/list", friendH.List)
	}

	messageH := &handlers.MessageHandler{Messages: messageRelay, Seen: seen, Log: logger}
	msgs := r.Group("/api/messages")
	msgs.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		msgs.GET("/:friendId", messageH.History)
		msgs.POST("/seen/:friendId", messageH.MarkSeen)
	}

	uploadH := &handlers.UploadHandler{Users: users, Log: logger}
	up := r.Group("/api/upload")
	up.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		up.POST("/profile-pic", uploadH.ProfilePic)
	}

	wsH := &websocket.Handler{
		Hub:       hub,
		Presence:  presence,
		Messages:  messageRelay,
		Seen:      seen,
		Typing:    typing,
		JWTSecret: cfg.JWTSecret,
		Log:       logger,
	}
	r.GET("/ws", wsH.Handle)

	logger.WithField("addr", cfg.ServerAddr).Info("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
