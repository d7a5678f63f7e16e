// Package http is the thin transport adapter over the chat service.
// It translates inbound calls into core operations and serializes
// results back; it carries no state and no invariants of its own.
package http

import (
	"log/slog"

	"mailroom/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(log *slog.Logger, chatService services.IChatService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	server := NewChatServer(log, chatService)
	rooms := router.Group("/rooms/:room_id")
	{
		rooms.POST("/join", server.JoinRoom)
		rooms.POST("/messages", server.SendMessage)
		rooms.POST("/leave", server.LeaveChat)
		rooms.GET("/status", server.GetRoomStatus)
		rooms.GET("/history", server.GetHistory)
	}
	router.GET("/healthz", HealthCheck)
	return router
}
