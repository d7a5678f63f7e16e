package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mailroom/domain"
	apperrors "mailroom/errors"
	"mailroom/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type ChatServer struct {
	chatService services.IChatService
	log         *slog.Logger
}

func NewChatServer(log *slog.Logger, chatService services.IChatService) *ChatServer {
	return &ChatServer{chatService: chatService, log: log}
}

type JoinRoomRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

type SendMessageRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type LeaveChatRequest struct {
	ClientID string `json:"client_id" validate:"required"`
}

type MessageResponse struct {
	Seq       uint64 `json:"seq"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
}

func (s *ChatServer) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clientID, err := s.chatService.JoinRoom(c.Request.Context(), domain.JoinRoomCommand{
		Room:        c.Param("room_id"),
		DisplayName: req.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": c.Param("room_id"), "client_id": clientID})
}

func (s *ChatServer) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	seq, err := s.chatService.SendMessage(c.Request.Context(), domain.SendMessageCommand{
		Room:     c.Param("room_id"),
		ClientID: req.ClientID,
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seq": seq})
}

func (s *ChatServer) LeaveChat(c *gin.Context) {
	var req LeaveChatRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := s.chatService.LeaveChat(c.Request.Context(), domain.LeaveChatCommand{
		Room:     c.Param("room_id"),
		ClientID: req.ClientID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *ChatServer) GetRoomStatus(c *gin.Context) {
	status, err := s.chatService.GetRoomStatus(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":       status.RoomID,
		"message_count": status.MessageCount,
		"participants":  status.Participants,
		"created_at":    status.CreatedAt.Format(time.RFC3339Nano),
		"last_activity": status.LastActivity.Format(time.RFC3339Nano),
	})
}

func (s *ChatServer) GetHistory(c *gin.Context) {
	var limit *int
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = &parsed
	}
	messages, err := s.chatService.GetHistory(c.Request.Context(), domain.HistoryQuery{
		Room:  c.Param("room_id"),
		Limit: limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":  c.Param("room_id"),
		"messages": toMessageResponse(messages),
	})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func toMessageResponse(messages []domain.Message) []MessageResponse {
	return lo.Map(messages, func(m domain.Message, _ int) MessageResponse {
		return MessageResponse{
			Seq:       m.Seq,
			Sender:    m.DisplayName,
			Content:   m.Content,
			Kind:      string(m.Kind),
			Timestamp: m.At.Format(time.RFC3339Nano),
		}
	})
}

func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.MapToHTTPStatus(err), gin.H{"error": err.Error()})
}
