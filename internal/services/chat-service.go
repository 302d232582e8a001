package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/websocket"
)

// ChatBroadcaster is the slice of the hub the chat needs.
type ChatBroadcaster interface {
	BroadcastToGroup(group string, eventType string, payload interface{}) error
}

type ChatServiceInterface interface {
	SendMessage(ctx context.Context, eventID, memberID uint64, text string) (*entities.ChatMessage, error)
	DeleteMessage(ctx context.Context, messageID string, actorID uint64, actorIsAdmin bool) error
	GetHistory(ctx context.Context, eventID uint64, limit int) ([]*entities.ChatMessage, error)
}

type ChatService struct {
	chatRepo   repositories.ChatRepositoryInterface
	memberRepo repositories.MemberRepositoryInterface
	hub        ChatBroadcaster
	logger     *zap.Logger
}

func NewChatService(
	chatRepo repositories.ChatRepositoryInterface,
	memberRepo repositories.MemberRepositoryInterface,
	hub ChatBroadcaster,
	logger *zap.Logger,
) ChatServiceInterface {
	return &ChatService{chatRepo: chatRepo, memberRepo: memberRepo, hub: hub, logger: logger}
}

// SendMessage persists first, broadcasts second. A message that fails to
// persist is never broadcast; a failed broadcast still leaves the message in
// history.
func (s *ChatService) SendMessage(ctx context.Context, eventID, memberID uint64, text string) (*entities.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewHttpError(400, "message must not be empty", apperrors.ErrBadRequest, nil)
	}

	member, err := s.memberRepo.FindByID(ctx, nil, memberID)
	if err != nil {
		return nil, err
	}

	message := entities.ChatMessage{
		ID:       uuid.NewString(),
		EventID:  eventID,
		MemberID: memberID,
		Message:  text,
		SentAt:   time.Now().UTC(),
	}

	if err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	displayName := member.FullName
	if member.Nickname != nil && *member.Nickname != "" {
		displayName = *member.Nickname
	}

	payload := websocket.ChatMessagePayload{
		ID:        message.ID,
		UserID:    memberID,
		UserName:  displayName,
		AvatarURL: member.AvatarURL,
		Message:   message.Message,
		SentAt:    message.SentAt,
	}

	if err := s.hub.BroadcastToGroup(websocket.EventGroupName(eventID), websocket.EventReceiveMessage, payload); err != nil {
		s.logger.Warn("chat broadcast failed", zap.Uint64("event_id", eventID), zap.Error(err))
	}

	return &message, nil
}

// DeleteMessage lets the author or an admin remove a message; everyone else
// gets a forbidden error.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID string, actorID uint64, actorIsAdmin bool) error {
	message, err := s.chatRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.MemberID != actorID && !actorIsAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.chatRepo.MarkDeleted(ctx, messageID); err != nil {
		return err
	}

	payload := websocket.MessageDeletedPayload{ID: messageID}
	if err := s.hub.BroadcastToGroup(websocket.EventGroupName(message.EventID), websocket.EventMessageDeleted, payload); err != nil {
		s.logger.Warn("delete broadcast failed", zap.String("message_id", messageID), zap.Error(err))
	}
	return nil
}

func (s *ChatService) GetHistory(ctx context.Context, eventID uint64, limit int) ([]*entities.ChatMessage, error) {
	return s.chatRepo.GetByEvent(ctx, eventID, limit)
}
