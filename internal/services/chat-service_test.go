package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/websocket"
)

type stubChatRepo struct {
	messages map[string]*entities.ChatMessage
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{messages: make(map[string]*entities.ChatMessage)}
}

func (s *stubChatRepo) Create(ctx context.Context, message entities.ChatMessage) error {
	s.messages[message.ID] = &message
	return nil
}

func (s *stubChatRepo) FindByID(ctx context.Context, id string) (*entities.ChatMessage, error) {
	if m, ok := s.messages[id]; ok {
		return m, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubChatRepo) GetByEvent(ctx context.Context, eventID uint64, limit int) ([]*entities.ChatMessage, error) {
	out := make([]*entities.ChatMessage, 0)
	for _, m := range s.messages {
		if m.EventID == eventID && !m.Deleted {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubChatRepo) MarkDeleted(ctx context.Context, id string) error {
	m, ok := s.messages[id]
	if !ok || m.Deleted {
		return apperrors.ErrNotFound
	}
	m.Deleted = true
	return nil
}

type recordedBroadcast struct {
	group     string
	eventType string
	payload   interface{}
}

type recordingBroadcaster struct {
	broadcasts []recordedBroadcast
}

func (r *recordingBroadcaster) BroadcastToGroup(group string, eventType string, payload interface{}) error {
	r.broadcasts = append(r.broadcasts, recordedBroadcast{group, eventType, payload})
	return nil
}

func newChatFixture() (ChatServiceInterface, *stubChatRepo, *recordingBroadcaster) {
	chatRepo := newStubChatRepo()
	broadcaster := &recordingBroadcaster{}
	memberRepo := &stubMemberRepo{member: testMember()}
	svc := NewChatService(chatRepo, memberRepo, broadcaster, zap.NewNop())
	return svc, chatRepo, broadcaster
}

func TestSendMessagePersistsAndBroadcasts(t *testing.T) {
	svc, repo, broadcaster := newChatFixture()

	message, err := svc.SendMessage(context.Background(), 5, 42, "Olá tuna!")
	require.NoError(t, err)
	require.NotEmpty(t, message.ID)

	_, ok := repo.messages[message.ID]
	assert.True(t, ok, "message must be persisted")

	require.Len(t, broadcaster.broadcasts, 1)
	b := broadcaster.broadcasts[0]
	assert.Equal(t, "event-5", b.group)
	assert.Equal(t, websocket.EventReceiveMessage, b.eventType)

	payload, ok := b.payload.(websocket.ChatMessagePayload)
	require.True(t, ok)
	assert.Equal(t, message.ID, payload.ID)
	assert.Equal(t, uint64(42), payload.UserID)
	assert.Equal(t, "Olá tuna!", payload.Message)
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc, repo, broadcaster := newChatFixture()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendMessage(context.Background(), 5, 42, text)
		require.Error(t, err)

		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	}
	assert.Empty(t, repo.messages, "nothing may be persisted")
	assert.Empty(t, broadcaster.broadcasts, "nothing may be broadcast")
}

func TestDeleteMessageAuthorAndAdmin(t *testing.T) {
	svc, _, broadcaster := newChatFixture()

	message, err := svc.SendMessage(context.Background(), 5, 42, "delete me")
	require.NoError(t, err)

	// A stranger without the admin role is refused.
	err = svc.DeleteMessage(context.Background(), message.ID, 99, false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The author may delete their own message.
	require.NoError(t, svc.DeleteMessage(context.Background(), message.ID, 42, false))

	last := broadcaster.broadcasts[len(broadcaster.broadcasts)-1]
	assert.Equal(t, websocket.EventMessageDeleted, last.eventType)
	assert.Equal(t, websocket.MessageDeletedPayload{ID: message.ID}, last.payload)

	// Second delete finds nothing.
	err = svc.DeleteMessage(context.Background(), message.ID, 42, false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteMessageAdminOverride(t *testing.T) {
	svc, _, _ := newChatFixture()

	message, err := svc.SendMessage(context.Background(), 5, 42, "moderated")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMessage(context.Background(), message.ID, 99, true))
}

func TestGetHistoryExcludesDeleted(t *testing.T) {
	svc, _, _ := newChatFixture()

	kept, err := svc.SendMessage(context.Background(), 5, 42, "kept")
	require.NoError(t, err)
	gone, err := svc.SendMessage(context.Background(), 5, 42, "gone")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMessage(context.Background(), gone.ID, 42, false))

	history, err := svc.GetHistory(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, kept.ID, history[0].ID)
}
