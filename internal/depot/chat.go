package depot

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/auth"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

// chatCapacity 聊天记录保留上限。
const chatCapacity = 200

// ChatMessage 车库频道聊天消息（伴随功能）。
type ChatMessage struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// ChatMessages 聊天记录（最旧在前）。
func (s *Service) ChatMessages(ctx context.Context) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadChat(ctx)
}

// AppendChat 追加一条聊天消息。
func (s *Service) AppendChat(ctx context.Context, sess auth.Session, text string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, Rejectf("message vide")
	}
	messages, err := s.loadChat(ctx)
	if err != nil {
		return ChatMessage{}, err
	}
	msg := ChatMessage{
		ID:     uuid.NewString(),
		Time:   s.now().Format(chatTimeLayout),
		Author: sess.Name,
		Text:   text,
	}
	messages = append(messages, msg)
	if len(messages) > chatCapacity {
		messages = messages[len(messages)-chatCapacity:]
	}
	s.persist(ctx, store.KeyChat, messages)
	return msg, nil
}

// ClearChat 清空聊天记录。破坏性操作，需确认。
func (s *Service) ClearChat(ctx context.Context, sess auth.Session, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return Rejectf("effacement non confirmé")
	}
	s.persist(ctx, store.KeyChat, []ChatMessage{})
	return nil
}

const chatTimeLayout = "02/01/2006 15:04"

func (s *Service) loadChat(ctx context.Context) ([]ChatMessage, error) {
	if s.store == nil {
		return nil, nil
	}
	var messages []ChatMessage
	err := store.GetJSON(ctx, s.store, store.KeyChat, &messages)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return messages, nil
}
