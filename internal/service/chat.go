package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/emres/macrolog/internal/model"
	"github.com/google/uuid"
)

// WelcomeMessage seeds an empty chat history.
const WelcomeMessage = "Hi! I'm your nutrition assistant. How can I help?"

// ChatSender is the backend chat surface.
type ChatSender interface {
	SendMessage(ctx context.Context, messages []model.Message, purpose string) (string, error)
}

// LoadChatHistory returns the stored conversation, seeding the welcome
// message when there is none yet.
func LoadChatHistory(db *sql.DB) ([]model.Message, error) {
	rows, err := db.Query(`
SELECT id, role, content, full_content, image, reply_to
FROM chat_messages
ORDER BY position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	defer rows.Close()

	msgs := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		var replyTo string
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.FullContent, &m.Image, &replyTo); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		if replyTo != "" {
			m.ReplyTo = &model.Message{Role: model.RoleAssistant, Content: replyTo}
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat history: %w", err)
	}

	if len(msgs) == 0 {
		msgs = append(msgs, model.Message{
			ID:      uuid.NewString(),
			Role:    model.RoleAssistant,
			Content: WelcomeMessage,
		})
	}
	return msgs, nil
}

// SaveChatHistory replaces the stored conversation with msgs.
func SaveChatHistory(db *sql.DB, msgs []model.Message) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin chat history tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM chat_messages`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear chat history: %w", err)
	}
	for i, m := range msgs {
		id := m.ID
		if id == "" {
			id = uuid.NewString()
		}
		replyTo := ""
		if m.ReplyTo != nil {
			replyTo = m.ReplyTo.Content
		}
		if _, err := tx.Exec(`
INSERT INTO chat_messages(id, position, role, content, full_content, image, reply_to)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, id, i, m.Role, m.Content, m.FullContent, m.Image, replyTo); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store chat message %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chat history: %w", err)
	}
	return nil
}

// ClearChatHistory drops the stored conversation.
func ClearChatHistory(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}

// SendChatMessage appends the user's turn plus an unrevealed assistant
// placeholder, asks the backend, and fills the placeholder's FullContent.
// The returned slice is ready for the reveal driver; the caller persists
// it once the reveal completes.
func SendChatMessage(ctx context.Context, sender ChatSender, history []model.Message, text, purpose string, replyTo *model.Message) ([]model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return history, fmt.Errorf("message text is required")
	}

	userMsg := model.Message{
		ID:      uuid.NewString(),
		Role:    model.RoleUser,
		Content: text,
		ReplyTo: replyTo,
	}
	msgs := append(history, userMsg)

	reply, err := sender.SendMessage(ctx, msgs, purpose)
	if err != nil {
		return history, fmt.Errorf("send chat message: %w", err)
	}

	msgs = append(msgs, model.Message{
		ID:          uuid.NewString(),
		Role:        model.RoleAssistant,
		Content:     "",
		FullContent: reply,
	})
	return msgs, nil
}
