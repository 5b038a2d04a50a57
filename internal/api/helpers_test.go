package api

import (
	"fmt"

	"github.com/emres/macrolog/internal/model"
)

func makeHistory(n int) []model.Message {
	msgs := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msgs = append(msgs, model.Message{Role: role, Content: fmt.Sprintf("message %d", i)})
	}
	return msgs
}
