package service

import (
	"context"
	"strings"
	"time"

	"github.com/emres/macrolog/internal/model"
)

// WordRevealDelay is the fixed pause between revealed words.
const WordRevealDelay = 20 * time.Millisecond

// RevealDriver performs the typewriter-style reveal of assistant replies:
// Content grows through each whitespace-delimited prefix of FullContent.
// Unlike the screen version it is cancellable; the loop stops cleanly when
// the context ends, leaving Content at the last revealed prefix.
type RevealDriver struct {
	// Delay defaults to WordRevealDelay.
	Delay time.Duration
	// Step runs after every newly revealed prefix. The terminal analogue
	// of scroll-to-bottom-if-near-bottom: the callback decides whether to
	// follow the output.
	Step func(msg *model.Message)
}

func (d *RevealDriver) delay() time.Duration {
	if d.Delay > 0 {
		return d.Delay
	}
	return WordRevealDelay
}

// Reveal streams one message. Messages that are not assistant replies,
// are already revealed, or have nothing to reveal are skipped; the
// Content=="" guard is what makes re-running over the same list safe.
func (d *RevealDriver) Reveal(ctx context.Context, msg *model.Message) error {
	if msg.Role != model.RoleAssistant || msg.Content != "" || msg.FullContent == "" {
		return nil
	}

	words := strings.Split(msg.FullContent, " ")
	revealed := ""
	for i, w := range words {
		if i > 0 {
			revealed += " "
		}
		revealed += w
		msg.Content = revealed
		if d.Step != nil {
			d.Step(msg)
		}
		if i == len(words)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.delay()):
		}
	}
	return nil
}

// RevealAll walks a message list and reveals every pending assistant
// reply in order.
func (d *RevealDriver) RevealAll(ctx context.Context, msgs []model.Message) error {
	for i := range msgs {
		if err := d.Reveal(ctx, &msgs[i]); err != nil {
			return err
		}
	}
	return nil
}
