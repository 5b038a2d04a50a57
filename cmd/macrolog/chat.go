package macrolog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the nutrition assistant",
}

var (
	chatPurpose   string
	chatPhotoNote string
	chatNoReveal  bool
)

var chatSendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Send a message and stream the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			history, err := service.LoadChatHistory(sqldb)
			if err != nil {
				return err
			}
			msgs, err := service.SendChatMessage(ctx, client, history, text, chatPurpose, nil)
			if err != nil {
				return err
			}
			if err := revealReply(ctx, cmd, &msgs[len(msgs)-1]); err != nil {
				return err
			}
			return service.SaveChatHistory(sqldb, msgs)
		})
	},
}

var chatPhotoCmd = &cobra.Command{
	Use:   "photo <path>",
	Short: "Send a food photo for analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			history, err := service.LoadChatHistory(sqldb)
			if err != nil {
				return err
			}
			reply, err := client.SendPhoto(ctx, args[0], chatPurpose, chatPhotoNote)
			if err != nil {
				return fmt.Errorf("send photo: %w", err)
			}

			msgs := append(history,
				model.Message{
					ID:      uuid.NewString(),
					Role:    model.RoleUser,
					Content: chatPhotoNote,
					Image:   args[0],
				},
				model.Message{
					ID:          uuid.NewString(),
					Role:        model.RoleAssistant,
					FullContent: reply,
				})
			if err := revealReply(ctx, cmd, &msgs[len(msgs)-1]); err != nil {
				return err
			}
			return service.SaveChatHistory(sqldb, msgs)
		})
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			msgs, err := service.LoadChatHistory(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range msgs {
				prefix := "you"
				if m.Role == model.RoleAssistant {
					prefix = "bot"
				}
				if m.ReplyTo != nil {
					fmt.Fprintf(out, "%s (re: %s): %s\n", prefix, m.ReplyTo.Content, m.Content)
					continue
				}
				if m.Image != "" {
					fmt.Fprintf(out, "%s [photo %s]: %s\n", prefix, m.Image, m.Content)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", prefix, m.Content)
			}
			return nil
		})
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearChatHistory(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared")
			return nil
		})
	},
}

// revealReply types the assistant's reply word by word. Cancelling leaves
// Content at the last revealed prefix, which is what gets persisted.
func revealReply(ctx context.Context, cmd *cobra.Command, msg *model.Message) error {
	out := cmd.OutOrStdout()
	if chatNoReveal {
		msg.Content = msg.FullContent
		fmt.Fprintln(out, msg.Content)
		return nil
	}

	printed := 0
	driver := &service.RevealDriver{
		Step: func(m *model.Message) {
			fmt.Fprint(out, m.Content[printed:])
			printed = len(m.Content)
		},
	}
	err := driver.Reveal(ctx, msg)
	fmt.Fprintln(out)
	return err
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatSendCmd, chatPhotoCmd, chatHistoryCmd, chatClearCmd)

	chatCmd.PersistentFlags().StringVar(&chatPurpose, "purpose", "", "Conversation purpose hint for the backend")
	chatCmd.PersistentFlags().BoolVar(&chatNoReveal, "no-reveal", false, "Print the reply at once instead of streaming")
	chatPhotoCmd.Flags().StringVar(&chatPhotoNote, "note", "", "Text to send along with the photo")
}
