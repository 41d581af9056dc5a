package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evoai/commerce-agent/internal/agent/model"
	errx "github.com/evoai/commerce-agent/internal/core/error"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversation with the shopping assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		conversationID := uuid.NewString()
		fmt.Printf("Conversation %s started. Type /reset to clear history, /quit to exit.\n\n", conversationID)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/reset":
				if err := app.Repo.ClearHistory(ctx, conversationID); err != nil {
					fmt.Printf("could not reset the conversation: %v\n", err)
					continue
				}
				conversationID = uuid.NewString()
				fmt.Printf("History cleared. New conversation %s.\n", conversationID)
				continue
			}

			trace, err := app.Runner.RunTurn(ctx, model.TurnInput{
				ConversationID: conversationID,
				Utterance:      line,
			})
			if err != nil {
				// Failures are per-turn: apologize and keep the session alive.
				fmt.Printf("assistant> %s\n\n", errx.UserMessage(err))
				continue
			}

			fmt.Printf("assistant> %s\n\n", trace.FinalMessage)
		}
		return scanner.Err()
	},
}
