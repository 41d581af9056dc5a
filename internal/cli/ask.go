package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evoai/commerce-agent/internal/agent/model"
	errx "github.com/evoai/commerce-agent/internal/core/error"
)

var askTrace bool

var askCmd = &cobra.Command{
	Use:   "ask [utterance]",
	Short: "Run a single turn and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		trace, err := app.Runner.RunTurn(ctx, model.TurnInput{
			ConversationID: uuid.NewString(),
			Utterance:      strings.Join(args, " "),
		})
		if err != nil {
			fmt.Println(errx.UserMessage(err))
			return err
		}

		if askTrace {
			b, err := json.MarshalIndent(trace, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		fmt.Println(trace.FinalMessage)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askTrace, "trace", false, "print the full turn trace as JSON instead of just the reply")
}
