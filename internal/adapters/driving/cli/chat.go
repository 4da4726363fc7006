package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/adapters/driven/geo"
	"github.com/civita-labs/civita-cli/internal/adapters/driven/push"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/pinfields"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/civita-cli/internal/core/services"
	"github.com/civita-labs/civita-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "File a complaint through the conversational assistant",
	Long: `Opens the interactive intake chat. Type 'report' to start filing a
complaint; the assistant collects title, description, priority and
reporter step by step. Ctrl+L focuses the location fields to pin an
exact position.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// A manually placed pin beats the automatic locator for this
	// session's submissions.
	pin := pinfields.NewFields(surface, nil)
	sessionIntake := services.NewIntakeService(repo, geo.Chain(pin, locator))

	app, err := tui.NewApp(tui.NewPorts(sessionIntake, nil, nil), tui.ModeIntake, pin, nil)
	if err != nil {
		return fmt.Errorf("starting chat: %w", err)
	}
	app.WithContext(ctx)
	program := app.NewProgram()

	// Live updates are best effort; the chat works without them.
	if channel, dialErr := push.Dial(ctx, pushURL); dialErr != nil {
		logger.Warn("live updates unavailable: %v", dialErr)
	} else {
		defer channel.Close()
		realtime := services.NewRealtimeService(channel)
		realtime.BindTranscript(func(notice string) {
			program.Send(messages.NoticeReceived{Text: notice})
		})
		go realtime.Run(ctx)
	}

	_, err = program.Run()
	return err
}
