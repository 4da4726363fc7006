package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/adapters/driven/push"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/mappanel"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/services"
	"github.com/civita-labs/civita-cli/internal/logger"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live triage dashboard",
	Long: `Opens the interactive triage dashboard: the complaint list ordered by
priority and age, the district map, and the assign/start/finish
actions. Push events from the backend refresh the view as they arrive.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if triageService == nil {
		return errors.New("triage service not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	panel := mappanel.NewPanel(surface, nil)

	app, err := tui.NewApp(tui.NewPorts(nil, triageService, routeService), tui.ModeTriage, nil, panel)
	if err != nil {
		return fmt.Errorf("starting dashboard: %w", err)
	}
	app.WithContext(ctx)
	program := app.NewProgram()

	if channel, dialErr := push.Dial(ctx, pushURL); dialErr != nil {
		logger.Warn("live updates unavailable: %v", dialErr)
	} else {
		defer channel.Close()
		realtime := services.NewRealtimeService(channel)
		realtime.BindTriage(triageService, func(cs []domain.Complaint, refreshErr error) {
			program.Send(messages.ComplaintsLoaded{Complaints: cs, Err: refreshErr})
		})
		realtime.BindTranscript(func(notice string) {
			program.Send(messages.NoticeReceived{Text: notice})
		})
		go realtime.Run(ctx)
	}

	_, err = program.Run()
	return err
}
