package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/civita-labs/civita-cli/internal/adapters/driven/config/file"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	if err := repo.Health(context.Background()); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}

	target := ""
	if configStore != nil {
		target = " at " + configStore.GetString(configfile.KeyBackendURL)
	}
	cmd.Printf("Backend healthy%s.\n", target)
	return nil
}
