package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

var assignCmd = &cobra.Command{
	Use:   "assign [id] [worker]",
	Short: "Assign a complaint to a worker or vehicle",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssign,
}

var startCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Mark a complaint in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, args[0], domain.StatusInProgress)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish [id]",
	Short: "Mark a complaint resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, args[0], domain.StatusFinished)
	},
}

func init() {
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finishCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	id, worker := args[0], args[1]
	if err := repo.UpdateStatus(context.Background(), id, domain.StatusAssigned, worker); err != nil {
		return fmt.Errorf("assigning complaint: %w", err)
	}

	cmd.Printf("Complaint %s assigned to %s.\n", id, worker)
	return nil
}

func runTransition(cmd *cobra.Command, id string, status domain.Status) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	if err := repo.UpdateStatus(context.Background(), id, status, ""); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	cmd.Printf("Complaint %s is now %s.\n", id, status)
	return nil
}
