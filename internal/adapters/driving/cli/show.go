package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single complaint",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	c, err := repo.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetching complaint: %w", err)
	}

	cmd.Printf("ID:          %s\n", c.ID)
	cmd.Printf("Title:       %s\n", c.Title)
	if c.Description != "" {
		cmd.Printf("Description: %s\n", c.Description)
	}
	cmd.Printf("Priority:    %s\n", c.Priority)
	cmd.Printf("Status:      %s\n", c.Status)
	cmd.Printf("Reporter:    %s\n", c.Reporter)
	if c.AssignedTo != nil && *c.AssignedTo != "" {
		cmd.Printf("Assigned:    %s\n", *c.AssignedTo)
	}
	if c.Location.Mappable() {
		cmd.Printf("Location:    %.5f, %.5f\n", c.Location.Lat, c.Location.Lng)
	}
	if !c.CreatedAt.IsZero() {
		cmd.Printf("Created:     %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
