package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

var (
	listPriority string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List complaints in triage order",
	Long: `Fetches the current complaint set and prints it in triage order:
highest priority first, oldest first within the same priority.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	if listPriority != "" && !domain.Priority(listPriority).Valid() {
		return fmt.Errorf("invalid priority %q: want low, medium or high", listPriority)
	}

	cs, err := repo.List(context.Background(), domain.Priority(listPriority))
	if err != nil {
		return fmt.Errorf("fetching complaints: %w", err)
	}
	domain.SortForTriage(cs)

	if listJSON {
		return outputComplaintsJSON(cmd, cs)
	}
	return outputComplaintsTable(cmd, cs)
}

func outputComplaintsJSON(cmd *cobra.Command, cs []domain.Complaint) error {
	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal complaints: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputComplaintsTable(cmd *cobra.Command, cs []domain.Complaint) error {
	if len(cs) == 0 {
		cmd.Println("No complaints found.")
		return nil
	}

	cmd.Printf("Complaints (%d):\n", len(cs))
	cmd.Println()
	for i := range cs {
		c := &cs[i]
		cmd.Printf("  [%s] %s (%s, %s)\n", c.ID, c.Title, c.Priority, c.Status)
		if c.AssignedTo != nil && *c.AssignedTo != "" {
			cmd.Printf("      Assigned: %s\n", *c.AssignedTo)
		}
		if c.Location.Mappable() {
			cmd.Printf("      Location: %.5f, %.5f\n", c.Location.Lat, c.Location.Lng)
		}
		cmd.Println()
	}

	return nil
}
