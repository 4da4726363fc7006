package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

var (
	reportDescription string
	reportPriority    string
	reportReporter    string
	reportLat         string
	reportLng         string
)

var reportCmd = &cobra.Command{
	Use:   "report [title]",
	Short: "File a complaint directly",
	Long: `Files a complaint in one shot, without the conversational flow.
Priority defaults to medium and the reporter to anonymous. Coordinates
that are missing or malformed are treated as absent, never as an
error.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportDescription, "description", "d", "", "free-text description")
	reportCmd.Flags().StringVarP(&reportPriority, "priority", "p", "", "priority (low, medium, high)")
	reportCmd.Flags().StringVar(&reportReporter, "reporter", "", "who is filing the complaint")
	reportCmd.Flags().StringVar(&reportLat, "lat", "", "latitude of the issue")
	reportCmd.Flags().StringVar(&reportLng, "lng", "", "longitude of the issue")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if repo == nil {
		return errors.New("complaint repository not configured")
	}

	if reportPriority != "" && !domain.Priority(reportPriority).Valid() {
		return fmt.Errorf("invalid priority %q: want low, medium or high", reportPriority)
	}

	draft := domain.ComplaintDraft{
		Title:       args[0],
		Description: reportDescription,
		Priority:    domain.Priority(reportPriority),
		Reporter:    reportReporter,
		Location:    parseReportLocation(),
	}.WithDefaults()

	created, err := repo.Create(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("filing complaint: %w", err)
	}

	cmd.Printf("Submitted. Complaint ID: %s\n", created.ID)
	return nil
}

// parseReportLocation builds the draft location from the lat/lng flags.
// Both must parse for the pair to count; otherwise the backend gets the
// {0,0} placeholder.
func parseReportLocation() domain.Location {
	lat, okLat := domain.ParseCoordinate(reportLat)
	lng, okLng := domain.ParseCoordinate(reportLng)
	if !okLat || !okLng {
		return domain.Location{}
	}
	return domain.Location{Lat: lat, Lng: lng}
}
