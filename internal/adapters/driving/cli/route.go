package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

var (
	routeStartLat string
	routeStartLng string
	routePriority string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan a collection route over open complaints",
	Long: `Asks the backend for a visiting order over the current complaint set
and prints the stops in that order. The response order is the visiting
order; it is never reordered locally.`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeStartLat, "lat", "", "starting latitude")
	routeCmd.Flags().StringVar(&routeStartLng, "lng", "", "starting longitude")
	routeCmd.Flags().StringVarP(&routePriority, "priority", "p", "", "restrict to one priority")
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, _ []string) error {
	if routeService == nil {
		return errors.New("route service not configured")
	}

	if routePriority != "" && !domain.Priority(routePriority).Valid() {
		return fmt.Errorf("invalid priority %q: want low, medium or high", routePriority)
	}

	start := domain.Location{}
	if lat, ok := domain.ParseCoordinate(routeStartLat); ok {
		if lng, ok := domain.ParseCoordinate(routeStartLng); ok {
			start = domain.Location{Lat: lat, Lng: lng}
		}
	}

	steps, err := routeService.PlanRoute(context.Background(), start, domain.Priority(routePriority))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyRoute) {
			cmd.Println("No complaints to route.")
			return nil
		}
		return fmt.Errorf("planning route: %w", err)
	}

	cmd.Printf("Route (%d stops):\n", len(steps))
	for i, step := range steps {
		cmd.Printf("  %d. %s (%s)", i+1, step.Title, step.Priority)
		if step.Location.Mappable() {
			cmd.Printf("  @ %.5f, %.5f", step.Location.Lat, step.Location.Lng)
		}
		cmd.Println()
	}
	return nil
}
