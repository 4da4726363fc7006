// Package cli implements the cobra command-line interface for civita.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civita-labs/civita-cli/internal/adapters/driven/backend"
	configfile "github.com/civita-labs/civita-cli/internal/adapters/driven/config/file"
	"github.com/civita-labs/civita-cli/internal/adapters/driven/geo"
	"github.com/civita-labs/civita-cli/internal/adapters/driven/mapgrid"
	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
	"github.com/civita-labs/civita-cli/internal/core/services"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// version is the build version, overridable at link time.
var version = "0.1.0"

// Wired services and adapters. Populated by initServices on first use;
// tests inject their own.
var (
	configStore driven.ConfigStore
	repo        driven.ComplaintRepository
	planner     driven.RoutePlanner
	locator     driven.Geolocator
	surface     *mapgrid.Surface

	intakeService driving.IntakeService
	triageService driving.TriageService
	routeService  driving.RoutePlanService

	pushURL string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "civita",
	Short: "Municipal complaint intake and dispatch client",
	Long: `Civita is the terminal client for the municipal complaint backend.
Citizens file complaints through a conversational intake flow, and
sanitation teams triage, dispatch and resolve them from a live
dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices wires the adapter stack behind the driving ports. It is
// idempotent: anything already set (by tests or a previous run) is kept.
func initServices() error {
	if configStore == nil {
		store, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		configStore = store
	}

	if repo == nil || planner == nil {
		client := backend.NewClient(configStore.GetString(configfile.KeyBackendURL))
		if repo == nil {
			repo = client
		}
		if planner == nil {
			planner = client
		}
	}

	if pushURL == "" {
		pushURL = configStore.GetString(configfile.KeyPushURL)
	}

	if locator == nil {
		if path := configStore.GetString(configfile.KeyPositionFile); path != "" {
			fileLocator, err := geo.NewFileLocator(path)
			if err != nil {
				logger.Warn("position file unavailable: %v", err)
			} else {
				locator = fileLocator
			}
		}
	}

	if surface == nil {
		center := domain.Location{
			Lat: configStore.GetFloat(configfile.KeyMapCenterLat),
			Lng: configStore.GetFloat(configfile.KeyMapCenterLng),
		}
		surface = mapgrid.NewSurface(center, configStore.GetFloat(configfile.KeyMapSpan))
	}

	if intakeService == nil {
		intakeService = services.NewIntakeService(repo, locator)
	}
	if triageService == nil && routeService == nil {
		ts := services.NewTriageService(repo, surface)
		rs := services.NewRoutePlanService(repo, planner, surface)
		// Route overlays on the shared surface retire on refresh.
		ts.SweepOnRefresh(rs.RetireMarkers)
		triageService, routeService = ts, rs
	}
	if triageService == nil {
		triageService = services.NewTriageService(repo, surface)
	}
	if routeService == nil {
		routeService = services.NewRoutePlanService(repo, planner, surface)
	}

	return nil
}
