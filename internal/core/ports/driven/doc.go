// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ComplaintRepository: Backend REST API for complaint records
//   - RoutePlanner: Backend route computation
//   - MapSurface: Marker and path rendering on a map view
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Geolocator: Current-position lookup. Without it, intake falls
//     back to the {0,0} placeholder location, which is never fatal.
//   - PushChannel: Realtime mutation events. Without it, surfaces
//     refresh only on demand.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
