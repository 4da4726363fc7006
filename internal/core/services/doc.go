// Package services implements the driving ports with the client-side
// decision logic: the intake conversation engine, the triage controller
// with its marker reconciliation, the realtime reconciler, and the
// route planning client. Services depend only on domain types and
// driven ports; all I/O goes through adapters.
package services
