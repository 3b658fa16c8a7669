// Package workflow models the per-order-type state machine: named states,
// named transitions between them, and the registry that maps order types to
// their workflow. Definitions load once from YAML (or compiled-in defaults)
// and never change at runtime, which keeps transition evaluation free of
// locking on the read path.
package workflow
