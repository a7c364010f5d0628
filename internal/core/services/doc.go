// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The matchers and text functions here are pure: they read an immutable
// corpus snapshot and hold no mutable state, so they are safe to call
// from any number of goroutines.
package services
