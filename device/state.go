// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

// State is the lifecycle state of a Manager.
type State uint8

const (
	// StateUninitialized has no device. The next paint initializes.
	StateUninitialized State = iota

	// StateInitializing is set while the device is being stood up.
	StateInitializing

	// StateReady has a device, context and active view.
	StateReady

	// StateDestroyed refuses to paint.
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateReady:
		return "Ready"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Strategy selects how the active view is created.
type Strategy uint8

const (
	// StrategyLayout lets the backend set up views for the active layout.
	StrategyLayout Strategy = iota

	// StrategyManual creates one view bound to the content root.
	StrategyManual
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyLayout:
		return "layout"
	case StrategyManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "layout" or "manual".
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "layout", "":
		return StrategyLayout, true
	case "manual":
		return StrategyManual, true
	default:
		return StrategyLayout, false
	}
}

// Target selects where the device draws.
type Target uint8

const (
	// TargetOffscreen draws into a 24-bit offscreen surface.
	TargetOffscreen Target = iota

	// TargetOnScreen draws into a host window at the backend's native depth.
	TargetOnScreen
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetOffscreen:
		return "offscreen"
	case TargetOnScreen:
		return "onscreen"
	default:
		return "unknown"
	}
}

// ParseTarget parses "offscreen" or "onscreen".
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "offscreen", "":
		return TargetOffscreen, true
	case "onscreen":
		return TargetOnScreen, true
	default:
		return TargetOffscreen, false
	}
}
