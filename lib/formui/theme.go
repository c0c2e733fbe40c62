// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the configuration form. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Field values and metadata.
	ValueText   lipgloss.Color // Current field values.
	UnsetText   lipgloss.Color // "(unset)" placeholders.
	SummaryText lipgloss.Color // Recurrence summaries and union labels.

	// Problems.
	ErrorText      lipgloss.Color // Validation error annotations.
	DiagnosticText lipgloss.Color // Unsupported-field placeholders.

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Dirty indicator: accent for unsaved changes in the status bar.
	ModifiedAccent lipgloss.Color

	// Dropdown overlays.
	DropdownBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	ValueText:   lipgloss.Color("114"), // green
	UnsetText:   lipgloss.Color("240"), // dim gray
	SummaryText: lipgloss.Color("75"),  // blue

	ErrorText:      lipgloss.Color("196"), // bright red
	DiagnosticText: lipgloss.Color("208"), // orange

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ModifiedAccent: lipgloss.Color("220"), // amber

	DropdownBackground: lipgloss.Color("237"),
}
