// Package viz renders ignition runs in the terminal.
//
//   - [Charts]: fuel concentration and temperature against time, drawn with
//     asciigraph
//   - [Summary], [SpeciesTable]: lipgloss panels for a finished run and for
//     the initial mixture
//   - [LiveModel]: a Bubble Tea program that advances a simulator while it
//     redraws the charts
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Steps per frame
//	Q     - Quit
//
// Nothing in the simulation depends on rendering; every function here only
// reads results.
package viz
