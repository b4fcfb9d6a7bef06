// Package ui implements an interactive candidate picker using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for resolving a link:
//  1. [LoadingView] : Resolve the link into scored candidates
//  2. [CandidateListView] : Browse candidates with confidence and saved status
//  3. [PlaylistListView] : Optionally append the selection to a playlist
//  4. [DoneView] : Show the outcome or an error
package ui
