package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/spillover/internal/formatter"
	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/tasks"
)

var (
	_ list.Item = candidateItem{}
	_ list.Item = playlistItem{}
)

// candidateItem wraps [tasks.ResolvedTrack] to implement [list.Item].
type candidateItem struct {
	track tasks.ResolvedTrack
}

func (i candidateItem) FilterValue() string { return i.track.Name }

func (i candidateItem) Title() string {
	title := i.track.Name
	if i.track.IsLiked {
		title += " (saved)"
	}
	return title
}

func (i candidateItem) Description() string {
	desc := artistNames(i.track.Artists)
	desc = fmt.Sprintf("%s [%s]", desc, formatter.FormatDuration(i.track.DurationMS))
	if i.track.Confidence != nil {
		desc = fmt.Sprintf("%s %d%% %s", desc, i.track.Confidence.Score, i.track.Confidence.Level)
	}
	return desc
}

// playlistItem wraps [services.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist services.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d tracks", i.playlist.TrackCount)
}

func artistNames(artists []services.Artist) string {
	if len(artists) == 0 {
		return "Unknown Artist"
	}

	names := artists[0].Name
	for _, a := range artists[1:] {
		names += ", " + a.Name
	}
	return names
}
