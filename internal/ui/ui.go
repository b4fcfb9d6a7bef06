package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	CandidateListView
	PlaylistListView
	DoneView
)

// Model represents the picker application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	importer *tasks.Importer
	catalog  services.Catalog
	url      string
	token    string

	width  int
	height int

	result        *tasks.ResolutionResult
	candidateList list.Model
	playlistList  list.Model
	selected      *tasks.ResolvedTrack
	addedTo       string
	err           error

	help help.Model
	keys keyMap
}

type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	add   key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to playlist"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.add, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.add, k.back, k.quit},
	}
}

type resolutionMsg struct {
	result *tasks.ResolutionResult
	err    error
}

type playlistsMsg struct {
	playlists []services.Playlist
	err       error
}

type addedMsg struct {
	playlist string
	err      error
}

// NewModel creates a picker for the given link.
func NewModel(ctx context.Context, importer *tasks.Importer, catalog services.Catalog, url, token string) *Model {
	return &Model{
		ctx:      ctx,
		view:     LoadingView,
		importer: importer,
		catalog:  catalog,
		url:      url,
		token:    token,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Selected returns the candidate the user picked, nil when the picker was
// quit without a selection.
func (m *Model) Selected() *tasks.ResolvedTrack {
	return m.selected
}

// Init kicks off the resolution.
func (m *Model) Init() tea.Cmd {
	return m.resolve()
}

func (m *Model) resolve() tea.Cmd {
	return func() tea.Msg {
		result, err := m.importer.ResolveImport(m.ctx, m.url, m.token)
		return resolutionMsg{result: result, err: err}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.catalog.UserPlaylists(m.ctx, m.token, 50)
		return playlistsMsg{playlists: playlists, err: err}
	}
}

func (m *Model) addToPlaylist(playlist services.Playlist) tea.Cmd {
	return func() tea.Msg {
		err := m.catalog.AddToPlaylist(m.ctx, playlist.ID, m.selected.URI, m.token)
		return addedMsg{playlist: playlist.Name, err: err}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.candidateList.Width() == 0 {
			m.candidateList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CandidateListView:
			return m.handleCandidateKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistKeys(msg)
		default:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
		}

	case resolutionMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = DoneView
			return m, nil
		}
		m.result = msg.result
		items := make([]list.Item, len(msg.result.Tracks))
		for i, track := range msg.result.Tracks {
			items[i] = candidateItem{track: track}
		}
		m.candidateList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.candidateList.Title = "Candidates"
		if msg.result.SearchQuery != nil {
			m.candidateList.Title = fmt.Sprintf("Candidates for %q", *msg.result.SearchQuery)
		}
		m.candidateList.SetSize(m.width-4, m.height-8)
		m.view = CandidateListView
		return m, nil

	case playlistsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = DoneView
			return m, nil
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Add to playlist"
		m.playlistList.SetSize(m.width-4, m.height-8)
		m.view = PlaylistListView
		return m, nil

	case addedMsg:
		m.err = msg.err
		m.addedTo = msg.playlist
		m.view = DoneView
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleCandidateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.candidateList.SelectedItem().(candidateItem); ok {
			m.selected = &item.track
			m.view = DoneView
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.add):
		if item, ok := m.candidateList.SelectedItem().(candidateItem); ok {
			m.selected = &item.track
			m.view = LoadingView
			return m, m.fetchPlaylists()
		}
	}

	var cmd tea.Cmd
	m.candidateList, cmd = m.candidateList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CandidateListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.view = LoadingView
			return m, m.addToPlaylist(item.playlist)
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CandidateListView:
		m.candidateList, cmd = m.candidateList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return styles.title.Render("Resolving...") + "\n" + m.help.View(m.keys)
	case CandidateListView:
		return m.candidateList.View() + "\n" + m.help.View(m.keys)
	case PlaylistListView:
		return m.playlistList.View() + "\n" + m.help.View(m.keys)
	default:
		return m.renderDone()
	}
}

func (m *Model) renderDone() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			styles.help.Render("Press q to quit")
	}

	if m.addedTo != "" {
		return styles.ok.Render(fmt.Sprintf("Added %q to %q", m.selected.Name, m.addedTo)) + "\n" +
			styles.help.Render("Press q to quit")
	}

	if m.selected != nil {
		return styles.ok.Render(fmt.Sprintf("Selected %q", m.selected.Name)) + "\n"
	}

	return styles.warn.Render("Nothing selected") + "\n"
}
