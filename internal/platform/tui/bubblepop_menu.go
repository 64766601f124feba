package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
)

// PopSelection holds the user's choice of mode and starting level.
type PopSelection struct {
	GameID string // bubblepop.IDCampaign or bubblepop.IDZen
	Level  int    // 0 = start from beginning, otherwise 1-based campaign level
}

// ModeModel lets users choose campaign or zen and a starting level.
type ModeModel struct {
	player        bubblepop.Player
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     PopSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewModeModel creates a new mode selection model for player.
func NewModeModel(player bubblepop.Player, width, height int) ModeModel {
	return ModeModel{
		player:    player,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 { // Campaign, Zen, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(PopSelection{GameID: bubblepop.IDCampaign})
		case 1:
			return m.choose(PopSelection{GameID: bubblepop.IDZen})
		case 2:
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < bubblepop.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(PopSelection{GameID: bubblepop.IDCampaign, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m ModeModel) choose(sel PopSelection) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = sel
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m ModeModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B U B B L E   P O P", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Hi %s! How do you want to play?", m.player.Name), m.width))
	b.WriteString("\n\n")

	modes := []string{
		fmt.Sprintf("Campaign (%d levels)", bubblepop.LevelCount()),
		"Zen (no move limit)",
		"Select Level...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m ModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range bubblepop.Levels() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %-10s target %4d in %2d moves", cursor, lvl.ID, lvl.Name, lvl.Target, lvl.Moves)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ModeModel) Selected() *PopSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the mode selection and returns the selection, or
// nil if the player backed out or quit.
func RunModeSelector(player bubblepop.Player, cfg core.RuntimeConfig) (*PopSelection, error) {
	model := NewModeModel(player, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
