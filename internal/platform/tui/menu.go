package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/storage"
)

// menuStage is the step of player selection being shown.
type menuStage int

const (
	stagePick menuStage = iota
	stageName
	stageAge
)

const maxNameLen = 16

// MenuModel is the Bubble Tea model for the "who's playing" menu.
// Players pick a roster entry or type a new name and age.
type MenuModel struct {
	players        []bubblepop.Player
	cursor         int
	stage          menuStage
	nameInput      textinput.Model
	ageInput       textinput.Model
	inputErr       string
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *bubblepop.Player // Set when user picks a player
	openScoreboard bool              // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The current default player is
// listed first when it is not already on the roster.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	players := make([]bubblepop.Player, 0, len(bubblepop.Roster)+1)
	current := bubblepop.CurrentPlayer()
	onRoster := false
	for _, p := range bubblepop.Roster {
		if p.Name == current.Name {
			onRoster = true
		}
	}
	if !onRoster && current.Name != "" {
		players = append(players, current)
	}
	players = append(players, bubblepop.Roster...)

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = maxNameLen
	name.Width = maxNameLen + 1

	age := textinput.New()
	age.Placeholder = "Age (optional)"
	age.CharLimit = 3
	age.Width = 16

	return MenuModel{
		players:   players,
		nameInput: name,
		ageInput:  age,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.stage {
		case stageName:
			return m.handleNameKey(msg)
		case stageAge:
			return m.handleAgeKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for the player list. The last
// entry opens name entry.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.players) {
			m.cursor++
		}

	case MenuActionSelect:
		if m.cursor == len(m.players) {
			m.stage = stageName
			m.inputErr = ""
			m.nameInput.SetValue("")
			m.ageInput.SetValue("")
			return m, m.nameInput.Focus()
		}
		selected := m.players[m.cursor]
		m.selected = &selected
		return m, tea.Quit // Exit menu to choose a mode

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.stage = stagePick
		m.nameInput.Blur()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			m.inputErr = "Please type a name"
			return m, nil
		}
		m.inputErr = ""
		m.stage = stageAge
		m.nameInput.Blur()
		return m, m.ageInput.Focus()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m MenuModel) handleAgeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.stage = stageName
		m.ageInput.Blur()
		return m, m.nameInput.Focus()
	case "enter":
		age, err := parseAge(m.ageInput.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.ageInput.Blur()
		m.selected = &bubblepop.Player{Name: strings.TrimSpace(m.nameInput.Value()), Age: age}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.ageInput, cmd = m.ageInput.Update(msg)
	return m, cmd
}

// parseAge accepts an empty string (unknown age) or a whole number of years.
func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil || age < 0 || age > 120 {
		return 0, fmt.Errorf("age must be a number between 0 and 120")
	}
	return age, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  B U B B L E   P O P  ", m.width))
	b.WriteString("\n\n")

	switch m.stage {
	case stageName, stageAge:
		m.viewNewPlayer(&b)
	default:
		m.viewPlayers(&b)
	}

	return b.String()
}

func (m MenuModel) viewPlayers(b *strings.Builder) {
	b.WriteString(centerText("Who's playing?", m.width))
	b.WriteString("\n\n")

	for i, p := range m.players {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + p.Name
		if p.Age > 0 {
			line += fmt.Sprintf(" (%d)", p.Age)
		}
		if best := m.bestScore(p.Name); best > 0 {
			line += fmt.Sprintf("  best %d", best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	cursor := "  "
	if m.cursor == len(m.players) {
		cursor = "> "
	}
	b.WriteString(centerText(cursor+"New player...", m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
}

func (m MenuModel) viewNewPlayer(b *strings.Builder) {
	b.WriteString(centerText("New player", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.nameInput.View(), m.width))
	b.WriteString("\n")
	if m.stage == stageAge {
		b.WriteString(centerText(m.ageInput.View(), m.width))
		b.WriteString("\n")
	}
	if m.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.inputErr, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Enter: Next  |  Esc: Back", m.width))
	b.WriteString("\n")
}

// bestScore returns the player's campaign best, or 0 without a store.
func (m MenuModel) bestScore(player string) int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.PlayerBest(bubblepop.IDCampaign, player)
	if err != nil {
		return 0
	}
	return best
}

// Selected returns the selected player, or nil if none selected.
func (m MenuModel) Selected() *bubblepop.Player {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Player          bubblepop.Player
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Player = *m.Selected()
	return result, nil
}
