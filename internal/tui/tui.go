package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/engine"
	"github.com/tatianab/ball-quest/internal/models"
)

// tickInterval drives the engine clock; one Advance per tick.
const tickInterval = 50 * time.Millisecond

// rubHold is how long a rub keypress counts as "still held". Terminals
// report no key-up, so key repeat refreshes this window.
const rubHold = 300 * time.Millisecond

const (
	mapCols = 64
	mapRows = 20
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	narratorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFA500")).
			Padding(0, 1).
			Width(62)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAFFAA")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(1, 3)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6666")).Bold(true)

	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	doorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AA5500"))
	ballStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF88FF"))
	familyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#88CCFF"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF88"))
)

type tickMsg time.Time

type model struct {
	eng     *engine.Engine
	session *engine.Session

	yearInput  textinput.Model
	monthInput textinput.Model
	dayInput   textinput.Model
	cleaningBar progress.Model
	inventory   viewport.Model

	lastRub  time.Time
	lastTick time.Time
	width    int
	height   int
}

// NewModel wires the bubbles components around a fresh session.
func NewModel(eng *engine.Engine) model {
	year := textinput.New()
	year.Placeholder = "YYYY"
	year.CharLimit = 4
	year.Width = 6

	month := textinput.New()
	month.Placeholder = "MM"
	month.CharLimit = 2
	month.Width = 4

	day := textinput.New()
	day.Placeholder = "DD"
	day.CharLimit = 2
	day.Width = 4

	return model{
		eng:         eng,
		session:     eng.NewSession(),
		yearInput:   year,
		monthInput:  month,
		dayInput:    day,
		cleaningBar: progress.New(progress.WithDefaultGradient()),
		inventory:   viewport.New(62, 16),
		lastTick:    time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick)
		if dt <= 0 || dt > time.Second {
			dt = tickInterval
		}
		m.lastTick = now
		if !m.lastRub.IsZero() && now.Sub(m.lastRub) > rubHold {
			m.session.CleaningPointerUp()
			m.lastRub = time.Time{}
		}
		m.session.Advance(dt)
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inventory.Width = min(msg.Width-4, 70)
		m.inventory.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.session.Mode() {
	case engine.ModeExplore:
		return m.handleExploreKey(msg)
	case engine.ModeCleaning:
		return m.handleCleaningKey(msg)
	case engine.ModeChallenge:
		return m.handleChallengeKey(msg)
	case engine.ModeInventory:
		switch msg.String() {
		case "i", "esc", "enter":
			m.session.CloseInventory()
		default:
			var cmd tea.Cmd
			m.inventory, cmd = m.inventory.Update(msg)
			return m, cmd
		}
	case engine.ModeLetter:
		switch msg.String() {
		case "enter", "esc", " ":
			m.session.ConfirmLetter()
		}
	case engine.ModeEnded:
		switch msg.String() {
		case "r":
			m.session = m.eng.NewSession()
			m.lastTick = time.Now()
		case "q", "esc", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const step = 12.0
	switch msg.String() {
	case "up", "w":
		m.session.MovePlayer(0, -step)
	case "down", "s":
		m.session.MovePlayer(0, step)
	case "left", "a":
		m.session.MovePlayer(-step, 0)
	case "right", "d":
		m.session.MovePlayer(step, 0)
	case "e":
		m.session.Interact()
	case "k":
		m.session.ActivateChallenge()
	case "i":
		m.session.OpenInventory()
		m.inventory.SetContent(m.inventoryContent())
		m.inventory.GotoTop()
	case "g":
		m.session.DebugCompleteAll()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleCleaningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	if snap.Cleaning != nil && snap.Cleaning.Revealed {
		switch msg.String() {
		case "enter", " ":
			m.session.ConfirmCollect()
		case "esc":
			m.session.CancelCleaning()
		}
		return m, nil
	}
	switch msg.String() {
	case " ":
		// Rubbing at the ball's display position; key repeat keeps the
		// press alive until the hold window lapses.
		m.session.CleaningPointerDown(models.Point{})
		m.lastRub = time.Now()
	case "esc":
		m.session.CancelCleaning()
		m.lastRub = time.Time{}
	}
	return m, nil
}

func (m model) handleChallengeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.session.ChallengeDigit(r)
		}
	case tea.KeyBackspace:
		m.session.ChallengeBackspace()
	case tea.KeyTab:
		m.session.ChallengeNextField()
	case tea.KeyEnter:
		m.session.SubmitChallenge()
	case tea.KeyEsc:
		m.session.CancelChallenge()
	}
	return m, nil
}

func (m model) View() string {
	snap := m.session.Snapshot()

	var body string
	switch snap.Mode {
	case engine.ModeCleaning:
		body = m.cleaningView(snap)
	case engine.ModeChallenge:
		body = m.challengeView(snap)
	case engine.ModeInventory:
		body = m.inventoryView(snap)
	case engine.ModeLetter:
		body = m.letterView(snap)
	case engine.ModeEnded:
		body = m.endView(snap)
	default:
		body = m.exploreView(snap)
	}
	return "\n" + body + "\n"
}

func (m model) exploreView(snap engine.Snapshot) string {
	hud := hudStyle.Render(snap.Room) +
		" " + hudStyle.Render(fmt.Sprintf("Balls: %d/%d", snap.BallsCollected, snap.BallsTotal)) +
		" " + hudStyle.Render(fmt.Sprintf("Keys: %d", snap.KeysHeld))

	banners := ""
	if snap.Narrator != "" {
		banners += narratorStyle.Render(snap.Narrator) + "\n"
	}
	if snap.DoorPrompt != "" {
		banners += promptStyle.Render(snap.DoorPrompt) + "\n"
	}

	help := helpStyle.Render("arrows/wasd move · e door · k challenge · i inventory · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(snap.Title),
		hud,
		m.renderMap(snap),
		banners+help,
	)
}

// renderMap projects the world plane onto a fixed character grid.
func (m model) renderMap(snap engine.Snapshot) string {
	type cell struct {
		ch    string
		style lipgloss.Style
	}
	grid := make([][]cell, mapRows)
	for y := range grid {
		grid[y] = make([]cell, mapCols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: "."}
		}
	}
	put := func(p models.Point, ch string, style lipgloss.Style) {
		x := int(p.X / snap.Width * float64(mapCols))
		y := int(p.Y / snap.Height * float64(mapRows))
		x = clampInt(x, 0, mapCols-1)
		y = clampInt(y, 0, mapRows-1)
		grid[y][x] = cell{ch: ch, style: style}
	}

	for _, d := range snap.Doors {
		ch := "#"
		if d.Open {
			ch = "/"
		}
		put(d.Region.Center(), ch, doorStyle)
	}
	for _, e := range snap.Entities {
		switch e.Kind {
		case engine.EntityBall:
			put(e.Pos, "o", ballStyle)
		case engine.EntityFamily:
			put(e.Pos, "F", familyStyle)
		case engine.EntityKey:
			put(e.Pos, "k", keyStyle)
		case engine.EntityLetter:
			put(e.Pos, "✉", keyStyle)
		}
	}
	put(snap.Player, "@", playerStyle)

	var sb strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c.ch == "." {
				sb.WriteString(helpStyle.Render("."))
			} else {
				sb.WriteString(c.style.Render(c.ch))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m model) cleaningView(snap engine.Snapshot) string {
	c := snap.Cleaning
	if c == nil {
		return ""
	}
	if c.Revealed {
		content := titleStyle.Render(c.FoundLine) + "\n\n"
		if c.Ball.FlavorText != "" {
			content += lipgloss.NewStyle().Width(50).Italic(true).Render(c.Ball.FlavorText) + "\n\n"
		}
		content += successStyle.Render("( enter: add to collection )") + "\n" +
			helpStyle.Render("esc: leave it for now")
		return m.withBanners(snap, popupStyle.Render(content))
	}

	content := titleStyle.Render("A rusty ball!") + "\n\n" +
		"Hold SPACE and rub to clean it.\n\n" +
		m.cleaningBar.ViewAs(c.Progress) + "\n\n"
	if c.Rubbing {
		content += promptStyle.Render("scrub scrub scrub...")
	} else {
		content += helpStyle.Render("paused · esc: walk away")
	}
	return m.withBanners(snap, popupStyle.Render(content))
}

func (m *model) syncChallengeInputs(c *engine.ChallengeView) {
	m.yearInput.SetValue(c.Year)
	m.monthInput.SetValue(c.Month)
	m.dayInput.SetValue(c.Day)
	m.yearInput.Blur()
	m.monthInput.Blur()
	m.dayInput.Blur()
	switch c.Active {
	case engine.FieldYear:
		m.yearInput.Focus()
	case engine.FieldMonth:
		m.monthInput.Focus()
	case engine.FieldDay:
		m.dayInput.Focus()
	}
}

func (m model) challengeView(snap engine.Snapshot) string {
	c := snap.Challenge
	if c == nil {
		return ""
	}
	m.syncChallengeInputs(c)

	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		"Year "+m.yearInput.View(),
		"  Month "+m.monthInput.View(),
		"  Day "+m.dayInput.View(),
	)

	content := titleStyle.Render(fmt.Sprintf("%s's Birthday Challenge", c.MemberName)) + "\n\n" +
		"Guess the birthdate to earn the door key!\n\n" +
		fields + "\n\n"

	if c.Result != "" {
		if c.Solved {
			content += successStyle.Render(c.Result) + "\n"
		} else {
			content += failureStyle.Render(c.Result) + "\n"
		}
	}
	content += helpStyle.Render("digits type · tab next field · enter submit · esc cancel")
	return m.withBanners(snap, popupStyle.Render(content))
}

func (m model) inventoryContent() string {
	snap := m.session.Snapshot()
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("BALLS") + "\n")
	if len(snap.Collection) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, b := range snap.Collection {
		sb.WriteString("- " + b.DisplayName + "\n")
	}
	sb.WriteString("\n" + titleStyle.Render("KEYS") + "\n")
	if len(snap.Keys) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, k := range snap.Keys {
		sb.WriteString("- " + strings.ReplaceAll(string(k), "_", " ") + "\n")
	}
	sb.WriteString("\n" + titleStyle.Render("LETTERS") + "\n")
	sb.WriteString(fmt.Sprintf("%d read\n", snap.LettersRead))
	return sb.String()
}

func (m model) inventoryView(snap engine.Snapshot) string {
	header := titleStyle.Render("INVENTORY") +
		helpStyle.Render(fmt.Sprintf("  %d/%d balls", snap.BallsCollected, snap.BallsTotal))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.inventory.View(),
		helpStyle.Render("i/esc close · arrows scroll"),
	)
}

func (m model) letterView(snap engine.Snapshot) string {
	content := titleStyle.Render("A letter") + "\n\n" +
		lipgloss.NewStyle().Width(50).Italic(true).Render(snap.Letter) + "\n\n" +
		helpStyle.Render("enter: done reading")
	return m.withBanners(snap, popupStyle.Render(content))
}

func (m model) endView(snap engine.Snapshot) string {
	var balls []string
	for _, b := range snap.Collection {
		balls = append(balls, b.DisplayName)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(snap.EndTitle),
		"",
		lipgloss.NewStyle().Width(60).Align(lipgloss.Center).Render(snap.EndMessage),
		"",
		lipgloss.NewStyle().Width(60).Align(lipgloss.Center).Render(strings.Join(balls, " · ")),
		"",
		helpStyle.Render("r restart · q quit"),
	)
}

func (m model) withBanners(snap engine.Snapshot, body string) string {
	if snap.Narrator != "" {
		return narratorStyle.Render(snap.Narrator) + "\n" + body
	}
	return body
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the program around an existing engine.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads config and content, then runs the game.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}
	return Run(eng)
}
