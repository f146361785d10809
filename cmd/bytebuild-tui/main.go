package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/config"
	"github.com/dd0wney/bytebuilder/pkg/format"
	"github.com/dd0wney/bytebuilder/pkg/pools"
)

// maxHistory is how many pops the history table keeps.
const maxHistory = 8

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginRight(2)

	contentBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Pop     key.Binding
	PopByte key.Binding
	Newline key.Binding
	Reset   key.Binding
	Toggle  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Pop: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "pop rune"),
	),
	PopByte: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "pop byte"),
	),
	Newline: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "append newline"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "quoted/hex"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pop, k.Reset, k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pop, k.PopByte, k.Newline},
		{k.Reset, k.Toggle, k.Quit},
	}
}

type model struct {
	buf        *builder.Builder
	allocator  string
	keys       keyMap
	help       help.Model
	history    table.Model
	pops       []table.Row
	showHex    bool
	message    string
	messageErr bool
}

func initialModel(buf *builder.Builder, allocator string) model {
	columns := []table.Column{
		{Title: "Popped", Width: 12},
		{Title: "Width", Width: 6},
		{Title: "Len", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(maxHistory),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	return model{
		buf:       buf,
		allocator: allocator,
		keys:      keys,
		help:      help.New(),
		history:   t,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.message = ""
		m.messageErr = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pop):
			r, width := m.buf.PopRune()
			if width == 0 {
				m.setError("builder is empty")
				break
			}
			m.recordPop(quoteRune(r), width)

		case key.Matches(msg, m.keys.PopByte):
			c, ok := m.buf.PopByte()
			if !ok {
				m.setError("builder is empty")
				break
			}
			m.recordPop(fmt.Sprintf("0x%02x", c), 1)

		case key.Matches(msg, m.keys.Newline):
			m.appendRunes([]rune{'\n'})

		case key.Matches(msg, m.keys.Reset):
			m.buf.Reset()
			m.pops = nil
			m.history.SetRows(nil)
			m.message = "reset"

		case key.Matches(msg, m.keys.Toggle):
			m.showHex = !m.showHex

		case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
			m.appendRunes(msg.Runes)
		}
	}

	return m, nil
}

func (m *model) appendRunes(runes []rune) {
	for _, r := range runes {
		if m.buf.AppendRune(r) == 0 {
			if err := m.buf.Err(); err != nil {
				m.setError(err.Error())
			} else {
				m.setError("buffer full")
			}
			return
		}
	}
}

func (m *model) recordPop(popped string, width int) {
	row := table.Row{popped, strconv.Itoa(width), strconv.Itoa(m.buf.Len())}
	m.pops = append([]table.Row{row}, m.pops...)
	if len(m.pops) > maxHistory {
		m.pops = m.pops[:maxHistory]
	}
	m.history.SetRows(m.pops)
	m.message = "popped " + popped
}

func (m *model) setError(msg string) {
	m.message = msg
	m.messageErr = true
}

func quoteRune(r rune) string {
	var b builder.Builder
	b.AppendQuotedRune(r)
	return b.String()
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Byte Builder"))
	s.WriteString("\n\n")

	mode := "owned"
	if m.buf.Fixed() {
		mode = "fixed"
	}
	stats := fmt.Sprintf("Len:       %d\nCap:       %d\nSpace:     %d\nMode:      %s\nAllocator: %s",
		m.buf.Len(), m.buf.Cap(), m.buf.Space(), mode, m.allocator)

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(stats),
		contentBoxStyle.Render(m.renderContents()),
	))
	s.WriteString("\n\n")
	s.WriteString(m.history.View())
	s.WriteString("\n")

	if m.message != "" {
		style := successStyle
		if m.messageErr {
			style = errorStyle
		}
		s.WriteString("\n  " + style.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderContents() string {
	if m.buf.Len() == 0 {
		return "(empty)"
	}
	if m.showHex {
		return strings.TrimRight(hex.Dump(m.buf.Bytes()), "\n")
	}

	var quoted builder.Builder
	defer quoted.Release()
	if _, err := format.Quote(&quoted, m.buf.String(), '"', false); err != nil {
		return err.Error()
	}
	return quoted.String()
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	fixed := flag.Int("fixed", 0, "Edit a borrowed buffer of N bytes instead of an owned one")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	alloc, err := cfg.NewAllocator()
	if err != nil {
		log.Fatalf("Failed to create allocator: %v", err)
	}

	var buf *builder.Builder
	if *fixed > 0 {
		buf = builder.FromBytes(make([]byte, *fixed))
	} else if buf, err = cfg.NewBuilder(alloc); err != nil {
		log.Fatalf("Failed to create builder: %v", err)
	}
	defer buf.Release()

	p := tea.NewProgram(initialModel(buf, pools.Name(alloc)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running TUI: %v", err)
	}
}
