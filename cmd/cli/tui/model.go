package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/namegen"
	"github.com/tokenforge/image-pool-go/internal/scanner"
	"github.com/tokenforge/image-pool-go/internal/types"
)

var cmdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff66ff"))

type logMsg string

type Model struct {
	system    *actor.System
	imagesDir string
	namegen   *namegen.Generator
	logChan   <-chan string
	viewport  viewport.Model
	textInput textinput.Model
	history   []string
	ready     bool
	error     error
}

func NewModel(system *actor.System, imagesDir string, logChan <-chan string) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.Focus()
	ti.Width = 80

	return Model{
		system:    system,
		imagesDir: imagesDir,
		namegen:   namegen.NewGenerator(),
		logChan:   logChan,
		textInput: ti,
		history:   []string{},
	}
}

func (m Model) Init() bubbletea.Cmd {
	return bubbletea.Batch(textinput.Blink, m.waitForLog())
}

func (m Model) waitForLog() bubbletea.Cmd {
	return func() bubbletea.Msg {
		line, ok := <-m.logChan
		if !ok {
			return nil
		}
		return logMsg(line)
	}
}

func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	var (
		cmd  bubbletea.Cmd
		cmds []bubbletea.Cmd
	)

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	switch msg := msg.(type) {
	case logMsg:
		m.appendHistory(strings.TrimRight(string(msg), "\n"))
		cmds = append(cmds, m.waitForLog())
	case bubbletea.KeyMsg:
		switch msg.Type {
		case bubbletea.KeyEnter:
			input := m.textInput.Value()
			m.textInput.Reset()

			parts := strings.Fields(input)
			if len(parts) == 0 {
				return m, nil
			}

			command := parts[0]

			switch command {
			case "/state":
				state := m.system.State()
				reqId := m.system.GetRequestID()

				m.appendHistory(cmdStyle.Render("/state"))
				m.appendHistory(fmt.Sprintf("LatestRequestId: %d", reqId))
				m.appendHistory(prettyState(state))
			case "/pick":
				resp := <-m.system.Pick()
				var output string
				if resp.Err != nil {
					output = fmt.Sprintf("[Request %d] Pick failed: %v", resp.RequestID, resp.Err)
				} else {
					output = fmt.Sprintf("[Request %d] You got: %s", resp.RequestID, resp.FileID)
				}
				m.appendHistory(cmdStyle.Render("/pick"))
				m.appendHistory(output)
			case "/rescan":
				m.appendHistory(cmdStyle.Render("/rescan"))
				images, err := scanner.ScanDir(m.imagesDir)
				if err != nil {
					m.appendHistory(fmt.Sprintf("Scan failed: %v", err))
					break
				}
				resp := m.system.Rescan(images)
				if resp.Err != nil {
					m.appendHistory(fmt.Sprintf("Rescan failed: %v", resp.Err))
					break
				}
				m.appendHistory(fmt.Sprintf("Added: %v Removed: %v", resp.Added, resp.Removed))
			case "/meta":
				meta := m.namegen.Generate()
				m.appendHistory(cmdStyle.Render("/meta"))
				m.appendHistory(fmt.Sprintf("Name: %s (%s)", meta.Name, meta.Symbol))
				m.appendHistory(fmt.Sprintf("Desc: %s", meta.Description))
				m.appendHistory(fmt.Sprintf("Web: %s", meta.WebURL))
			}
		case bubbletea.KeyCtrlC, bubbletea.KeyEsc:
			return m, bubbletea.Quit
		}
	case bubbletea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		viewportHeight := 10

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
		}
		m.textInput.Width = msg.Width - 4
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, bubbletea.Batch(cmds...)
}

func (m *Model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	var style = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	return style.Render("Image Pool TUI")
}

func (m Model) footerView() string {
	return m.textInput.View()
}

func prettyState(state []types.PoolImageState) string {
	var builder strings.Builder
	for _, item := range state {
		builder.WriteString(fmt.Sprintf("FileID: %-40s Used: %v\n", item.FileID, item.Used))
	}
	return builder.String()
}
