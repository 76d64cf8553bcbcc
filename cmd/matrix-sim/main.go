package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fkcurrie/digit-matrix-golang/internal/clock"
	"github.com/fkcurrie/digit-matrix-golang/internal/config"
	"github.com/fkcurrie/digit-matrix-golang/internal/diag"
	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/input"
	"github.com/fkcurrie/digit-matrix-golang/internal/preview"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
)

const maxLogLines = 6

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// indicator stands in for the heartbeat line
type indicator struct {
	on atomic.Bool
}

func (i *indicator) SetValue(v int) error {
	i.on.Store(v != 0)
	return nil
}

// logLines keeps the last few diagnostic lines for the view
type logLines struct {
	mu    sync.Mutex
	lines []string
}

func (l *logLines) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		l.lines = append(l.lines, line)
	}
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
	return len(p), nil
}

func (l *logLines) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

type frameMsg [types.NumCells]uint32

type model struct {
	clock     clock.Monotonic
	counter   *input.Counter
	debouncer *input.Debouncer
	heartbeat *indicator
	logs      *logLines
	frame     frameMsg
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "a", "up", "+":
			m.debouncer.HandleEdge(types.Edge{Button: types.ButtonA, Timestamp: m.clock.Now()})
		case "b", "down", "-":
			m.debouncer.HandleEdge(types.Edge{Button: types.ButtonB, Timestamp: m.clock.Now()})
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = msg
	}
	return m, nil
}

func (m model) View() string {
	// rebuild the logical grid from the chain-ordered words
	var cells [types.MatrixSize][types.MatrixSize]string
	for i, w := range m.frame {
		row, col := display.Cell(i)
		g, r, b := ws2812.Decode(w)
		if r == 0 && g == 0 && b == 0 {
			cells[row][col] = dimStyle.Render("·")
			continue
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", preview.Visible(r), preview.Visible(g), preview.Visible(b))))
		cells[row][col] = style.Render("●")
	}

	var board strings.Builder
	for row := range cells {
		board.WriteString(strings.Join(cells[row][:], " "))
		if row < types.MatrixSize-1 {
			board.WriteByte('\n')
		}
	}

	beat := dimStyle.Render("○")
	if m.heartbeat.on.Load() {
		beat = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("●")
	}

	a := m.debouncer.Stats(types.ButtonA)
	b := m.debouncer.Stats(types.ButtonB)
	status := fmt.Sprintf("digit %d  heartbeat %s\nA %d/%d  B %d/%d (accepted/suppressed)",
		m.counter.Load(), beat, a.Accepted, a.Suppressed, b.Accepted, b.Suppressed)

	return lipgloss.JoinVertical(lipgloss.Left,
		boardStyle.Render(board.String()),
		status,
		m.logs.String(),
		helpStyle.Render("a/↑ increment  b/↓ decrement  q quit"),
	)
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logs := &logLines{}
	var counter input.Counter
	queue := diag.NewQueue(cfg.Diag.QueueSize, log.New(logs, "", log.Ltime))
	debouncer := input.NewDebouncer(cfg.Timing.Debounce, &counter, queue)
	beat := &indicator{}

	words := make(chan uint32)
	renderer := display.NewRenderer(cfg.LoopConfig(), clock.Monotonic{}, beat, &counter, words)

	m := model{
		counter:   &counter,
		debouncer: debouncer,
		heartbeat: beat,
		logs:      logs,
	}
	p := tea.NewProgram(m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx)
	go renderer.Start(ctx)
	go func() {
		var frame, last frameMsg
		lastBeat := false
		n := 0
		for {
			select {
			case <-ctx.Done():
				return
			case w := <-words:
				frame[n] = w
				n++
				if n < types.NumCells {
					continue
				}
				n = 0
				// only wake the view when something visible changed
				if frame != last || beat.on.Load() != lastBeat {
					last, lastBeat = frame, beat.on.Load()
					p.Send(frame)
				}
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Fatalf("Simulator failed: %v", err)
	}
}
