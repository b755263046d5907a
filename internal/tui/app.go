// Package tui is the terminal front end: a bubbletea program that owns the
// tick schedule, translates mouse events into pointer operations, and draws
// the published frame. The terminal cell grid doubles as the physics
// coordinate space, one unit per cell, with y growing downward.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tokensort/internal/catalog"
	"github.com/san-kum/tokensort/internal/config"
	"github.com/san-kum/tokensort/internal/engine"
	"github.com/san-kum/tokensort/internal/geom"
	"github.com/san-kum/tokensort/internal/storage"
)

const (
	headerRows = 2
	footerRows = 1
	bucketRows = 4

	minWidth  = 48
	minHeight = 16
)

type model struct {
	eng    *engine.Engine
	tuning *config.Tuning
	cat    *catalog.Catalog

	width    int
	height   int
	started  bool
	tooSmall bool
}

// NewApp builds the interactive session. The engine is created here but not
// started; the first WindowSizeMsg supplies the real layout.
func NewApp(tuning *config.Tuning, cat *catalog.Catalog, led *storage.Ledger) (*model, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	eng, err := engine.New(engine.Options{
		Tuning:  tuning,
		Catalog: cat,
		Ledger:  led,
	})
	if err != nil {
		return nil, err
	}
	return &model{eng: eng, tuning: tuning, cat: cat}, nil
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tuning.TickRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// layout derives the physics container and the bucket row from the terminal
// size. The container excludes the header and footer chrome; the buckets
// split the bottom band evenly, in catalog category order.
func (m model) layout() (geom.Rect, []geom.Rect) {
	w := float64(m.width)
	h := float64(m.height - headerRows - footerRows)
	bounds := geom.NewRect(0, 0, w, h)

	n := len(m.cat.Categories)
	bw := w / float64(n)
	rects := make([]geom.Rect, n)
	for i := range rects {
		rects[i] = geom.NewRect(float64(i)*bw, h-bucketRows, bw, bucketRows)
	}
	return bounds, rects
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.started {
				_ = m.eng.Reset()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tooSmall = msg.Width < minWidth || msg.Height < minHeight
		if m.tooSmall {
			return m, nil
		}
		bounds, rects := m.layout()
		if !m.started {
			if err := m.eng.Start(bounds, rects); err != nil {
				return m, tea.Quit
			}
			m.started = true
			return m, m.tick()
		}
		m.eng.Resize(bounds, rects)
		return m, nil

	case tea.MouseMsg:
		if !m.started || m.tooSmall {
			return m, nil
		}
		x := float64(msg.X)
		y := float64(msg.Y - headerRows)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.eng.PointerDown(x, y)
			}
		case tea.MouseActionMotion:
			m.eng.PointerMove(x, y)
		case tea.MouseActionRelease:
			m.eng.PointerUp(x, y)
		}
		return m, nil

	case tickMsg:
		if m.started && !m.tooSmall {
			m.eng.Step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Run starts the interactive program in the alternate screen with full
// mouse motion reporting, which the drag controller needs to track the
// pointer between press and release.
func Run(tuning *config.Tuning, cat *catalog.Catalog, led *storage.Ledger) error {
	app, err := NewApp(tuning, cat, led)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
