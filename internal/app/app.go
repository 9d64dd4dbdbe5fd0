package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/kompaksatyabuana/kompak/internal/questions"
	"github.com/kompaksatyabuana/kompak/internal/router"
	"github.com/kompaksatyabuana/kompak/internal/screen"
	"github.com/kompaksatyabuana/kompak/internal/screens/quiz"
	"github.com/kompaksatyabuana/kompak/internal/screens/welcome"
	"github.com/kompaksatyabuana/kompak/internal/session"
	"github.com/kompaksatyabuana/kompak/internal/ui/layout"
)

// DefaultLoadTimeout bounds a single question fetch.
const DefaultLoadTimeout = 10 * time.Second

// Options holds the dependencies of the quiz TUI.
type Options struct {
	Source         questions.Source
	SessionOptions []session.Option
	Logger         hclog.Logger
	LoadTimeout    time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *session.Controller
	src    questions.Source

	loadTimeout time.Duration
	width       int
	height      int
}

// newAppModel creates an AppModel that opens on the welcome splash and
// continues to the quiz.
func newAppModel(ctrl *session.Controller, src questions.Source, loadTimeout time.Duration) AppModel {
	next := func() screen.Screen {
		return quiz.New(ctrl, src, loadTimeout)
	}
	return AppModel{
		router:      router.New(welcome.New(next)),
		ctrl:        ctrl,
		src:         src,
		loadTimeout: loadTimeout,
	}
}

// Init starts the splash animation and the question fetch together.
func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	cmds = append(cmds, quiz.LoadCmd(m.ctrl, m.src, m.loadTimeout))
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// relay forwards controller notifications into the program. Notifications
// coalesce: screens re-read the snapshot, so one pending signal is enough.
type relay struct {
	ch chan struct{}
}

func newRelay() *relay {
	return &relay{ch: make(chan struct{}, 1)}
}

// notify is the controller observer. It never blocks, so it is safe to
// call from inside Update.
func (r *relay) notify(session.Snapshot) {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

// pump delivers pending notifications until ctx is done.
func (r *relay) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.ch:
			send(quiz.StateChangedMsg{})
		}
	}
}

// Run starts the quiz TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Source == nil {
		return fmt.Errorf("app: no question source")
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	loadTimeout := opts.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}

	rl := newRelay()
	sessionOpts := append([]session.Option{
		session.WithLogger(logger.Named("session")),
	}, opts.SessionOptions...)
	sessionOpts = append(sessionOpts, session.WithObserver(rl.notify))

	ctrl := session.New(sessionOpts...)
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(ctrl, opts.Source, loadTimeout), tea.WithContext(ctx))
	go rl.pump(ctx, p.Send)

	logger.Debug("starting quiz ui")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run quiz ui: %w", err)
	}
	return nil
}
