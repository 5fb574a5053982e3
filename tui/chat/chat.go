// Package chat is the interactive front-end: one Bubble Tea model that
// owns the query and visualization lanes and feeds gateway results back
// into them tagged with their attempt's sequence token, so an outcome that
// was superseded while in flight is discarded instead of displayed.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"clinassist/client"
	"clinassist/monitor"
	"clinassist/pubsub"
	"clinassist/session"
	"clinassist/tui/component"
	"clinassist/tui/component/renderer"
)

// Outcome messages delivered by the async lanes.
type (
	queryDoneMsg struct {
		seq    uint64
		bundle *client.AnswerBundle
		err    error
	}

	graphDoneMsg struct {
		seq      uint64
		location string
		err      error
	}

	feedbackDoneMsg struct {
		rating client.Rating
		err    error
	}
)

// Model is the top chat model.
type Model struct {
	result       component.ResultModel
	edit         component.EditModel
	status       component.StatusModel
	domainPicker component.Picker
	vizPicker    component.Picker
	renderer     *renderer.AnswerRenderer

	gateway  *client.Client
	query    *session.Query
	domains  *session.DomainSelector
	viz      *session.Viz
	graphDir string
	log      *zap.Logger

	sub <-chan pubsub.Event[monitor.Notice]
	ctx context.Context

	notice      string // transient validation error or feedback ack
	noticeIsErr bool

	width  int
	height int
}

// InitialModel builds the chat model. The monitor must already be running;
// its broker feeds the status bar.
func InitialModel(gateway *client.Client, mon *monitor.Monitor, defaultDomain client.Domain, graphDir string, log *zap.Logger) Model {
	ctx := context.Background()
	if log == nil {
		log = zap.NewNop()
	}

	domainOpts := make([]component.Option, 0, len(client.KnownDomains()))
	for _, d := range client.KnownDomains() {
		domainOpts = append(domainOpts, component.Option{ID: string(d), Name: d.DisplayName()})
	}
	vizOpts := make([]component.Option, 0, len(client.KnownVizKinds()))
	for _, k := range client.KnownVizKinds() {
		vizOpts = append(vizOpts, component.Option{ID: string(k), Name: k.DisplayName()})
	}

	domainPicker := component.NewPicker("Domain", domainOpts)
	domainPicker.Select(string(defaultDomain))

	r := renderer.NewAnswerRenderer(nil)

	return Model{
		result:       component.NewResultModel(r.Welcome()),
		edit:         component.NewEditModel(),
		status:       component.NewStatusModel(),
		domainPicker: domainPicker,
		vizPicker:    component.NewPicker("Graph", vizOpts),
		renderer:     r,
		gateway:      gateway,
		query:        session.NewQuery(),
		domains:      session.NewDomainSelector(defaultDomain),
		viz:          session.NewViz(client.VizWordCloud),
		graphDir:     graphDir,
		log:          log,
		sub:          mon.Broker().Subscribe(ctx),
		ctx:          ctx,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.edit.Init(),
		m.status.Init(),
		m.waitForNotice(),
	)
}

// waitForNotice blocks on the health monitor's event stream.
func (m Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.sub
		if !ok {
			return nil
		}
		return event
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case component.SubmitMsg:
		if cmd := m.submit(msg.Value); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.refresh()

	case queryDoneMsg:
		if m.query.Resolve(msg.seq, msg.bundle, msg.err) {
			m.refresh()
		} else {
			m.log.Info("discarded stale query response", zap.Uint64("seq", msg.seq))
		}
		cmds = append(cmds, m.syncStatus())

	case graphDoneMsg:
		if m.viz.Resolve(msg.seq, msg.location, msg.err) {
			m.refresh()
		} else {
			m.log.Info("discarded stale graph response", zap.Uint64("seq", msg.seq))
		}
		cmds = append(cmds, m.syncStatus())

	case feedbackDoneMsg:
		// Fire and forget: failures are logged by the gateway, never
		// surfaced as a blocking error, and the session is untouched.
		if msg.err == nil {
			m.setNotice("Thank you for your feedback!", false)
			m.refresh()
		}

	case pubsub.Event[monitor.Notice]:
		cmds = append(cmds, m.waitForNotice())
		// the status bar picks the event up in the passthrough below

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.domainPicker.Cycle()
			m.domains.Set(client.Domain(m.domainPicker.Selected().ID))
			return m, nil
		case tea.KeyShiftTab:
			m.vizPicker.Cycle()
			m.viz.SetKind(client.VizKind(m.vizPicker.Selected().ID))
			m.refresh()
			return m, nil
		case tea.KeyCtrlG:
			cmd := m.generateGraph()
			m.refresh()
			return m, cmd
		case tea.KeyCtrlY:
			return m, m.sendFeedback(client.RatingUp)
		case tea.KeyCtrlN:
			return m, m.sendFeedback(client.RatingDown)
		}
	}

	var cmd tea.Cmd

	m.result, cmd = m.result.Update(msg)
	cmds = append(cmds, cmd)

	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)

	m.status, cmd = m.status.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		m.domainPicker.View(),
		m.vizPicker.View(),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.result.View(),
		m.status.View(),
		m.edit.View(),
	)
}

// submit runs the query-lane trigger: validation, lane reset, one gateway
// call. A blank question surfaces the validation message and leaves any
// prior answer in place.
func (m *Model) submit(text string) tea.Cmd {
	attempt, err := m.query.Begin(text, m.domains.Current())
	if err != nil {
		m.setNotice(err.Error(), true)
		return nil
	}

	// A fresh submission must never show evidence graphics from the
	// previous answer.
	m.viz.Reset()
	m.clearNotice()

	cmds := []tea.Cmd{m.submitCmd(attempt), m.syncStatus()}
	return tea.Batch(cmds...)
}

func (m *Model) submitCmd(attempt session.Attempt) tea.Cmd {
	return func() tea.Msg {
		bundle, err := m.gateway.SubmitQuery(m.ctx, attempt.Query, attempt.Domain)
		return queryDoneMsg{seq: attempt.Seq, bundle: bundle, err: err}
	}
}

// generateGraph triggers the visualization lane against the live editor
// text, per the carried-over policy of reading current values at trigger
// time.
func (m *Model) generateGraph() tea.Cmd {
	attempt, err := m.viz.Begin(m.edit.Value(), m.domains.Current())
	if err != nil {
		m.setNotice(err.Error(), true)
		return nil
	}
	m.clearNotice()
	return tea.Batch(m.graphCmd(attempt), m.syncStatus())
}

func (m *Model) graphCmd(attempt session.VizAttempt) tea.Cmd {
	return func() tea.Msg {
		payload, err := m.gateway.GenerateGraph(m.ctx, attempt.Query, attempt.Domain, attempt.Kind)
		if err != nil {
			return graphDoneMsg{seq: attempt.Seq, err: err}
		}
		location, err := m.saveGraph(attempt, payload)
		return graphDoneMsg{seq: attempt.Seq, location: location, err: err}
	}
}

// saveGraph materializes the image payload: remote URLs pass through,
// data URIs are decoded and written under the graph directory.
func (m *Model) saveGraph(attempt session.VizAttempt, payload string) (string, error) {
	if client.IsRemoteImage(payload) {
		return payload, nil
	}
	raw, ext, err := client.DecodeImage(payload)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.graphDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(m.graphDir, fmt.Sprintf("%s_%d.%s", attempt.Kind, attempt.Seq, ext))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// sendFeedback issues one feedback request per keypress. Repeated presses
// send repeated, identical requests; without a current answer it is a
// no-op.
func (m *Model) sendFeedback(rating client.Rating) tea.Cmd {
	payload, ok := m.query.FeedbackFor(rating)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		err := m.gateway.SubmitFeedback(m.ctx, payload.Query, payload.Answer, payload.Rating)
		return feedbackDoneMsg{rating: rating, err: err}
	}
}

// syncStatus reconciles the spinner with whatever is in flight.
func (m *Model) syncStatus() tea.Cmd {
	switch {
	case m.query.InFlight():
		var cmd tea.Cmd
		m.status, cmd = m.status.Start("Analyzing Research...")
		return cmd
	case m.viz.Status() == session.VizGenerating:
		var cmd tea.Cmd
		m.status, cmd = m.status.Start("Generating graph...")
		return cmd
	default:
		m.status.Stop("Ready")
		return nil
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeIsErr = false
}

// refresh recomputes the answer pane from lane state.
func (m *Model) refresh() {
	var sections []string

	if m.notice != "" {
		if m.noticeIsErr {
			sections = append(sections, m.renderer.Error(m.notice))
		} else {
			sections = append(sections, m.renderer.Notice(m.notice))
		}
	}

	switch m.query.Status() {
	case session.StatusIdle:
		sections = append(sections, m.renderer.Welcome())
	case session.StatusSubmitting:
		// the spinner carries the progress indication
	case session.StatusSucceeded:
		sections = append(sections, m.renderer.Answer(m.query.Bundle()))
	case session.StatusFailed:
		sections = append(sections, m.renderer.Error(m.query.Err()))
	}

	if m.viz.Status() != session.VizIdle {
		sections = append(sections, m.renderer.Graph(
			m.viz.Kind(),
			m.viz.Image(),
			m.viz.Err(),
			m.viz.Status() == session.VizGenerating,
		))
	}

	m.result.SetContent(strings.Join(sections, "\n\n"))
}

// layout distributes the window height across the components.
func (m *Model) layout() {
	headerHeight := lipgloss.Height(m.domainPicker.View()) + lipgloss.Height(m.vizPicker.View())
	statusHeight := lipgloss.Height(m.status.View())
	editHeight := m.edit.Height()
	resultHeight := m.height - headerHeight - statusHeight - editHeight

	m.result.SetSize(m.width, resultHeight)
	m.edit.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.renderer.SetWidth(m.width)
}
