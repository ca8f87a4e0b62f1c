package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/inovacc/clientdb/internal/store"
)

const fmtField = " %s\n %s\n\n"

// pendingDelete is a delete waiting for a y/N answer.
type pendingDelete struct {
	row      controller.Row
	question string
}

// RegistryModel is the interactive client table with its add/edit form.
type RegistryModel struct {
	ctx    context.Context
	ctrl   *controller.Controller
	screen *screen
	logger *slog.Logger

	help    help.Model
	pending *pendingDelete
	status  string
	err     error
	width   int

	quitting bool
}

// NewRegistry builds the TUI over s and draws the initial table.
func NewRegistry(ctx context.Context, s store.Store, logger *slog.Logger) (*RegistryModel, error) {
	if logger == nil {
		logger = slog.Default()
	}

	scr := newScreen()
	ctrl := controller.New(s, scr, logger)

	if err := ctrl.Render(ctx); err != nil {
		return nil, err
	}

	return &RegistryModel{
		ctx:    ctx,
		ctrl:   ctrl,
		screen: scr,
		logger: logger,
		help:   help.New(),
	}, nil
}

// Controller exposes the underlying controller (used by tests).
func (m *RegistryModel) Controller() *controller.Controller {
	return m.ctrl
}

// Rows returns the rows currently drawn.
func (m *RegistryModel) Rows() []controller.Row {
	return m.screen.rows
}

// Err returns the last non-validation error.
func (m *RegistryModel) Err() error {
	return m.err
}

func (m *RegistryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegistryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.width = msg.Width - h
		m.help.Width = m.width
		m.screen.table.SetColumns(columnsFor(m.width))

		// header, status and help lines
		if height := msg.Height - v - 8; height > 3 {
			m.screen.table.SetHeight(height)
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case m.pending != nil:
			return m.updateConfirm(msg)
		case m.screen.formVisible:
			return m.updateForm(msg)
		default:
			return m.updateTable(msg)
		}
	}

	if m.screen.formVisible {
		return m, m.updateInputs(msg)
	}

	return m, nil
}

func (m *RegistryModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := defaultTableKeys

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.New):
		m.clearStatus()
		m.ctrl.OpenCreate()

		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		row, ok := m.screen.selected()
		if !ok {
			return m, nil
		}

		m.clearStatus()
		m.setErr(m.ctrl.Dispatch(m.ctx, row.ActionID(controller.ActionEdit)))

		return m, textinput.Blink

	case key.Matches(msg, keys.Delete):
		row, ok := m.screen.selected()
		if !ok {
			return m, nil
		}

		m.clearStatus()
		m.pending = &pendingDelete{row: row, question: controller.DeletePrompt(row.Client)}

		return m, nil
	}

	var cmd tea.Cmd
	m.screen.table, cmd = m.screen.table.Update(msg)

	return m, cmd
}

func (m *RegistryModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := defaultConfirmKeys

	var answer bool

	switch {
	case key.Matches(msg, keys.Yes):
		answer = true
	case key.Matches(msg, keys.No):
		answer = false
	default:
		return m, nil
	}

	pending := m.pending
	m.pending = nil
	m.screen.answer = answer

	m.setErr(m.ctrl.Dispatch(m.ctx, pending.row.ActionID(controller.ActionDelete)))
	m.screen.answer = false

	if answer && m.err == nil {
		m.status = fmt.Sprintf("Deleted %s", pending.row.Client.Name)
	}

	return m, nil
}

func (m *RegistryModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := defaultFormKeys

	switch {
	case key.Matches(msg, keys.Cancel):
		m.ctrl.Close()
		return m, nil

	case key.Matches(msg, keys.Save), msg.String() == "enter" && m.screen.onButton():
		return m, m.save()

	case msg.String() == "enter":
		m.screen.focus(m.screen.focusIndex + 1)
		return m, nil

	case key.Matches(msg, keys.Next):
		m.screen.focus(m.screen.focusIndex + 1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.screen.focus(m.screen.focusIndex - 1)
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *RegistryModel) save() tea.Cmd {
	mode := m.ctrl.Mode()
	name := m.screen.FormValues().Name

	err := m.ctrl.Save(m.ctx)

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		// shown inline by the form
		return nil
	}

	m.setErr(err)

	if err == nil {
		if mode == controller.ModeCreate {
			m.status = fmt.Sprintf("Added %s", name)
		} else {
			m.status = fmt.Sprintf("Saved %s", name)
		}
	}

	return nil
}

func (m *RegistryModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.screen.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.screen.inputs {
		m.screen.inputs[i], cmds[i] = m.screen.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *RegistryModel) setErr(err error) {
	m.err = err
	if err != nil {
		m.logger.Error("registry action failed", "error", err)
	}
}

func (m *RegistryModel) clearStatus() {
	m.status = ""
	m.err = nil
}

func (m *RegistryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Client Registry"))
	b.WriteString(blurredStyle.Render(fmt.Sprintf("  %d clients", len(m.screen.rows))))
	b.WriteString("\n\n")

	if m.screen.formVisible {
		b.WriteString(m.formView())
		b.WriteString("\n")
		b.WriteString(m.help.View(defaultFormKeys))

		return docStyle.Render(b.String())
	}

	if len(m.screen.rows) == 0 {
		b.WriteString(blurredStyle.Render("No clients yet. Press n to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(tableBorderStyle.Render(m.screen.table.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch {
	case m.pending != nil:
		b.WriteString(confirmStyle.Render(m.pending.question + " [y/N]"))
		b.WriteString("\n")
		b.WriteString(m.help.View(defaultConfirmKeys))
	default:
		b.WriteString(m.statusLine())
		b.WriteString(m.help.View(defaultTableKeys))
	}

	return docStyle.Render(b.String())
}

func (m *RegistryModel) formView() string {
	s := m.screen

	var b strings.Builder

	b.WriteString(titleStyle.Render(s.header))
	b.WriteString("\n\n")

	var verr *model.ValidationError
	errors.As(s.invalid, &verr)

	for i, field := range model.Fields {
		label := blurredStyle.Render(labels[field])
		if verr != nil && verr.Has(field) {
			label = errorStyle.Render(labels[field])
		}

		fmt.Fprintf(&b, fmtField, label, s.inputs[i].View())
	}

	button := blurredButton
	if s.onButton() {
		button = focusedButton
	}

	fmt.Fprintf(&b, " %s\n", button)

	if s.invalid != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(" " + s.invalid.Error()))
		b.WriteString("\n")
	}

	return modalStyle.Render(b.String())
}

func (m *RegistryModel) statusLine() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(fmt.Sprintf("✗ Error: %v", m.err)) + "\n"
	case m.status != "":
		return successStyle.Render("✓ "+m.status) + "\n"
	}

	return ""
}
