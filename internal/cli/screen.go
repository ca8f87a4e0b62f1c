package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
)

var _ controller.View = (*screen)(nil)

var placeholders = map[string]string{
	model.FieldName:  "Full name",
	model.FieldEmail: "name@example.com",
	model.FieldPhone: "(11) 99999-9999",
	model.FieldCity:  "São Paulo",
}

var labels = map[string]string{
	model.FieldName:  "Name:",
	model.FieldEmail: "Email:",
	model.FieldPhone: "Phone:",
	model.FieldCity:  "City:",
}

// screen is the terminal rendering of the registry. The controller mutates it
// through the controller.View methods; RegistryModel reads it in View().
type screen struct {
	table table.Model
	rows  []controller.Row

	formVisible bool
	header      string
	inputs      []textinput.Model
	focusIndex  int
	invalid     error

	// answer is what Confirm returns; RegistryModel sets it from the y/N
	// prompt before dispatching a delete.
	answer       bool
	lastQuestion string
}

func newScreen() *screen {
	s := &screen{
		inputs: make([]textinput.Model, len(model.Fields)),
	}

	for i, field := range model.Fields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256
		t.Placeholder = placeholders[field]
		s.inputs[i] = t
	}

	s.table = table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(tableStyles()),
	)

	return s
}

func columnsFor(width int) []table.Column {
	// index column plus four data columns
	avail := width - 8 - 10
	if avail < 40 {
		avail = 40
	}

	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: avail * 3 / 10},
		{Title: "Email", Width: avail * 3 / 10},
		{Title: "Phone", Width: avail * 2 / 10},
		{Title: "City", Width: avail * 2 / 10},
	}
}

func (s *screen) ShowForm(header string) {
	s.header = header
	s.formVisible = true
	s.table.Blur()
	s.focus(0)
}

func (s *screen) HideForm() {
	s.formVisible = false
	s.table.Focus()
}

func (s *screen) PopulateForm(c model.Client) {
	for i, field := range model.Fields {
		s.inputs[i].SetValue(c.Get(field))
	}

	s.invalid = nil
}

func (s *screen) ClearForm() {
	for i := range s.inputs {
		s.inputs[i].Reset()
	}

	s.invalid = nil
	s.header = ""
}

func (s *screen) FormValues() model.Client {
	var c model.Client

	for i, field := range model.Fields {
		c.Set(field, strings.TrimSpace(s.inputs[i].Value()))
	}

	return c
}

func (s *screen) ReportInvalid(err error) {
	s.invalid = err
}

func (s *screen) RenderRows(rows []controller.Row) {
	// keep the cursor on the same record when it is still present
	selectedID := ""
	if cur := s.table.Cursor(); cur >= 0 && cur < len(s.rows) {
		selectedID = s.rows[cur].Client.ID
	}

	s.rows = rows

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = append(table.Row{strconv.Itoa(r.Index)}, r.Cells()...)
	}

	s.table.SetRows(tableRows)

	if selectedID != "" {
		for i, r := range rows {
			if r.Client.ID == selectedID {
				s.table.SetCursor(i)
				return
			}
		}
	}

	if n := len(rows); n > 0 && s.table.Cursor() >= n {
		s.table.SetCursor(n - 1)
	}
}

func (s *screen) Confirm(message string) bool {
	s.lastQuestion = message
	return s.answer
}

// selected returns the row under the table cursor.
func (s *screen) selected() (controller.Row, bool) {
	cur := s.table.Cursor()
	if cur < 0 || cur >= len(s.rows) {
		return controller.Row{}, false
	}

	return s.rows[cur], true
}

// focus moves input focus; index len(inputs) is the Save button.
func (s *screen) focus(index int) {
	n := len(s.inputs)

	switch {
	case index > n:
		index = 0
	case index < 0:
		index = n
	}

	s.focusIndex = index

	for i := range s.inputs {
		if i == index {
			s.inputs[i].Focus()
			s.inputs[i].PromptStyle = focusedStyle
			s.inputs[i].TextStyle = focusedStyle

			continue
		}

		s.inputs[i].Blur()
		s.inputs[i].PromptStyle = noStyle
		s.inputs[i].TextStyle = noStyle
	}
}

func (s *screen) onButton() bool {
	return s.focusIndex == len(s.inputs)
}
