package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/inovacc/clientdb/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var _ controller.View = (*promptView)(nil)

// promptView is the line-oriented controller.View used by the subcommands.
// The form lives in memory; Confirm asks on the command's input stream.
type promptView struct {
	out         io.Writer
	in          *bufio.Reader
	interactive bool
	assumeYes   bool

	header  string
	visible bool
	form    model.Client
	rows    []controller.Row
	invalid error
	refused bool
}

func newPromptView(cmd *cobra.Command, assumeYes bool) *promptView {
	return &promptView{
		out:         cmd.OutOrStdout(),
		in:          bufio.NewReader(cmd.InOrStdin()),
		interactive: isInteractive(cmd.InOrStdin()),
		assumeYes:   assumeYes,
	}
}

// isInteractive reports whether r can answer prompts. Non-file readers
// (tests, pipes set up by callers) count as interactive.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}

	return term.IsTerminal(int(f.Fd()))
}

func (v *promptView) ShowForm(header string) {
	v.header = header
	v.visible = true
}

func (v *promptView) HideForm() {
	v.visible = false
}

func (v *promptView) PopulateForm(c model.Client) {
	v.form = c
}

func (v *promptView) ClearForm() {
	v.form = model.Client{}
	v.invalid = nil
}

func (v *promptView) FormValues() model.Client {
	return v.form
}

func (v *promptView) ReportInvalid(err error) {
	v.invalid = err
}

func (v *promptView) RenderRows(rows []controller.Row) {
	v.rows = rows
}

func (v *promptView) Confirm(message string) bool {
	if v.assumeYes {
		return true
	}

	if !v.interactive {
		v.refused = true
		return false
	}

	return promptConfirm(v.out, v.in, message+" [y/N]: ")
}

// setFields overlays the non-blank values, trimmed, onto the form.
func (v *promptView) setFields(values map[string]string) {
	for field, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			v.form.Set(field, value)
		}
	}
}

// fillMissing asks for every empty field when a terminal is attached.
func (v *promptView) fillMissing() {
	if !v.interactive {
		return
	}

	for _, field := range model.Fields {
		if strings.TrimSpace(v.form.Get(field)) != "" {
			continue
		}

		_, _ = fmt.Fprintf(v.out, "%s: ", titleCase(field))

		line, _ := v.in.ReadString('\n')
		v.form.Set(field, strings.TrimSpace(line))
	}
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this client? [y/N]: ")
func promptConfirm(out io.Writer, in *bufio.Reader, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	response, _ := in.ReadString('\n')
	response = strings.TrimSpace(response)

	return response == "y" || response == "Y" || strings.EqualFold(response, "yes")
}

// resolveIndex turns a positional argument or an --id value into an index.
func resolveIndex(ctx context.Context, s store.Store, args []string, id string) (int, error) {
	if id != "" {
		clients, err := s.Read(ctx)
		if err != nil {
			return 0, err
		}

		for i, c := range clients {
			if c.ID == id {
				return i, nil
			}
		}

		return 0, fmt.Errorf("no client with id %s", id)
	}

	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one index argument or --id")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", args[0], err)
	}

	return index, nil
}

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable draws rows as a bordered table.
func renderTable(rows []controller.Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "NAME", "EMAIL", "PHONE", "CITY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}

			return cellStyle
		})

	for _, r := range rows {
		t.Row(append([]string{strconv.Itoa(r.Index)}, r.Cells()...)...)
	}

	return t.Render()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
