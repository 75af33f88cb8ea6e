// Package inspect provides the two edit surfaces the CLI drives a parameter
// set through: a read-only terminal panel and a scripted editor.
package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/showreel/internal/params"
)

// Theme defines the panel colors.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Value   lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Value:   lipgloss.Color("#e6edf3"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Name   lipgloss.Style
	Value  lipgloss.Style
	Kind   lipgloss.Style
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Name:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Value:  lipgloss.NewStyle().Foreground(t.Value),
		Kind:   lipgloss.NewStyle().Foreground(t.Dim),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1),
	}
}

// Row is one parameter as the panel shows it.
type Row struct {
	Name  string
	Kind  params.Kind
	Value string
	Range string
}

// Panel is an Editor that records every widget it is shown instead of
// changing anything.
type Panel struct {
	Styles Styles
	rows   []Row
}

// NewPanel returns a panel with the default theme.
func NewPanel() *Panel {
	return &Panel{Styles: NewStyles(DefaultTheme)}
}

func (p *Panel) DragVec3(name string, v *params.Vec3) {
	p.rows = append(p.rows, Row{Name: name, Kind: params.KindVec3, Value: formatVec(v, "%g")})
}

func (p *Panel) ColorEdit3(name string, v *params.Vec3) {
	p.rows = append(p.rows, Row{Name: name, Kind: params.KindColor3, Value: formatVec(v, "%.3f")})
}

func (p *Panel) Checkbox(name string, v *bool) {
	mark := "[ ]"
	if *v {
		mark = "[x]"
	}
	p.rows = append(p.rows, Row{Name: name, Kind: params.KindBool, Value: mark})
}

func (p *Panel) DragFloat(name string, v *float64, step, min, max float64, format string) {
	if format == "" {
		format = "%.3f"
	}
	row := Row{Name: name, Kind: params.KindFloat, Value: fmt.Sprintf(format, *v)}
	if max > min {
		row.Range = fmt.Sprintf("%g..%g step %g", min, max, step)
	} else {
		row.Range = fmt.Sprintf("step %g", step)
	}
	p.rows = append(p.rows, row)
}

// Rows returns what has been recorded, in edit order.
func (p *Panel) Rows() []Row {
	return p.rows
}

// Render draws the recorded rows under title inside a rounded border.
func (p *Panel) Render(title, status string) string {
	nameW, valueW := 0, 0
	for _, r := range p.rows {
		nameW = max(nameW, len(r.Name))
		valueW = max(valueW, len(r.Value))
	}

	lines := []string{p.Styles.Title.Render(title) + " " + p.Styles.Kind.Render("["+status+"]"), ""}
	if len(p.rows) == 0 {
		lines = append(lines, p.Styles.Kind.Render("no parameters"))
	}
	for _, r := range p.rows {
		line := p.Styles.Name.Render(pad(r.Name, nameW)) + "  " +
			p.Styles.Value.Render(pad(r.Value, valueW)) + "  " +
			p.Styles.Kind.Render(strings.TrimSpace(r.Kind.String()+" "+r.Range))
		lines = append(lines, line)
	}
	return p.Styles.Border.Render(strings.Join(lines, "\n"))
}

// Describe renders a set's panel in one call.
func Describe(title string, set *params.Set) string {
	p := NewPanel()
	set.Edit(p)
	return p.Render(title, fmt.Sprintf("%d parameters", set.Len()))
}

func formatVec(v *params.Vec3, format string) string {
	parts := make([]string, 3)
	for i := range v {
		parts[i] = fmt.Sprintf(format, v[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
