package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"listkeep/internal/listview"
)

// A painted row is: cursor(2) marker(2) label ... space remove-glyph.
// Clicking the remove glyph asks to remove; clicking anywhere else edits.
const rowGutter = 4

type rowStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	marker   lipgloss.Style
	remove   lipgloss.Style
}

func newRowStyles() rowStyles {
	return rowStyles{
		normal:   lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
		marker:   lipgloss.NewStyle().Foreground(colorEditMarker).Bold(true),
		remove:   lipgloss.NewStyle().Foreground(colorDanger),
	}
}

// rowItem adapts a listview.Row to the list widget.
type rowItem struct{ listview.Row }

func (r rowItem) FilterValue() string { return r.Label }

func rowListItems(rows []listview.Row) []list.Item {
	out := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowItem{Row: r})
	}
	return out
}

// rowDelegate paints one row per line. The cursor is only drawn while the list
// has focus.
type rowDelegate struct {
	st     rowStyles
	active bool
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(d.st, it.Row, m.Width(), d.active && index == m.Index()))
}

func newRowList(d rowDelegate) list.Model {
	l := list.New(nil, d, 0, 0)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	return l
}

// removeHitWidth is how many columns at the right edge of a row belong to the
// remove affordance.
func removeHitWidth() int {
	return xansi.StringWidth(glyphRemove()) + 1
}

func renderRow(st rowStyles, r listview.Row, width int, selected bool) string {
	if width < rowGutter+removeHitWidth()+1 {
		return fitLine(r.Label, width)
	}

	cursor := "  "
	if selected {
		cursor = glyphCursor() + " "
	}
	marker := "  "
	if r.EditTarget {
		marker = st.marker.Render(glyphEditing()) + " "
	}

	labelW := width - rowGutter - removeHitWidth()
	label := r.Label
	if xansi.StringWidth(label) > labelW {
		label = xansi.Truncate(label, labelW, glyphEllipsis())
	}
	if pad := labelW - xansi.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}

	body := cursor + marker + label + " "
	if selected {
		body = st.selected.Render(body)
	} else {
		body = st.normal.Render(body)
	}
	return fitLine(body+st.remove.Render(glyphRemove()), width)
}

// rowHitRemove reports whether a click at column x on a row of the given width lands
// on the remove affordance.
func rowHitRemove(x, width int) bool {
	return x >= width-removeHitWidth()
}
