package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Screen rows, top to bottom:
//
//	0 title, 1 rule, 2 form, 3 blank, list rows..., blank,
//	filter (when shown), clear-all (when shown), flash, help footer
const (
	layoutFormY   = 2
	layoutListTop = 4
)

type screenLayout struct {
	formY    int
	inputW   int
	submitX  int
	cancelX  int // -1 when hidden
	listTop  int
	listRows int
	filterY  int // -1 when hidden
	clearY   int // -1 when hidden
}

const filterLabel = "Filter "

func buttonWidth(label string) int { return xansi.StringWidth(label) + 2 }

func (m appModel) layout() screenLayout {
	chrome := m.ctrl.Chrome()
	l := screenLayout{
		formY:   layoutFormY,
		cancelX: -1,
		listTop: layoutListTop,
		filterY: -1,
		clearY:  -1,
	}

	buttons := 1 + buttonWidth(chrome.Submit.Label())
	if chrome.ShowCancel {
		buttons += 1 + buttonWidth("Cancel")
	}
	l.inputW = m.width - buttons
	if l.inputW < 10 {
		l.inputW = 10
	}
	l.submitX = l.inputW + 1
	if chrome.ShowCancel {
		l.cancelX = l.submitX + buttonWidth(chrome.Submit.Label()) + 1
	}

	footer := 3 // blank, flash, help
	if chrome.ShowFilter {
		footer++
	}
	if chrome.ShowClear {
		footer++
	}
	l.listRows = m.height - l.listTop - footer
	if l.listRows < 1 {
		l.listRows = 1
	}

	y := l.listTop + l.listRows + 1
	if chrome.ShowFilter {
		l.filterY = y
		y++
	}
	if chrome.ShowClear {
		l.clearY = y
	}
	return l
}

func (m appModel) View() string {
	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewModal())
	}

	lay := m.layout()
	chrome := m.ctrl.Chrome()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.viewTitle())
	lines = append(lines, styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 0))))
	lines = append(lines, m.viewForm(lay))
	lines = append(lines, "")
	lines = append(lines, m.viewRows(lay)...)
	lines = append(lines, "")
	if chrome.ShowFilter {
		lines = append(lines, m.viewFilter())
	}
	if chrome.ShowClear {
		lines = append(lines, styleButton(false).Render("Clear all")+styleMuted().Render("  C"))
	}
	lines = append(lines, styleMuted().Render(m.flash))
	lines = append(lines, m.viewHelp())

	return normalizePane(strings.Join(lines, "\n"), m.width, m.height)
}

func (m appModel) viewTitle() string {
	n := m.ctrl.Len()
	count := fmt.Sprintf("%d items", n)
	if n == 1 {
		count = "1 item"
	}
	if f := m.ctrl.Filter(); f != "" {
		count += fmt.Sprintf(", %d shown", len(m.ctrl.VisibleRows()))
	}
	return styleTitle().Render("listkeep") + "  " + styleMuted().Render(count)
}

func (m appModel) viewForm(lay screenLayout) string {
	chrome := m.ctrl.Chrome()
	parts := []string{
		renderInputLine(lay.inputW, m.input.View()),
		styleButton(m.focus == focusInput).Render(chrome.Submit.Label()),
	}
	if chrome.ShowCancel {
		parts = append(parts, styleButton(false).Render("Cancel"))
	}
	return strings.Join(parts, " ")
}

func (m appModel) viewRows(lay screenLayout) []string {
	out := make([]string, 0, lay.listRows)
	rows := m.ctrl.VisibleRows()
	switch {
	case m.ctrl.Len() == 0:
		out = append(out, styleMuted().Render("  Nothing here yet. Type an item and press enter."))
	case len(rows) == 0:
		out = append(out, styleMuted().Render("  No items match the filter."))
	default:
		out = append(out, strings.Split(m.rows.View(), "\n")...)
	}
	if len(out) > lay.listRows {
		out = out[:lay.listRows]
	}
	for len(out) < lay.listRows {
		out = append(out, "")
	}
	return out
}

func (m appModel) viewFilter() string {
	w := m.width - xansi.StringWidth(filterLabel)
	return styleMuted().Render(filterLabel) + renderInputLine(w, m.filter.View())
}

func (m appModel) viewHelp() string {
	var km help.KeyMap = inputHelp{km: m.keys}
	if m.focus == focusList {
		km = listHelp{km: m.keys}
	}
	return m.help.View(km)
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalNotice:
		return renderNoticeModal(m.width, m.modalText)
	case modalConfirmRemove:
		return renderConfirmModal(m.width, "Remove item", m.modalText, "Remove", "Cancel", m.confirmFocus)
	case modalConfirmClear:
		return renderConfirmModal(m.width, "Clear all", m.modalText, "Clear", "Cancel", m.confirmFocus)
	case modalHelp:
		return renderModalBox(m.width, "Help", renderMarkdown(helpMarkdown(m.keys), modalBodyWidth(m.width)))
	}
	return ""
}
