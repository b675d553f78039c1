package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNotice
	modalConfirmRemove
	modalConfirmClear
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

const (
	modalMaxWidth = 64
	modalMinWidth = 24
)

// modalWidth is the outer width of a modal for a terminal of the given width.
func modalWidth(termW int) int {
	w := termW - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// modalBodyWidth is the width available to content inside the modal padding.
func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 4
}

func renderModalBox(termW int, title string, content string) string {
	w := modalWidth(termW)
	head := lipgloss.NewStyle().
		Bold(true).
		Width(w-2).
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)
	body := lipgloss.NewStyle().
		Width(w-2).
		Padding(1, 1).
		Foreground(colorSurfaceFg).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	confirm := styleButton(focus == confirmFocusConfirm).Render(confirmLabel)
	cancel := styleButton(focus == confirmFocusCancel).Render(cancelLabel)
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n: answer   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// renderNoticeModal is the blocking notice shown for rejected input and storage errors.
func renderNoticeModal(width int, text string) string {
	bodyW := modalBodyWidth(width)
	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(text),
		"",
		styleButton(true).Render("OK"),
	}, "\n")
	return renderModalBox(width, "Notice", content)
}
