package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"listkeep/internal/listview"
	"listkeep/internal/watch"
)

// storageChangedMsg is delivered when the watcher sees storage change on disk.
type storageChangedMsg struct{}

func waitForStorageChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changed(); !ok {
			return nil
		}
		return storageChangedMsg{}
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForStorageChange(m.opts.Watcher))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncRows()
		return m, nil

	case storageChangedMsg:
		m.reload()
		return m, waitForStorageChange(m.opts.Watcher)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		m.flash = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.focus {
		case focusList:
			return m.updateList(msg)
		case focusFilter:
			return m.updateFilter(msg)
		default:
			return m.updateForm(msg)
		}
	}

	// Cursor blink and other input-internal messages.
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, m.keys.CancelEdit):
		m.cancelEdit()
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.openModal(modalHelp, "", "")
	case key.Matches(msg, m.keys.Up):
		m.rows.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.rows.CursorDown()
	case key.Matches(msg, m.keys.Edit):
		if r, ok := m.selectedRow(); ok {
			m.beginEdit(r.ItemID)
		}
	case key.Matches(msg, m.keys.Remove):
		if r, ok := m.selectedRow(); ok {
			m.askRemove(r)
		}
	case key.Matches(msg, m.keys.ClearAll):
		m.askClear()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Filter):
		if m.ctrl.Chrome().ShowFilter {
			m.setFocus(focusFilter)
		}
	case key.Matches(msg, m.keys.CancelEdit):
		m.cancelEdit()
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
	}
	return m, nil
}

func (m appModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if len(m.ctrl.VisibleRows()) > 0 {
			m.setFocus(focusList)
		}
		return m, nil
	case key.Matches(msg, m.keys.CancelEdit):
		m.filter.SetValue("")
		m.ctrl.SetFilter("")
		m.syncRows()
		m.setFocus(focusList)
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.ctrl.SetFilter(m.filter.Value())
	m.syncRows()
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNotice:
		switch msg.String() {
		case "enter", "esc", " ":
			m.closeModal()
		}
	case modalHelp:
		switch msg.String() {
		case "enter", "esc", "?", "q":
			m.closeModal()
		}
	case modalConfirmRemove, modalConfirmClear:
		switch {
		case key.Matches(msg, m.keys.ConfirmYes):
			m.confirm()
		case key.Matches(msg, m.keys.ConfirmNo):
			m.closeModal()
		case msg.String() == "enter":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirm()
			} else {
				m.closeModal()
			}
		case msg.String() == "tab", msg.String() == "shift+tab",
			msg.String() == "left", msg.String() == "right",
			msg.String() == "h", msg.String() == "l":
			m.confirmFocus = m.confirmFocus.toggle()
		}
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.opts.Mouse || m.modal != modalNone {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.rows.CursorUp()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.rows.CursorDown()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	m.flash = ""
	lay := m.layout()
	switch {
	case msg.Y == lay.formY:
		switch {
		case lay.cancelX >= 0 && msg.X >= lay.cancelX:
			m.cancelEdit()
		case msg.X >= lay.submitX && (lay.cancelX < 0 || msg.X < lay.cancelX-1):
			m.submit()
		default:
			m.setFocus(focusInput)
		}

	case msg.Y >= lay.listTop && msg.Y < lay.listTop+lay.listRows:
		start, end := m.rows.Paginator.GetSliceBounds(len(m.rows.Items()))
		idx := start + msg.Y - lay.listTop
		if idx >= end {
			return m, nil
		}
		m.rows.Select(idx)
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		if rowHitRemove(msg.X, m.width) {
			m.askRemove(r)
		} else {
			m.beginEdit(r.ItemID)
		}

	case lay.filterY >= 0 && msg.Y == lay.filterY:
		m.setFocus(focusFilter)

	case lay.clearY >= 0 && msg.Y == lay.clearY:
		m.askClear()
	}
	return m, nil
}

func (m *appModel) submit() {
	editing := m.ctrl.Session().Active()
	m.ctrl.SetInput(m.input.Value())
	it, err := m.ctrl.Submit(m.ctx)
	if err != nil {
		m.openModal(modalNotice, listview.NoticeText(err), "")
		return
	}
	m.syncInputs()
	verb := "Added "
	if editing {
		verb = "Updated "
	}
	m.flash = verb + it.Label
	if !m.selectItem(it.ID) {
		m.flash += " (hidden by filter)"
	}
}

func (m *appModel) cancelEdit() {
	if !m.ctrl.Session().Active() {
		return
	}
	m.ctrl.CancelEdit()
	m.syncInputs()
}

func (m *appModel) beginEdit(id string) {
	if err := m.ctrl.BeginEdit(id); err != nil {
		m.openModal(modalNotice, listview.NoticeText(err), "")
		return
	}
	m.syncInputs()
	m.setFocus(focusInput)
}

func (m *appModel) askRemove(r listview.Row) {
	m.openModal(modalConfirmRemove, "Remove “"+r.Label+"”?", r.ItemID)
}

func (m *appModel) askClear() {
	if !m.ctrl.Chrome().ShowClear {
		return
	}
	m.openModal(modalConfirmClear, "Remove all items? This cannot be undone.", "")
}

// confirm runs the destructive action the open confirm modal asked about.
func (m *appModel) confirm() {
	kind, id := m.modal, m.modalForID
	m.closeModal()

	switch kind {
	case modalConfirmRemove:
		it, err := m.ctrl.Remove(m.ctx, id)
		if err != nil {
			m.openModal(modalNotice, listview.NoticeText(err), "")
			return
		}
		m.flash = "Removed " + it.Label
	case modalConfirmClear:
		if err := m.ctrl.ClearAll(m.ctx); err != nil {
			m.openModal(modalNotice, listview.NoticeText(err), "")
			return
		}
		m.flash = "Cleared all items"
	}
	m.syncInputs()
}

func (m *appModel) copySelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	if err := copyToClipboard(r.Label); err != nil {
		m.log.Warn("clipboard copy failed", "err", err)
		m.flash = "Copy failed: " + err.Error()
		return
	}
	m.flash = "Copied " + r.Label
}

// reload picks up changes written by another process. Text typed into the add
// form survives; an edit in progress is abandoned since its target may be gone.
func (m *appModel) reload() {
	typed := ""
	if !m.ctrl.Session().Active() {
		typed = m.input.Value()
	}
	if !m.ctrl.Reload(m.ctx) {
		return
	}
	m.ctrl.SetInput(typed)
	m.syncInputs()
	if m.modal == modalConfirmRemove {
		if _, ok := m.ctrl.Row(m.modalForID); !ok {
			m.closeModal()
		}
	}
	m.flash = "Reloaded from storage"
}

func (m *appModel) openModal(kind modalKind, text, forID string) {
	m.modal = kind
	m.modalText = text
	m.modalForID = forID
	m.confirmFocus = confirmFocusConfirm
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalText = ""
	m.modalForID = ""
}

// syncInputs copies the controller's rows, form and filter text into the widgets
// and moves focus off controls that are no longer shown.
func (m *appModel) syncInputs() {
	m.syncRows()
	m.input.SetValue(m.ctrl.Input())
	m.input.CursorEnd()
	m.filter.SetValue(m.ctrl.Filter())
	m.filter.CursorEnd()

	switch {
	case m.focus == focusFilter && !m.ctrl.Chrome().ShowFilter:
		m.setFocus(focusInput)
	case m.focus == focusList && len(m.ctrl.VisibleRows()) == 0:
		m.setFocus(focusInput)
	}
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	m.delegate.active = f == focusList
	m.rows.SetDelegate(m.delegate)
	m.input.Blur()
	m.filter.Blur()
	switch f {
	case focusInput:
		m.input.Focus()
	case focusFilter:
		m.filter.Focus()
	}
}

func (m *appModel) focusOrder() []focusArea {
	order := []focusArea{focusInput}
	if len(m.ctrl.VisibleRows()) > 0 {
		order = append(order, focusList)
	}
	if m.ctrl.Chrome().ShowFilter {
		order = append(order, focusFilter)
	}
	return order
}

func (m *appModel) cycleFocus(dir int) {
	order := m.focusOrder()
	cur := 0
	for i, f := range order {
		if f == m.focus {
			cur = i
			break
		}
	}
	next := (cur + dir + len(order)) % len(order)
	m.setFocus(order[next])
}

func (m *appModel) selectedRow() (listview.Row, bool) {
	it, ok := m.rows.SelectedItem().(rowItem)
	if !ok {
		return listview.Row{}, false
	}
	return it.Row, true
}

// selectItem moves the selection to the row for id and reports whether that row
// is visible.
func (m *appModel) selectItem(id string) bool {
	for i, it := range m.rows.Items() {
		if r, ok := it.(rowItem); ok && r.ItemID == id {
			m.rows.Select(i)
			return true
		}
	}
	return false
}

// syncRows refills the list from the controller and sizes it to the space the
// layout leaves. The selection stays on the same index, clamped to the rows.
func (m *appModel) syncRows() {
	idx := m.rows.Index()
	m.rows.SetItems(rowListItems(m.ctrl.VisibleRows()))
	m.rows.SetSize(m.width, m.layout().listRows)
	if n := len(m.rows.Items()); idx >= n {
		idx = n - 1
	}
	m.rows.Select(max(idx, 0))
}
