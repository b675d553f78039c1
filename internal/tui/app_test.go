package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"listkeep/internal/items"
	"listkeep/internal/listview"
	"listkeep/internal/model"
	"listkeep/internal/storage"
)

func newTestModel(t *testing.T, labels ...string) (appModel, *storage.Adapter) {
	t.Helper()
	ctx := context.Background()
	a := storage.NewAdapter(storage.NewMemory(), storage.DefaultKey, nil)
	if len(labels) > 0 {
		if err := a.Save(ctx, labels); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	ctrl := listview.New(items.Open(ctx, a), listview.DefaultOptions())
	m := newAppModel(ctx, ctrl, Options{Mouse: true})
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24}), a
}

func send(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", mm)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = send(t, m, keyRunes(string(r)))
	}
	return m
}

func stored(t *testing.T, a *storage.Adapter) []string {
	t.Helper()
	got, err := a.LoadStrict(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return got
}

func visibleLabels(m appModel) []string {
	var out []string
	for _, r := range m.ctrl.VisibleRows() {
		out = append(out, r.Label)
	}
	return out
}

func TestApp_TypeAndEnterAddsItem(t *testing.T) {
	m, a := newTestModel(t)

	m = typeText(t, m, "Milk")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := stored(t, a); !reflect.DeepEqual(got, []string{"Milk"}) {
		t.Fatalf("expected [Milk] stored; got %v", got)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared; got %q", m.input.Value())
	}
	if m.flash != "Added Milk" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
	if !m.ctrl.Chrome().ShowClear || !m.ctrl.Chrome().ShowFilter {
		t.Fatalf("expected aux controls visible once an item exists")
	}
	if !strings.Contains(m.View(), "Milk") {
		t.Fatalf("expected row in view")
	}
}

func TestApp_RejectedInputShowsNotice(t *testing.T) {
	cases := []struct {
		name  string
		typed string
		want  string
	}{
		{name: "duplicate ignoring case", typed: "milk", want: "That item already exists!"},
		{name: "empty", typed: "", want: "Please add an item"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, a := newTestModel(t, "Milk")
			m = typeText(t, m, tc.typed)
			m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if m.modal != modalNotice || m.modalText != tc.want {
				t.Fatalf("expected notice %q; got modal=%v text=%q", tc.want, m.modal, m.modalText)
			}
			if got := stored(t, a); !reflect.DeepEqual(got, []string{"Milk"}) {
				t.Fatalf("expected storage unchanged; got %v", got)
			}
			if m.input.Value() != tc.typed {
				t.Fatalf("expected input kept; got %q", m.input.Value())
			}
			if !strings.Contains(m.View(), tc.want) {
				t.Fatalf("expected notice in view")
			}

			m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if m.modal != modalNone {
				t.Fatalf("expected notice dismissed")
			}
		})
	}
}

func TestApp_EditFromListReplacesItem(t *testing.T) {
	m, a := newTestModel(t, "Bread")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("expected list focus; got %v", m.focus)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusInput || m.input.Value() != "Bread" {
		t.Fatalf("expected edit to load the label into the focused input; focus=%v input=%q", m.focus, m.input.Value())
	}
	if m.ctrl.Mode() != model.ModeEditing || m.ctrl.Chrome().Submit != model.AffordanceUpdate {
		t.Fatalf("expected editing mode with update affordance")
	}
	if !strings.Contains(m.View(), "Update Item") || !strings.Contains(m.View(), "Cancel") {
		t.Fatalf("expected update and cancel affordances in view")
	}

	m.input.SetValue("Toast")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := stored(t, a); !reflect.DeepEqual(got, []string{"Toast"}) {
		t.Fatalf("expected [Toast]; got %v", got)
	}
	if m.ctrl.Mode() != model.ModeAdding || m.ctrl.Chrome().ShowCancel {
		t.Fatalf("expected adding mode after confirm")
	}
	if m.flash != "Updated Toast" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
}

func TestApp_EscCancelsEdit(t *testing.T) {
	m, a := newTestModel(t, "Bread")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("e"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.ctrl.Session().Active() || m.input.Value() != "" {
		t.Fatalf("expected edit cancelled and input cleared")
	}
	if got := stored(t, a); !reflect.DeepEqual(got, []string{"Bread"}) {
		t.Fatalf("expected storage untouched; got %v", got)
	}
}

func TestApp_RemoveAsksForConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		m, a := newTestModel(t, "Milk", "Eggs")
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = send(t, m, keyRunes("d"))
		if m.modal != modalConfirmRemove {
			t.Fatalf("expected confirm modal; got %v", m.modal)
		}
		m = send(t, m, keyRunes("n"))
		if m.modal != modalNone {
			t.Fatalf("expected modal closed")
		}
		if got := stored(t, a); !reflect.DeepEqual(got, []string{"Milk", "Eggs"}) {
			t.Fatalf("expected unchanged; got %v", got)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		m, a := newTestModel(t, "Milk", "Eggs")
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = send(t, m, keyRunes("d"))
		m = send(t, m, keyRunes("y"))
		if got := stored(t, a); !reflect.DeepEqual(got, []string{"Eggs"}) {
			t.Fatalf("expected [Eggs]; got %v", got)
		}
		if m.ctrl.Len() != 1 {
			t.Fatalf("expected one row; got %d", m.ctrl.Len())
		}
	})

	t.Run("tab moves focus to cancel", func(t *testing.T) {
		m, a := newTestModel(t, "Milk")
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = send(t, m, keyRunes("d"))
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if got := stored(t, a); !reflect.DeepEqual(got, []string{"Milk"}) {
			t.Fatalf("expected unchanged; got %v", got)
		}
	})
}

func TestApp_ClearAll(t *testing.T) {
	m, a := newTestModel(t, "Milk", "Eggs")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("C"))
	if m.modal != modalConfirmClear {
		t.Fatalf("expected clear confirm; got %v", m.modal)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := stored(t, a); len(got) != 0 {
		t.Fatalf("expected empty storage; got %v", got)
	}
	if m.ctrl.Chrome().ShowClear || m.ctrl.Chrome().ShowFilter {
		t.Fatalf("expected aux controls hidden")
	}
	if m.focus != focusInput {
		t.Fatalf("expected focus back on input once the list is empty; got %v", m.focus)
	}
	v := m.View()
	if !strings.Contains(v, "Nothing here yet") || strings.Contains(v, "Clear all") {
		t.Fatalf("unexpected empty view:\n%s", v)
	}
}

func TestApp_FilterHidesNonMatchingRows(t *testing.T) {
	m, a := newTestModel(t, "Milk", "Bread", "Butter")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("/"))
	if m.focus != focusFilter {
		t.Fatalf("expected filter focus; got %v", m.focus)
	}
	m = typeText(t, m, "b")

	if got := visibleLabels(m); !reflect.DeepEqual(got, []string{"Bread", "Butter"}) {
		t.Fatalf("expected Bread, Butter visible; got %v", got)
	}
	if got := stored(t, a); len(got) != 3 {
		t.Fatalf("expected storage untouched; got %v", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctrl.Filter() != "" || len(m.ctrl.VisibleRows()) != 3 {
		t.Fatalf("expected esc to clear the filter")
	}
}

func TestApp_MouseClicks(t *testing.T) {
	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	}

	t.Run("row body edits", func(t *testing.T) {
		m, _ := newTestModel(t, "Milk", "Eggs")
		m = send(t, m, click(5, layoutListTop+1))
		if m.ctrl.Session().Target() == "" || m.input.Value() != "Eggs" {
			t.Fatalf("expected edit of Eggs; input=%q", m.input.Value())
		}
		r, _ := m.ctrl.Row(m.ctrl.Session().Target())
		if !r.EditTarget {
			t.Fatalf("expected row flagged as edit target")
		}
	})

	t.Run("remove glyph asks to remove", func(t *testing.T) {
		m, a := newTestModel(t, "Milk", "Eggs")
		m = send(t, m, click(m.width-1, layoutListTop))
		if m.modal != modalConfirmRemove {
			t.Fatalf("expected confirm modal; got %v", m.modal)
		}
		m = send(t, m, keyRunes("y"))
		if got := stored(t, a); !reflect.DeepEqual(got, []string{"Eggs"}) {
			t.Fatalf("expected [Eggs]; got %v", got)
		}
	})

	t.Run("clear line asks to clear", func(t *testing.T) {
		m, _ := newTestModel(t, "Milk")
		m = send(t, m, click(2, m.layout().clearY))
		if m.modal != modalConfirmClear {
			t.Fatalf("expected clear confirm; got %v", m.modal)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		m, _ := newTestModel(t, "Milk")
		m.opts.Mouse = false
		m = send(t, m, click(5, layoutListTop))
		if m.ctrl.Session().Active() {
			t.Fatalf("expected mouse ignored when disabled")
		}
	})
}

func TestApp_CopySelected(t *testing.T) {
	var got string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(s string) error { got = s; return nil }

	m, _ := newTestModel(t, "Milk", "Eggs")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("j"))
	m = send(t, m, keyRunes("y"))
	if got != "Eggs" {
		t.Fatalf("expected Eggs copied; got %q", got)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, keyRunes("y"))
	if !strings.HasPrefix(m.flash, "Copy failed") {
		t.Fatalf("expected copy failure flash; got %q", m.flash)
	}
}

func TestApp_StorageChangeReloadsAndKeepsTypedText(t *testing.T) {
	m, a := newTestModel(t, "Milk")
	m = typeText(t, m, "Egg")

	if err := a.Save(context.Background(), []string{"Milk", "Jam"}); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, storageChangedMsg{})

	if got := visibleLabels(m); !reflect.DeepEqual(got, []string{"Milk", "Jam"}) {
		t.Fatalf("expected reloaded rows; got %v", got)
	}
	if m.input.Value() != "Egg" {
		t.Fatalf("expected typed text kept; got %q", m.input.Value())
	}
	if m.flash != "Reloaded from storage" {
		t.Fatalf("unexpected flash %q", m.flash)
	}

	// Unchanged storage is a no-op.
	m.flash = ""
	m = send(t, m, storageChangedMsg{})
	if m.flash != "" {
		t.Fatalf("expected no reload for unchanged storage")
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, "Milk")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("?"))
	if m.modal != modalHelp {
		t.Fatalf("expected help modal; got %v", m.modal)
	}
	if !strings.Contains(m.View(), "Help") {
		t.Fatalf("expected help title in view")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone {
		t.Fatalf("expected help closed")
	}
}

func TestApp_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t, "Milk")

	// q is text while typing.
	m = send(t, m, keyRunes("q"))
	if m.input.Value() != "q" {
		t.Fatalf("expected q typed into input; got %q", m.input.Value())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestApp_ViewFitsWindow(t *testing.T) {
	labels := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		labels = append(labels, strings.Repeat("x", i+1))
	}
	m, _ := newTestModel(t, labels...)
	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines; got %d", len(lines))
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < 39; i++ {
		m = send(t, m, keyRunes("j"))
	}
	if m.rows.Index() != 39 {
		t.Fatalf("expected selection on last row; got %d", m.rows.Index())
	}
	start, end := m.rows.Paginator.GetSliceBounds(len(m.rows.Items()))
	if start == 0 || m.rows.Index() < start || m.rows.Index() >= end {
		t.Fatalf("expected list paged to the selection; bounds=[%d,%d)", start, end)
	}
	if r, ok := m.selectedRow(); !ok || len(r.Label) != 40 {
		t.Fatalf("expected the 40-char row selected; got %q", r.Label)
	}

	// A click on the first painted row lands on the first row of the current page.
	m = send(t, m, tea.MouseMsg{X: 5, Y: layoutListTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.input.Value() != strings.Repeat("x", start+1) {
		t.Fatalf("expected edit of row %d; input=%q", start, m.input.Value())
	}
}

func TestApp_RowsFollowMutations(t *testing.T) {
	m, _ := newTestModel(t, "Milk", "Eggs", "Bread")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("j"))
	m = send(t, m, keyRunes("j"))
	m = send(t, m, keyRunes("d"))
	m = send(t, m, keyRunes("y"))

	if len(m.rows.Items()) != 2 {
		t.Fatalf("expected two list rows; got %d", len(m.rows.Items()))
	}
	if r, ok := m.selectedRow(); !ok || r.Label != "Eggs" {
		t.Fatalf("expected selection clamped to Eggs; got %q", r.Label)
	}

	m = send(t, m, keyRunes("e"))
	it, _ := m.rows.SelectedItem().(rowItem)
	if !it.EditTarget {
		t.Fatalf("expected list row flagged as edit target")
	}
}

func TestApp_AddHiddenByFilterSaysSo(t *testing.T) {
	m, a := newTestModel(t, "Milk", "Bread")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyRunes("/"))
	m = typeText(t, m, "br")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusInput {
		t.Fatalf("expected input focus; got %v", m.focus)
	}

	m = typeText(t, m, "Jam")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := stored(t, a); !reflect.DeepEqual(got, []string{"Milk", "Bread", "Jam"}) {
		t.Fatalf("expected Jam stored; got %v", got)
	}
	if m.flash != "Added Jam (hidden by filter)" {
		t.Fatalf("unexpected flash %q", m.flash)
	}

	m = typeText(t, m, "Brie")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.flash != "Added Brie" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
	if r, ok := m.selectedRow(); !ok || r.Label != "Brie" {
		t.Fatalf("expected new visible row selected; got %q", r.Label)
	}
}
