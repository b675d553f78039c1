package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"listkeep/internal/listview"
	"listkeep/internal/watch"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
	focusFilter
)

// Options configures the TUI.
type Options struct {
	// Watcher, when set, triggers a reload whenever storage changes on disk.
	Watcher   *watch.Watcher
	Mouse     bool
	Glyphs    string
	CharLimit int
	Log       *slog.Logger
}

type appModel struct {
	ctx  context.Context
	ctrl *listview.Controller
	opts Options
	log  *slog.Logger

	width  int
	height int

	keys keyMap
	help help.Model

	focus  focusArea
	input  textinput.Model
	filter textinput.Model

	// rows mirrors the controller's VisibleRows; filtering stays with the
	// controller.
	rows     list.Model
	delegate rowDelegate

	modal        modalKind
	modalText    string
	modalForID   string
	confirmFocus confirmModalFocus

	// flash is a one-line status shown until the next key press.
	flash string
}

func newAppModel(ctx context.Context, ctrl *listview.Controller, opts Options) appModel {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Add an item"
	if opts.CharLimit > 0 {
		in.CharLimit = opts.CharLimit
	}
	in.Focus()

	flt := textinput.New()
	flt.Prompt = ""
	flt.Placeholder = "Filter"

	d := rowDelegate{st: newRowStyles()}
	m := appModel{
		ctx:      ctx,
		ctrl:     ctrl,
		opts:     opts,
		log:      log,
		width:    80,
		height:   24,
		keys:     defaultKeyMap(),
		help:     help.New(),
		focus:    focusInput,
		input:    in,
		filter:   flt,
		rows:     newRowList(d),
		delegate: d,
	}
	m.syncRows()
	return m
}
