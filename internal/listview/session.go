package listview

import "listkeep/internal/model"

// EditSession is the form's add/edit state. The zero value is Adding.
// Transitions return a new value.
type EditSession struct {
	targetID string
}

func (s EditSession) Active() bool { return s.targetID != "" }

// Target is the ID being edited, or "" while adding.
func (s EditSession) Target() string { return s.targetID }

func (s EditSession) Mode() model.Mode {
	if s.Active() {
		return model.ModeEditing
	}
	return model.ModeAdding
}

// Begin targets id, replacing any previous target.
func (s EditSession) Begin(id string) EditSession { return EditSession{targetID: id} }

func (s EditSession) End() EditSession { return EditSession{} }
