package listview

import "listkeep/internal/model"

// Row is the rendered form of one item. Label is the raw stored label; any
// decoration (remove control, edit marker) is drawn around it by the UI.
type Row struct {
	ItemID     string
	Label      string
	Hidden     bool
	EditTarget bool
}

// Renderer owns the rows and keeps them in the collection's order.
type Renderer struct {
	rows []Row
}

// RenderAll replaces every row with one row per item.
func (r *Renderer) RenderAll(items []model.Item) {
	r.rows = make([]Row, 0, len(items))
	for _, it := range items {
		r.rows = append(r.rows, Row{ItemID: it.ID, Label: it.Label})
	}
}

// RenderOne appends a row for it.
func (r *Renderer) RenderOne(it model.Item) {
	r.rows = append(r.rows, Row{ItemID: it.ID, Label: it.Label})
}

// RemoveRendered drops the row for id.
func (r *Renderer) RemoveRendered(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return true
}

func (r *Renderer) Len() int { return len(r.rows) }

// Rows returns a copy of all rows, hidden ones included.
func (r *Renderer) Rows() []Row {
	return append([]Row(nil), r.rows...)
}

// VisibleRows returns the rows not hidden by the filter.
func (r *Renderer) VisibleRows() []Row {
	out := make([]Row, 0, len(r.rows))
	for _, row := range r.rows {
		if !row.Hidden {
			out = append(out, row)
		}
	}
	return out
}

func (r *Renderer) Row(id string) (Row, bool) {
	if i := r.index(id); i >= 0 {
		return r.rows[i], true
	}
	return Row{}, false
}

// FlagEditTarget marks id as the edit target after clearing the flag everywhere.
func (r *Renderer) FlagEditTarget(id string) bool {
	r.ClearEditFlags()
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.rows[i].EditTarget = true
	return true
}

func (r *Renderer) ClearEditFlags() {
	for i := range r.rows {
		r.rows[i].EditTarget = false
	}
}

// EditTarget returns the flagged row, if any.
func (r *Renderer) EditTarget() (Row, bool) {
	for _, row := range r.rows {
		if row.EditTarget {
			return row, true
		}
	}
	return Row{}, false
}

func (r *Renderer) setVisibility(shown []bool) {
	for i := range r.rows {
		r.rows[i].Hidden = !shown[i]
	}
}

func (r *Renderer) labels() []string {
	out := make([]string, len(r.rows))
	for i, row := range r.rows {
		out[i] = row.Label
	}
	return out
}

func (r *Renderer) index(id string) int {
	for i, row := range r.rows {
		if row.ItemID == id {
			return i
		}
	}
	return -1
}
