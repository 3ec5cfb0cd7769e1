package ui

import "github.com/piwi3910/ScatterBoard/internal/model"

const defaultMaxDepth = 50

// Snapshot captures one layout shown in the preview.
type Snapshot struct {
	Fixture string
	Result  model.LayoutResult
	Label   string // e.g. "Reshuffle", "Seed 42"
}

// History keeps the layouts shown so far so the user can step back to an
// earlier shuffle and forward again.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves the layout being replaced and clears the redo stack.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the previous layout and pushes current onto the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the next layout and pushes current onto the undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// Seeds returns the seeds on the undo stack, oldest first.
func (h *History) Seeds() []uint64 {
	seeds := make([]uint64, len(h.undoStack))
	for i, s := range h.undoStack {
		seeds[i] = s.Result.Seed
	}
	return seeds
}

// copyResult returns a copy of r that shares no slices with it.
func copyResult(r model.LayoutResult) model.LayoutResult {
	cp := r
	if r.Obstacles != nil {
		cp.Obstacles = append([]model.Rect(nil), r.Obstacles...)
	}
	if r.Widgets != nil {
		cp.Widgets = make([]model.PlacedWidget, len(r.Widgets))
		for i, w := range r.Widgets {
			cp.Widgets[i] = w
			if w.Companion != nil {
				c := *w.Companion
				cp.Widgets[i].Companion = &c
			}
		}
	}
	return cp
}

// MakeSnapshot creates a snapshot of a layout with a label.
func MakeSnapshot(fixture string, result model.LayoutResult, label string) Snapshot {
	return Snapshot{
		Fixture: fixture,
		Result:  copyResult(result),
		Label:   label,
	}
}
