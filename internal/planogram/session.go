package planogram

import (
	"sync"

	"github.com/google/uuid"
)

// placement is a (row, position) pair captured at session-open time.
type placement struct {
	RowNo    int
	Position int
}

// EditSession is a private draft of one shelf opened for interactive
// reordering. The draft is never shared: callers get clones. Original
// coordinates are recorded per product so a committed draft can be matched
// back against the canonical collection by where each item used to be.
type EditSession struct {
	ID         string
	BranchCode string
	ShelfCode  string

	mu        sync.Mutex
	draft     *ShelfCollection
	originals map[string]placement
	dirty     bool
	saving    bool
	closed    bool
}

func newEditSession(canonical *ShelfCollection) *EditSession {
	s := &EditSession{
		ID:         uuid.NewString(),
		BranchCode: canonical.BranchCode,
		ShelfCode:  canonical.ShelfCode,
		draft:      canonical.Clone(),
		originals:  make(map[string]placement, len(canonical.Items)),
	}
	for i := range canonical.Items {
		it := &canonical.Items[i]
		s.originals[it.ProductCode] = placement{RowNo: it.RowNo, Position: it.Position}
	}
	return s
}

// Move applies one drag result to the draft. The session turns dirty only
// when the move actually changed something; dropping an item back onto its
// own slot stays clean.
func (s *EditSession) Move(productCode string, toRow, toPos int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}
	if s.saving {
		return false, ErrSessionBusy
	}

	changed, err := s.draft.Move(productCode, toRow, toPos)
	if err != nil {
		return false, err
	}
	if changed {
		s.dirty = true
	}
	return changed, nil
}

// Dirty reports whether at least one effective move was applied.
func (s *EditSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Saving reports whether a commit is currently in flight.
func (s *EditSession) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Draft returns a copy of the current draft for rendering.
func (s *EditSession) Draft() *ShelfCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// beginSave flips the in-flight guard. Only one commit may run at a time,
// and only on a dirty, open session.
func (s *EditSession) beginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.saving {
		return ErrSessionBusy
	}
	if !s.dirty {
		return ErrSessionClean
	}
	s.saving = true
	return nil
}

// endSave clears the in-flight guard after a failed commit, leaving the
// draft intact so the user can retry without re-dragging.
func (s *EditSession) endSave() {
	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
}

// close marks the session finished (committed or cancelled).
func (s *EditSession) close() {
	s.mu.Lock()
	s.closed = true
	s.saving = false
	s.mu.Unlock()
}

// cancel discards the draft unless a save is in flight.
func (s *EditSession) cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.saving {
		return ErrSessionBusy
	}
	s.closed = true
	return nil
}

// layoutSnapshot builds the full-shelf commit payload from the draft.
func (s *EditSession) layoutSnapshot() []LayoutItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LayoutItem, 0, len(s.draft.Items))
	for i := range s.draft.Items {
		it := &s.draft.Items[i]
		items = append(items, LayoutItem{
			BranchCode:  it.BranchCode,
			ShelfCode:   it.ShelfCode,
			RowNo:       it.RowNo,
			Position:    it.Position,
			CodeProduct: it.ProductCode,
		})
	}
	return items
}

// original returns the (row, position) the product had at snapshot time.
func (s *EditSession) original(productCode string) (placement, bool) {
	p, ok := s.originals[productCode]
	return p, ok
}
