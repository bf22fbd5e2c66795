package planogram

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/xelth-com/planogo/internal/models"
)

// Notifier is told about committed layout changes so interested listeners
// (e.g. other terminals viewing the same branch) can refresh. May be nil.
type Notifier interface {
	NotifyShelfChanged(branchCode, shelfCode, event string)
}

// AddRequest describes one direct insert into the canonical collection.
// Position 0 asks the gap-fill allocator for the smallest free slot; a
// positive value is used as supplied, even if it went stale since the caller
// computed it (dialog-open time vs. submit time).
type AddRequest struct {
	ProductCode string  `json:"codeProduct"`
	Barcode     string  `json:"barcode"`
	Name        string  `json:"nameProduct"`
	Brand       string  `json:"nameBrand"`
	SalesPrice  float64 `json:"salesPriceIncVAT"`
	ShelfLife   int     `json:"shelfLife"`
	RowNo       int     `json:"rowNo"`
	Position    int     `json:"position,omitempty"`
}

// Service ties the canonical store, the persistence backend and the edit
// sessions together. All mutations of one shelf are serialized; shelves are
// independent resources.
type Service struct {
	store       *Store
	loader      CollectionLoader
	persistence PersistenceService
	notifier    Notifier

	mu       sync.Mutex
	sessions map[string]*EditSession
	byShelf  map[shelfKey]string // open session per shelf
}

// NewService creates the planogram service. notifier may be nil.
func NewService(store *Store, loader CollectionLoader, persistence PersistenceService, notifier Notifier) *Service {
	return &Service{
		store:       store,
		loader:      loader,
		persistence: persistence,
		notifier:    notifier,
		sessions:    make(map[string]*EditSession),
		byShelf:     make(map[shelfKey]string),
	}
}

// Collection returns a copy of the canonical collection for one shelf,
// loading it through the CollectionLoader on first access.
func (s *Service) Collection(ctx context.Context, branchCode, shelfCode string) (*ShelfCollection, error) {
	key := shelfKey{branchCode, shelfCode}
	if c, ok := s.store.get(key); ok {
		return c.Clone(), nil
	}

	lock := s.store.shelfLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Another caller may have loaded it while we waited.
	if c, ok := s.store.get(key); ok {
		return c.Clone(), nil
	}

	c, err := s.loader.LoadCollection(ctx, branchCode, shelfCode)
	if err != nil {
		return nil, fmt.Errorf("load shelf %s/%s: %w", branchCode, shelfCode, err)
	}
	s.store.put(key, c)
	return c.Clone(), nil
}

// Refresh drops the cached collection and reloads it from storage, picking
// up changes made by another instance (e.g. a central server behind the
// remote layout client). Rejected while an edit session holds the shelf:
// the session's originals were taken against the cached state.
func (s *Service) Refresh(ctx context.Context, branchCode, shelfCode string) (*ShelfCollection, error) {
	key := shelfKey{branchCode, shelfCode}

	s.mu.Lock()
	_, open := s.byShelf[key]
	s.mu.Unlock()
	if open {
		return nil, ErrShelfBusy
	}

	lock := s.store.shelfLock(key)
	lock.Lock()
	s.store.evict(key)
	lock.Unlock()

	return s.Collection(ctx, branchCode, shelfCode)
}

// OpenSession snapshots the canonical collection into a new edit session.
// Only one session may be open per shelf; a second open is rejected so two
// commits of the same shelf can never race within this process.
func (s *Service) OpenSession(ctx context.Context, branchCode, shelfCode string) (*EditSession, error) {
	canonical, err := s.Collection(ctx, branchCode, shelfCode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := shelfKey{branchCode, shelfCode}
	if _, open := s.byShelf[key]; open {
		return nil, ErrShelfBusy
	}

	session := newEditSession(canonical)
	s.sessions[session.ID] = session
	s.byShelf[key] = session.ID
	return session, nil
}

// Session resolves an open session by ID.
func (s *Service) Session(id string) (*EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Move applies one drag result to the session draft. A missing product code
// is a benign no-op (changed=false, no error): the drag may have raced a
// concurrent delete.
func (s *Service) Move(sessionID, productCode string, toRow, toPos int) (bool, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return false, err
	}
	return session.Move(productCode, toRow, toPos)
}

// CancelSession discards the draft. The canonical collection and the
// persistence layer are untouched; no network call is made.
func (s *Service) CancelSession(sessionID string) error {
	session, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	if err := session.cancel(); err != nil {
		return err
	}
	s.dropSession(session)
	return nil
}

// CommitSession sends the full-shelf snapshot to the persistence service
// and, on success, folds the draft back into the canonical collection. On
// failure the session stays open with its draft intact so the user can retry
// without losing work. Returns the number of items in the patch.
//
// The shelf lock is held across the whole save, so an Add or Delete of the
// same shelf cannot interleave between the snapshot going out and the
// reconcile landing.
func (s *Service) CommitSession(ctx context.Context, sessionID string) (int, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return 0, err
	}

	if err := session.beginSave(); err != nil {
		return 0, err
	}

	key := shelfKey{session.BranchCode, session.ShelfCode}
	lock := s.store.shelfLock(key)
	lock.Lock()
	defer lock.Unlock()

	items := session.layoutSnapshot()
	if err := s.persistence.UpdateLayout(ctx, items); err != nil {
		session.endSave()
		return 0, &PersistenceError{Op: "updateLayout", Err: err}
	}

	s.reconcile(session)
	session.close()
	s.dropSession(session)

	log.Printf("💾 Layout saved: %s/%s (%d items)", session.BranchCode, session.ShelfCode, len(items))
	s.notify(session.BranchCode, session.ShelfCode, "layout.committed")
	return len(items), nil
}

// reconcile patches the canonical collection in place from the draft. Each
// canonical assignment is matched by (productCode, original row, original
// position) - by where it used to be, not where it is now - so two products
// landing on the same new coordinate in one save cannot be confused. The
// collection is then re-sorted for deterministic iteration.
//
// The caller must hold the shelf lock.
func (s *Service) reconcile(session *EditSession) {
	key := shelfKey{session.BranchCode, session.ShelfCode}
	canonical, ok := s.store.get(key)
	if !ok {
		// Shelf got evicted mid-session; next read reloads from storage.
		return
	}

	draft := session.Draft()
	for i := range draft.Items {
		d := &draft.Items[i]
		orig, ok := session.original(d.ProductCode)
		if !ok {
			continue
		}
		for j := range canonical.Items {
			c := &canonical.Items[j]
			if c.ProductCode == d.ProductCode && c.RowNo == orig.RowNo && c.Position == orig.Position {
				c.RowNo = d.RowNo
				c.Position = d.Position
				break
			}
		}
	}
	canonical.Sort()
}

// Add inserts one product into the canonical collection. The duplicate check
// runs before any network call; a rejected add changes nothing and costs no
// round trip.
func (s *Service) Add(ctx context.Context, branchCode, shelfCode string, req AddRequest) (*models.Assignment, error) {
	if req.ProductCode == "" {
		return nil, &ValidationError{Field: "codeProduct", Reason: "must not be empty"}
	}
	if req.RowNo < 1 {
		return nil, &ValidationError{Field: "rowNo", Reason: fmt.Sprintf("must be >= 1, got %d", req.RowNo)}
	}
	if req.Position < 0 {
		return nil, &ValidationError{Field: "position", Reason: fmt.Sprintf("must not be negative, got %d", req.Position)}
	}

	if _, err := s.Collection(ctx, branchCode, shelfCode); err != nil {
		return nil, err
	}

	key := shelfKey{branchCode, shelfCode}
	lock := s.store.shelfLock(key)
	lock.Lock()
	defer lock.Unlock()

	canonical, ok := s.store.get(key)
	if !ok {
		return nil, ErrNotFound
	}
	if canonical.Contains(req.ProductCode) {
		return nil, fmt.Errorf("%w: %s on shelf %s/%s", ErrDuplicateProduct, req.ProductCode, branchCode, shelfCode)
	}

	position := req.Position
	if position == 0 {
		position = canonical.NextAvailable(req.RowNo)
	}

	payload := AddPayload{
		CodeProduct:      req.ProductCode,
		Barcode:          req.Barcode,
		NameProduct:      req.Name,
		NameBrand:        req.Brand,
		ShelfLife:        req.ShelfLife,
		SalesPriceIncVAT: req.SalesPrice,
		Position:         position,
		BranchCode:       branchCode,
		ShelfCode:        shelfCode,
		RowNo:            req.RowNo,
	}
	if err := s.persistence.AddAssignment(ctx, payload); err != nil {
		return nil, &PersistenceError{Op: "add", Err: err}
	}

	assignment := models.Assignment{
		BranchCode:  branchCode,
		ShelfCode:   shelfCode,
		ProductCode: req.ProductCode,
		RowNo:       req.RowNo,
		Position:    position,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Brand:       req.Brand,
		SalesPrice:  req.SalesPrice,
		ShelfLife:   req.ShelfLife,
	}
	canonical.Items = append(canonical.Items, assignment)
	canonical.Sort()

	s.notify(branchCode, shelfCode, "assignment.added")
	return &assignment, nil
}

// Delete removes one product from the canonical collection. The persistence
// call goes first; on failure nothing local changes. On success the source
// row is renumbered to close the gap.
func (s *Service) Delete(ctx context.Context, branchCode, shelfCode, productCode string) error {
	if _, err := s.Collection(ctx, branchCode, shelfCode); err != nil {
		return err
	}

	key := shelfKey{branchCode, shelfCode}
	lock := s.store.shelfLock(key)
	lock.Lock()
	defer lock.Unlock()

	canonical, ok := s.store.get(key)
	if !ok {
		return ErrNotFound
	}
	target := canonical.Find(productCode)
	if target == nil {
		return fmt.Errorf("%w: product %s on shelf %s/%s", ErrNotFound, productCode, branchCode, shelfCode)
	}
	rowNo := target.RowNo

	payload := DeletePayload{
		BranchCode:  branchCode,
		ShelfCode:   shelfCode,
		RowNo:       rowNo,
		CodeProduct: productCode,
		Position:    target.Position,
	}
	if err := s.persistence.DeleteAssignment(ctx, payload); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}

	for i := range canonical.Items {
		if canonical.Items[i].ProductCode == productCode {
			canonical.Items = append(canonical.Items[:i], canonical.Items[i+1:]...)
			break
		}
	}
	canonical.NormalizeRow(rowNo)
	canonical.Sort()

	s.notify(branchCode, shelfCode, "assignment.deleted")
	return nil
}

func (s *Service) dropSession(session *EditSession) {
	s.mu.Lock()
	delete(s.sessions, session.ID)
	key := shelfKey{session.BranchCode, session.ShelfCode}
	if s.byShelf[key] == session.ID {
		delete(s.byShelf, key)
	}
	s.mu.Unlock()
}

func (s *Service) notify(branchCode, shelfCode, event string) {
	if s.notifier != nil {
		s.notifier.NotifyShelfChanged(branchCode, shelfCode, event)
	}
}
