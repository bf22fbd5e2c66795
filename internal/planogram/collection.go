package planogram

import (
	"fmt"
	"sort"

	"github.com/xelth-com/planogo/internal/models"
)

// ShelfCollection holds every assignment of one shelf in one branch.
// Two invariants hold after every committed mutation:
//   - positions within a row are exactly 1..len (dense, no gaps/duplicates)
//   - a product code appears at most once on the shelf
//
// Items are kept sorted by (RowNo, Position) for deterministic iteration.
type ShelfCollection struct {
	BranchCode string              `json:"branchCode"`
	ShelfCode  string              `json:"shelfCode"`
	RowCount   int                 `json:"rowCount"` // declared capacity from the shelf template
	Items      []models.Assignment `json:"items"`
}

// NewShelfCollection builds a sorted collection from raw assignment rows.
func NewShelfCollection(branchCode, shelfCode string, rowCount int, items []models.Assignment) *ShelfCollection {
	c := &ShelfCollection{
		BranchCode: branchCode,
		ShelfCode:  shelfCode,
		RowCount:   rowCount,
		Items:      append([]models.Assignment(nil), items...),
	}
	c.Sort()
	return c
}

// Clone returns a deep copy. Assignment is a value type, so copying the
// backing slice is enough.
func (c *ShelfCollection) Clone() *ShelfCollection {
	cp := *c
	cp.Items = append([]models.Assignment(nil), c.Items...)
	return &cp
}

// Sort orders items by (RowNo, Position) for deterministic downstream
// iteration.
func (c *ShelfCollection) Sort() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		if c.Items[i].RowNo != c.Items[j].RowNo {
			return c.Items[i].RowNo < c.Items[j].RowNo
		}
		return c.Items[i].Position < c.Items[j].Position
	})
}

// EffectiveRowCount is the number of rows that must be rendered: the declared
// template capacity, or more if the data already spilled past it.
func (c *ShelfCollection) EffectiveRowCount() int {
	max := c.RowCount
	for i := range c.Items {
		if c.Items[i].RowNo > max {
			max = c.Items[i].RowNo
		}
	}
	return max
}

// Find returns a pointer to the assignment with the given product code, or
// nil if the product is not on this shelf.
func (c *ShelfCollection) Find(productCode string) *models.Assignment {
	for i := range c.Items {
		if c.Items[i].ProductCode == productCode {
			return &c.Items[i]
		}
	}
	return nil
}

// Contains reports whether the product is already placed on this shelf.
func (c *ShelfCollection) Contains(productCode string) bool {
	return c.Find(productCode) != nil
}

// rowIndexes returns the indexes of all items in the given row, ordered by
// their current position (stable on slice order for equal positions).
func (c *ShelfCollection) rowIndexes(rowNo int) []int {
	var idx []int
	for i := range c.Items {
		if c.Items[i].RowNo == rowNo {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.Items[idx[a]].Position < c.Items[idx[b]].Position
	})
	return idx
}

// RowLen returns the number of assignments currently in the row.
func (c *ShelfCollection) RowLen(rowNo int) int {
	n := 0
	for i := range c.Items {
		if c.Items[i].RowNo == rowNo {
			n++
		}
	}
	return n
}

// NormalizeRow rewrites the row's positions to the dense sequence 1..len,
// keeping the order implied by the prior position values. Ties keep their
// slice order; nothing is ever dropped. Idempotent.
func (c *ShelfCollection) NormalizeRow(rowNo int) {
	idx := c.rowIndexes(rowNo)
	for pos, i := range idx {
		c.Items[i].Position = pos + 1
	}
}

// NextAvailable returns the smallest positive position not used in the row,
// filling a hole left by a prior delete before extending the row.
func (c *ShelfCollection) NextAvailable(rowNo int) int {
	used := make(map[int]bool)
	for i := range c.Items {
		if c.Items[i].RowNo == rowNo {
			used[c.Items[i].Position] = true
		}
	}
	pos := 1
	for used[pos] {
		pos++
	}
	return pos
}

// Move relocates the product to (toRow, toPos) treating toPos as a list
// insertion index: 0 inserts at the start of the target row, the row's
// current length inserts at the end. The target row is renumbered, and the
// source row as well when it differs. Rows not involved are untouched.
//
// A missing product code is a benign no-op (a drag can race a concurrent
// delete); it returns changed=false with no error. Invalid coordinates are
// rejected with a ValidationError before anything is modified.
func (c *ShelfCollection) Move(productCode string, toRow, toPos int) (bool, error) {
	if toRow < 1 {
		return false, &ValidationError{Field: "toRow", Reason: fmt.Sprintf("must be >= 1, got %d", toRow)}
	}

	src := -1
	for i := range c.Items {
		if c.Items[i].ProductCode == productCode {
			src = i
			break
		}
	}
	if src < 0 {
		return false, nil
	}

	item := c.Items[src]
	fromRow := item.RowNo

	// Bounds: the target row's current length counts the moved item when it
	// is already on that row.
	if toPos < 0 || toPos > c.RowLen(toRow) {
		return false, &ValidationError{
			Field:  "toPosition",
			Reason: fmt.Sprintf("must be between 0 and %d, got %d", c.RowLen(toRow), toPos),
		}
	}

	before := c.snapshotRows(fromRow, toRow)

	// Remove, list-insert, renumber.
	c.Items = append(c.Items[:src], c.Items[src+1:]...)

	target := c.rowIndexes(toRow)
	insertAt := len(c.Items) // default: append to the slice end
	if toPos < len(target) {
		insertAt = target[toPos]
	}
	item.RowNo = toRow
	c.Items = append(c.Items, models.Assignment{})
	copy(c.Items[insertAt+1:], c.Items[insertAt:])
	c.Items[insertAt] = item

	// Items are kept sorted, so slice order within the target row already
	// reflects position order, with the inserted element sitting exactly
	// where it belongs. Renumbering by slice order folds it into place
	// regardless of its stale position value.
	c.renumberBySliceOrder(toRow)
	if fromRow != toRow {
		c.NormalizeRow(fromRow)
	}
	c.Sort()

	return !c.rowsEqual(before, fromRow, toRow), nil
}

// renumberBySliceOrder assigns dense 1..len positions to the row in slice
// order.
func (c *ShelfCollection) renumberBySliceOrder(rowNo int) {
	pos := 0
	for i := range c.Items {
		if c.Items[i].RowNo == rowNo {
			pos++
			c.Items[i].Position = pos
		}
	}
}

type rowSnapshot map[string][2]int // productCode -> (rowNo, position)

// snapshotRows records (row, position) per product for the given rows.
func (c *ShelfCollection) snapshotRows(rows ...int) rowSnapshot {
	snap := make(rowSnapshot)
	for i := range c.Items {
		for _, r := range rows {
			if c.Items[i].RowNo == r {
				snap[c.Items[i].ProductCode] = [2]int{c.Items[i].RowNo, c.Items[i].Position}
				break
			}
		}
	}
	return snap
}

// rowsEqual reports whether the given rows still match the snapshot.
func (c *ShelfCollection) rowsEqual(snap rowSnapshot, rows ...int) bool {
	current := c.snapshotRows(rows...)
	if len(current) != len(snap) {
		return false
	}
	for code, place := range current {
		if snap[code] != place {
			return false
		}
	}
	return true
}
