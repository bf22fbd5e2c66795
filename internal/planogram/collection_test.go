package planogram

import (
	"testing"

	"github.com/xelth-com/planogo/internal/models"
)

func testCollection(items ...models.Assignment) *ShelfCollection {
	return NewShelfCollection("BR01", "S1", 2, items)
}

func asn(code string, row, pos int) models.Assignment {
	return models.Assignment{
		BranchCode:  "BR01",
		ShelfCode:   "S1",
		ProductCode: code,
		RowNo:       row,
		Position:    pos,
	}
}

// expectLayout asserts the exact (row, pos) of each product and that nothing
// else is present.
func expectLayout(t *testing.T, c *ShelfCollection, want map[string][2]int) {
	t.Helper()
	if len(c.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(c.Items))
	}
	for i := range c.Items {
		it := &c.Items[i]
		w, ok := want[it.ProductCode]
		if !ok {
			t.Errorf("unexpected product %s", it.ProductCode)
			continue
		}
		if it.RowNo != w[0] || it.Position != w[1] {
			t.Errorf("product %s: got (row=%d,pos=%d), want (row=%d,pos=%d)",
				it.ProductCode, it.RowNo, it.Position, w[0], w[1])
		}
	}
}

// checkDense verifies every row's positions form exactly 1..len.
func checkDense(t *testing.T, c *ShelfCollection) {
	t.Helper()
	rows := make(map[int][]int)
	for i := range c.Items {
		rows[c.Items[i].RowNo] = append(rows[c.Items[i].RowNo], c.Items[i].Position)
	}
	for rowNo, positions := range rows {
		seen := make(map[int]bool)
		for _, p := range positions {
			if p < 1 || p > len(positions) {
				t.Errorf("row %d: position %d outside 1..%d", rowNo, p, len(positions))
			}
			if seen[p] {
				t.Errorf("row %d: duplicate position %d", rowNo, p)
			}
			seen[p] = true
		}
	}
}

func TestNormalizeRow(t *testing.T) {
	c := testCollection(
		asn("A", 1, 3),
		asn("B", 1, 7),
		asn("C", 1, 1),
	)

	c.NormalizeRow(1)
	expectLayout(t, c, map[string][2]int{
		"C": {1, 1}, "A": {1, 2}, "B": {1, 3},
	})

	// Idempotent
	c.NormalizeRow(1)
	expectLayout(t, c, map[string][2]int{
		"C": {1, 1}, "A": {1, 2}, "B": {1, 3},
	})
}

func TestNormalizeRowKeepsTies(t *testing.T) {
	// Two items claim position 2; the stable sort keeps their slice order,
	// nothing gets dropped.
	c := testCollection(
		asn("A", 1, 2),
		asn("B", 1, 2),
		asn("C", 1, 1),
	)

	c.NormalizeRow(1)
	checkDense(t, c)
	if got := len(c.Items); got != 3 {
		t.Fatalf("expected 3 items after normalize, got %d", got)
	}
}

func TestNextAvailable(t *testing.T) {
	cases := []struct {
		name      string
		positions []int
		want      int
	}{
		{"fills hole", []int{1, 2, 4}, 3},
		{"extends full row", []int{1, 2, 3}, 4},
		{"empty row", nil, 1},
		{"hole at start", []int{2, 3}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var items []models.Assignment
			for i, p := range tc.positions {
				items = append(items, asn(string(rune('A'+i)), 1, p))
			}
			c := testCollection(items...)
			if got := c.NextAvailable(1); got != tc.want {
				t.Errorf("NextAvailable(%v) = %d, want %d", tc.positions, got, tc.want)
			}
		})
	}
}

func TestMoveAcrossRows(t *testing.T) {
	// move(S1,"B",2,0) -> [{A,1,1},{B,2,1},{C,2,2}]
	c := testCollection(
		asn("A", 1, 1),
		asn("B", 1, 2),
		asn("C", 2, 1),
	)

	changed, err := c.Move("B", 2, 0)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !changed {
		t.Error("Move should report a change")
	}

	expectLayout(t, c, map[string][2]int{
		"A": {1, 1}, "B": {2, 1}, "C": {2, 2},
	})
	checkDense(t, c)
}

func TestMoveWithinRow(t *testing.T) {
	c := testCollection(
		asn("A", 1, 1),
		asn("B", 1, 2),
		asn("C", 1, 3),
	)

	// Drag C to the front
	changed, err := c.Move("C", 1, 0)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !changed {
		t.Error("Move should report a change")
	}

	expectLayout(t, c, map[string][2]int{
		"C": {1, 1}, "A": {1, 2}, "B": {1, 3},
	})
}

func TestMoveToEndOfRow(t *testing.T) {
	c := testCollection(
		asn("A", 1, 1),
		asn("B", 1, 2),
		asn("C", 2, 1),
	)

	// toPosition equal to the target row length inserts at the end
	changed, err := c.Move("A", 2, 1)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !changed {
		t.Error("Move should report a change")
	}

	expectLayout(t, c, map[string][2]int{
		"B": {1, 1}, "C": {2, 1}, "A": {2, 2},
	})
}

func TestMoveSelfTargetIsNoOp(t *testing.T) {
	c := testCollection(
		asn("A", 1, 1),
		asn("B", 1, 2),
	)

	// B is already the last item of row 1; dropping it back onto its own
	// slot must change nothing.
	changed, err := c.Move("B", 1, 2)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if changed {
		t.Error("self-target move must not report a change")
	}

	expectLayout(t, c, map[string][2]int{
		"A": {1, 1}, "B": {1, 2},
	})
}

func TestMoveMissingProductIsBenign(t *testing.T) {
	c := testCollection(asn("A", 1, 1))

	// A stale drag event naming a deleted product is not an error
	changed, err := c.Move("GONE", 1, 0)
	if err != nil {
		t.Fatalf("Move returned error for missing product: %v", err)
	}
	if changed {
		t.Error("missing product must be a no-op")
	}
	expectLayout(t, c, map[string][2]int{"A": {1, 1}})
}

func TestMoveValidation(t *testing.T) {
	c := testCollection(
		asn("A", 1, 1),
		asn("B", 2, 1),
	)

	if _, err := c.Move("A", 0, 0); err == nil {
		t.Error("expected validation error for toRow=0")
	}
	if _, err := c.Move("A", 2, -1); err == nil {
		t.Error("expected validation error for negative toPosition")
	}
	if _, err := c.Move("A", 2, 2); err == nil {
		t.Error("expected validation error for toPosition past row end")
	}

	// Collection unchanged after rejected moves
	expectLayout(t, c, map[string][2]int{
		"A": {1, 1}, "B": {2, 1},
	})
}

func TestMoveLeavesOtherRowsUntouched(t *testing.T) {
	c := NewShelfCollection("BR01", "S1", 5, []models.Assignment{
		asn("A", 1, 1), asn("B", 1, 2),
		asn("C", 2, 1),
		asn("D", 3, 1), asn("E", 3, 2),
		asn("F", 4, 1),
		asn("G", 5, 1),
	})

	changed, err := c.Move("B", 2, 1)
	if err != nil || !changed {
		t.Fatalf("Move failed: changed=%v err=%v", changed, err)
	}

	// Rows 3-5 must be byte-for-byte unchanged
	expectLayout(t, c, map[string][2]int{
		"A": {1, 1},
		"C": {2, 1}, "B": {2, 2},
		"D": {3, 1}, "E": {3, 2},
		"F": {4, 1},
		"G": {5, 1},
	})
	checkDense(t, c)
}

func TestMoveIntoEmptyRowBeyondDeclaredCount(t *testing.T) {
	c := testCollection(
		asn("A", 1, 1),
	)

	// Declared row count is 2 but the data may spill past it
	changed, err := c.Move("A", 7, 0)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !changed {
		t.Error("Move should report a change")
	}
	expectLayout(t, c, map[string][2]int{"A": {7, 1}})

	if got := c.EffectiveRowCount(); got != 7 {
		t.Errorf("EffectiveRowCount = %d, want 7", got)
	}
}

func TestEffectiveRowCount(t *testing.T) {
	c := testCollection(asn("A", 1, 1))
	if got := c.EffectiveRowCount(); got != 2 {
		t.Errorf("EffectiveRowCount = %d, want declared 2", got)
	}

	c.Items = append(c.Items, asn("B", 9, 1))
	if got := c.EffectiveRowCount(); got != 9 {
		t.Errorf("EffectiveRowCount = %d, want observed 9", got)
	}
}

func TestMoveSequencePreservesInvariants(t *testing.T) {
	c := NewShelfCollection("BR01", "S1", 3, []models.Assignment{
		asn("A", 1, 1), asn("B", 1, 2), asn("C", 1, 3),
		asn("D", 2, 1), asn("E", 2, 2),
		asn("F", 3, 1),
	})

	moves := []struct {
		code  string
		toRow int
		toPos int
	}{
		{"A", 3, 0},
		{"E", 1, 2},
		{"F", 1, 0},
		{"C", 2, 1},
		{"B", 3, 1},
		{"D", 1, 2},
	}

	for _, m := range moves {
		if _, err := c.Move(m.code, m.toRow, m.toPos); err != nil {
			t.Fatalf("Move(%s,%d,%d) failed: %v", m.code, m.toRow, m.toPos, err)
		}
		checkDense(t, c)
	}

	// No product duplicated or lost
	seen := make(map[string]bool)
	for i := range c.Items {
		if seen[c.Items[i].ProductCode] {
			t.Errorf("product %s appears twice", c.Items[i].ProductCode)
		}
		seen[c.Items[i].ProductCode] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct products, got %d", len(seen))
	}
}

func TestClone(t *testing.T) {
	c := testCollection(asn("A", 1, 1), asn("B", 1, 2))
	cp := c.Clone()

	if _, err := cp.Move("A", 2, 0); err != nil {
		t.Fatalf("Move on clone failed: %v", err)
	}

	// Original untouched
	expectLayout(t, c, map[string][2]int{
		"A": {1, 1}, "B": {1, 2},
	})
}
