package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Shelf label codes identify a physical shelf row so a handheld scanner can
// jump straight to the right planogram view.
//
// Format: s<branch>.<shelf>.<row>   e.g. "sBR01.G12.3"
// Branch and shelf codes must not contain '.'.

const shelfLabelPrefix = "s"

// ShelfLabelData is the decoded content of a shelf row label
type ShelfLabelData struct {
	BranchCode string
	ShelfCode  string
	RowNo      int
}

// EncodeShelfLabel builds the scannable code for one shelf row
func EncodeShelfLabel(branchCode, shelfCode string, rowNo int) string {
	return fmt.Sprintf("%s%s.%s.%d", shelfLabelPrefix, branchCode, shelfCode, rowNo)
}

// DecodeShelfLabel parses a shelf row label code
func DecodeShelfLabel(code string) (ShelfLabelData, error) {
	if !strings.HasPrefix(code, shelfLabelPrefix) {
		return ShelfLabelData{}, fmt.Errorf("not a shelf label code: %q", code)
	}

	parts := strings.Split(code[len(shelfLabelPrefix):], ".")
	if len(parts) != 3 {
		return ShelfLabelData{}, fmt.Errorf("malformed shelf label code: %q", code)
	}
	if parts[0] == "" || parts[1] == "" {
		return ShelfLabelData{}, fmt.Errorf("shelf label code missing branch or shelf: %q", code)
	}

	rowNo, err := strconv.Atoi(parts[2])
	if err != nil || rowNo < 1 {
		return ShelfLabelData{}, fmt.Errorf("invalid row number in shelf label code: %q", code)
	}

	return ShelfLabelData{
		BranchCode: parts[0],
		ShelfCode:  parts[1],
		RowNo:      rowNo,
	}, nil
}
