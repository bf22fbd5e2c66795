package utils

import "testing"

func TestShelfLabelRoundTrip(t *testing.T) {
	code := EncodeShelfLabel("BR01", "G12", 3)
	t.Logf("Generated label code: %s", code)

	decoded, err := DecodeShelfLabel(code)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if decoded.BranchCode != "BR01" {
		t.Errorf("BranchCode mismatch: got %s, want BR01", decoded.BranchCode)
	}
	if decoded.ShelfCode != "G12" {
		t.Errorf("ShelfCode mismatch: got %s, want G12", decoded.ShelfCode)
	}
	if decoded.RowNo != 3 {
		t.Errorf("RowNo mismatch: got %d, want 3", decoded.RowNo)
	}
}

func TestDecodeShelfLabelErrors(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"wrong prefix", "xBR01.G12.3"},
		{"too few parts", "sBR01.G12"},
		{"too many parts", "sBR01.G12.3.4"},
		{"empty branch", "s.G12.3"},
		{"empty shelf", "sBR01..3"},
		{"bad row", "sBR01.G12.abc"},
		{"zero row", "sBR01.G12.0"},
		{"negative row", "sBR01.G12.-1"},
	}

	for _, tc := range cases {
		if _, err := DecodeShelfLabel(tc.code); err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.code)
		}
	}
}
