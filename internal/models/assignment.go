package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment is one product's placement on one shelf: the unit record of a
// planogram. ProductCode is the business key, unique per (branch, shelf).
// Everything besides the placement coordinates is carried through unchanged
// by the reorder engine.
type Assignment struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchCode  string `gorm:"type:varchar(20);uniqueIndex:idx_placement_key;not null" json:"branchCode"`
	ShelfCode   string `gorm:"type:varchar(20);uniqueIndex:idx_placement_key;not null" json:"shelfCode"`
	ProductCode string `gorm:"type:varchar(40);uniqueIndex:idx_placement_key;not null" json:"codeProduct"`

	RowNo    int `gorm:"not null" json:"rowNo"`    // 1-based
	Position int `gorm:"not null" json:"position"` // 1-based, dense within a row

	// Display and metric passengers, copied from the catalog at add time.
	Barcode    string  `gorm:"index;type:varchar(20)" json:"barcode"`
	Name       string  `json:"nameProduct"`
	Brand      string  `json:"nameBrand"`
	SalesPrice float64 `json:"salesPriceIncVAT"`
	StockQty   int     `json:"stockQty"`
	SalesQty   int     `json:"salesQty"`
	ShelfLife  int     `json:"shelfLife"`
	MinStock   int     `json:"minStock"`
	MaxStock   int     `json:"maxStock"`

	RawData datatypes.JSON `gorm:"type:jsonb" json:"raw_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assignment) TableName() string { return "planogram_assignments" }
