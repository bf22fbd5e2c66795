package planogram

import (
	"context"

	"github.com/xelth-com/planogo/internal/models"
)

// AddPayload is the persistence request for a single new assignment.
type AddPayload struct {
	CodeProduct      string  `json:"codeProduct"`
	Barcode          string  `json:"barcode"`
	NameProduct      string  `json:"nameProduct"`
	NameBrand        string  `json:"nameBrand"`
	ShelfLife        int     `json:"shelfLife"`
	SalesPriceIncVAT float64 `json:"salesPriceIncVAT"`
	Position         int     `json:"position"`
	BranchCode       string  `json:"branchCode"`
	ShelfCode        string  `json:"shelfCode"`
	RowNo            int     `json:"rowNo"`
}

// DeletePayload identifies one assignment to remove.
type DeletePayload struct {
	BranchCode  string `json:"branchCode"`
	ShelfCode   string `json:"shelfCode"`
	RowNo       int    `json:"rowNo"`
	CodeProduct string `json:"codeProduct"`
	Position    int    `json:"position"`
}

// LayoutItem is one entry of a full-shelf layout snapshot. A commit always
// sends the complete layout of the edited shelf: renumbering can touch every
// item in a row, and a full snapshot needs no "untouched" detection on the
// wire. Two sequential saves of the same shelf are therefore total - the
// later payload fully supersedes the earlier one.
type LayoutItem struct {
	BranchCode  string `json:"branchCode"`
	ShelfCode   string `json:"shelfCode"`
	RowNo       int    `json:"rowNo"`
	Position    int    `json:"position"`
	CodeProduct string `json:"codeProduct"`
}

// PersistenceService is the backing store the engine writes through. Every
// call runs to completion once sent; the engine never cancels or retries.
type PersistenceService interface {
	AddAssignment(ctx context.Context, p AddPayload) error
	DeleteAssignment(ctx context.Context, p DeletePayload) error
	UpdateLayout(ctx context.Context, items []LayoutItem) error
}

// CollectionLoader resolves the canonical assignment rows for one shelf.
type CollectionLoader interface {
	LoadCollection(ctx context.Context, branchCode, shelfCode string) (*ShelfCollection, error)
}

// ProductLookup resolves catalog candidates for a free-text or barcode
// query. Results are opaque to the engine until the user picks one for Add.
type ProductLookup interface {
	Search(ctx context.Context, branchCode, query string) ([]models.Product, error)
}
