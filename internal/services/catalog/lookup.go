package catalog

import (
	"context"

	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/models"
)

const maxResults = 50

// Lookup resolves product candidates from the locally synced catalog. A
// query is matched as an exact code/barcode first (scanner input), then as a
// keyword against name and brand.
type Lookup struct {
	db *database.DB
}

// NewLookup creates a catalog lookup backed by the local database.
func NewLookup(db *database.DB) *Lookup {
	return &Lookup{db: db}
}

// Search returns zero or more candidate products for the query. The branch
// code is accepted for future per-branch assortments; the catalog is
// currently shared across branches.
func (l *Lookup) Search(ctx context.Context, branchCode, query string) ([]models.Product, error) {
	if query == "" {
		return nil, nil
	}

	var products []models.Product

	// Exact code or barcode hit wins outright.
	err := l.db.WithContext(ctx).
		Where("active = ?", true).
		Where("code = ? OR barcode = ?", query, query).
		Limit(maxResults).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	// Fall back to keyword search on name and brand.
	pattern := "%" + query + "%"
	err = l.db.WithContext(ctx).
		Where("active = ?", true).
		Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern).
		Order("name").
		Limit(maxResults).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
