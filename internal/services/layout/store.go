package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/planogram"
	"gorm.io/gorm"
)

// Store persists planogram assignments in the local PostgreSQL database. It
// backs both sides of the engine contract: loading canonical collections and
// accepting add/delete/batch-update requests.
type Store struct {
	db *database.DB
}

// NewStore creates a database-backed layout store.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// LoadCollection fetches the shelf template and all of its assignment rows.
func (s *Store) LoadCollection(ctx context.Context, branchCode, shelfCode string) (*planogram.ShelfCollection, error) {
	var shelf models.Shelf
	err := s.db.WithContext(ctx).
		Where("branch_code = ? AND code = ?", branchCode, shelfCode).
		First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("shelf %s/%s: %w", branchCode, shelfCode, planogram.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var items []models.Assignment
	err = s.db.WithContext(ctx).
		Where("branch_code = ? AND shelf_code = ?", branchCode, shelfCode).
		Order("row_no, position").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return planogram.NewShelfCollection(branchCode, shelfCode, shelf.RowCount, items), nil
}

// AddAssignment inserts one assignment row.
func (s *Store) AddAssignment(ctx context.Context, p planogram.AddPayload) error {
	row := models.Assignment{
		BranchCode:  p.BranchCode,
		ShelfCode:   p.ShelfCode,
		ProductCode: p.CodeProduct,
		RowNo:       p.RowNo,
		Position:    p.Position,
		Barcode:     p.Barcode,
		Name:        p.NameProduct,
		Brand:       p.NameBrand,
		SalesPrice:  p.SalesPriceIncVAT,
		ShelfLife:   p.ShelfLife,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// DeleteAssignment removes one assignment row.
func (s *Store) DeleteAssignment(ctx context.Context, p planogram.DeletePayload) error {
	result := s.db.WithContext(ctx).
		Where("branch_code = ? AND shelf_code = ? AND product_code = ?",
			p.BranchCode, p.ShelfCode, p.CodeProduct).
		Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("assignment %s on %s/%s: %w", p.CodeProduct, p.BranchCode, p.ShelfCode, planogram.ErrNotFound)
	}
	return nil
}

// UpdateLayout applies a full-shelf snapshot in one transaction: every item's
// coordinates are rewritten by product code. All or nothing.
func (s *Store) UpdateLayout(ctx context.Context, items []planogram.LayoutItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			result := tx.Model(&models.Assignment{}).
				Where("branch_code = ? AND shelf_code = ? AND product_code = ?",
					it.BranchCode, it.ShelfCode, it.CodeProduct).
				Updates(map[string]interface{}{
					"row_no":   it.RowNo,
					"position": it.Position,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("layout update: assignment %s on %s/%s vanished",
					it.CodeProduct, it.BranchCode, it.ShelfCode)
			}
		}
		return nil
	})
}
