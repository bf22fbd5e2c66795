package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product mirrors the ERP catalog entry ('product.product') used by the
// lookup flow. Rows are owned by the ERP sync; the planogram engine only
// reads them.
type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`        // ERP id
	Code          string    `gorm:"uniqueIndex;type:varchar(40)" json:"productCode"` // SKU
	Barcode       string    `gorm:"index;type:varchar(20)" json:"barcode"`           // EAN13
	Name          string    `json:"name"`
	Brand         string    `gorm:"index" json:"brand"`
	Active        bool      `gorm:"default:true" json:"active"`
	SalesPrice    float64   `json:"salesPriceIncVAT"` // VAT inclusive
	StandardPrice float64   `json:"standard_price"`
	ShelfLife     int       `json:"shelfLife"` // days
	MinStock      int       `json:"minStock"`
	MaxStock      int       `json:"maxStock"`
	WriteDate     time.Time `json:"write_date"` // ERP-side last modification

	LastSyncedAt time.Time      `json:"last_synced_at"`
	RawData      datatypes.JSON `gorm:"type:jsonb" json:"raw_data"`
}

func (Product) TableName() string { return "products" }
