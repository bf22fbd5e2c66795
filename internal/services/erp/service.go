package erp

import (
	"log"
	"time"

	"github.com/xelth-com/planogo/internal/config"
	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/models"
	"gorm.io/gorm/clause"
)

// SyncService keeps the local product catalog current by pulling deltas from
// the ERP in the background. The planogram lookup flow only ever reads the
// local table.
type SyncService struct {
	client *Client
	db     *database.DB
	cfg    config.ERPConfig
	stop   chan struct{}
}

// NewSyncService creates a new catalog synchronization service
func NewSyncService(db *database.DB, cfg config.ERPConfig) *SyncService {
	return &SyncService{
		client: NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password),
		db:     db,
		cfg:    cfg,
		stop:   make(chan struct{}),
	}
}

// Start begins the background synchronization loop
func (s *SyncService) Start() {
	if s.cfg.URL == "" {
		log.Println("ERP Sync disabled: ERP_URL not configured")
		return
	}

	go func() {
		log.Println("📡 ERP Catalog Sync started")

		if _, err := s.client.Authenticate(); err != nil {
			log.Printf("❌ ERP authentication failed: %v", err)
			return
		}

		// Initial sync delay
		time.Sleep(5 * time.Second)
		s.syncProducts()

		interval := time.Duration(s.cfg.SyncInterval) * time.Minute
		if s.cfg.SyncInterval <= 0 {
			interval = 15 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.syncProducts()
			case <-s.stop:
				log.Println("🛑 ERP Catalog Sync stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *SyncService) Stop() {
	close(s.stop)
}

// productRecord carries one ERP catalog row across the XML-RPC boundary.
// Tags match the ERP field names; write_date arrives as an Odoo-style
// timestamp string.
type productRecord struct {
	ID            int64       `json:"id"`
	DefaultCode   interface{} `json:"default_code"` // false when unset
	Barcode       interface{} `json:"barcode"`      // false when unset
	Name          string      `json:"name"`
	BrandName     interface{} `json:"brand_name"`
	Active        bool        `json:"active"`
	ListPrice     float64     `json:"list_price"`
	StandardPrice float64     `json:"standard_price"`
	ShelfLife     int         `json:"shelf_life"`
	MinStock      int         `json:"min_stock"`
	MaxStock      int         `json:"max_stock"`
	WriteDate     string      `json:"write_date"`
}

const erpTimeLayout = "2006-01-02 15:04:05"

// optString folds the ERP's false-for-empty convention into "".
func optString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func (r *productRecord) toModel() models.Product {
	writeDate, _ := time.Parse(erpTimeLayout, r.WriteDate)
	return models.Product{
		ID:            r.ID,
		Code:          optString(r.DefaultCode),
		Barcode:       optString(r.Barcode),
		Name:          r.Name,
		Brand:         optString(r.BrandName),
		Active:        r.Active,
		SalesPrice:    r.ListPrice,
		StandardPrice: r.StandardPrice,
		ShelfLife:     r.ShelfLife,
		MinStock:      r.MinStock,
		MaxStock:      r.MaxStock,
		WriteDate:     writeDate,
		LastSyncedAt:  time.Now(),
	}
}

// syncProducts pulls catalog deltas since the newest local write_date
func (s *SyncService) syncProducts() {
	log.Println("📦 ERP: Syncing products...")

	var lastProduct models.Product
	lastWriteDate := "2000-01-01 00:00:00"

	result := s.db.Order("write_date DESC").First(&lastProduct)
	if result.Error == nil && !lastProduct.WriteDate.IsZero() {
		lastWriteDate = lastProduct.WriteDate.Format(erpTimeLayout)
	}

	domain := []interface{}{
		[]interface{}{"write_date", ">", lastWriteDate},
	}

	var records []productRecord
	err := s.client.SearchRead("product.product", domain, []string{
		"default_code", "barcode", "name", "brand_name", "list_price", "standard_price",
		"shelf_life", "min_stock", "max_stock", "write_date", "active",
	}, 1000, 0, &records)
	if err != nil {
		log.Printf("❌ ERP Sync Error (Products): %v", err)
		return
	}

	if len(records) == 0 {
		return
	}

	count := 0
	for i := range records {
		if optString(records[i].DefaultCode) == "" {
			// Catalog rows without a SKU cannot be placed on a shelf
			continue
		}
		p := records[i].toModel()

		// Upsert by primary key (ERP ID)
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&p).Error; err != nil {
			log.Printf("Failed to save product %d: %v", p.ID, err)
		} else {
			count++
		}
	}

	log.Printf("✅ ERP: Updated %d products", count)
}
