package main

import (
	"fmt"
	"log"
	"time"

	"github.com/xelth-com/planogo/internal/config"
	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/utils"
)

func main() {
	fmt.Println("🌱 planogo Demo Data Seeder")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Branch{},
		&models.Shelf{},
		&models.Product{},
		&models.Assignment{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var branchCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	if branchCount > 0 {
		fmt.Printf("⚠️  Database already has %d branches. Clear it first? (y/N): ", branchCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE planogram_assignments CASCADE")
		db.Exec("TRUNCATE TABLE products CASCADE")
		db.Exec("TRUNCATE TABLE shelves CASCADE")
		db.Exec("TRUNCATE TABLE branches CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Branches
	fmt.Println("🏬 Creating branches...")
	branches := []models.Branch{
		{Code: "BR01", Name: "Downtown Store", Address: "1 Market Street", Active: true},
		{Code: "BR02", Name: "Airport Store", Address: "Terminal 2, Gate Level", Active: true},
	}
	for _, b := range branches {
		if err := db.Create(&b).Error; err != nil {
			log.Printf("⚠️  Failed to create branch %s: %v", b.Code, err)
		} else {
			fmt.Printf("   ✓ Created branch: [%s] %s\n", b.Code, b.Name)
		}
	}
	fmt.Printf("✅ Created %d branches\n\n", len(branches))

	// 2. Shelves
	fmt.Println("🗄️  Creating shelves...")
	shelves := []models.Shelf{
		{BranchCode: "BR01", Code: "G01", Name: "Snacks Gondola", RowCount: 4, SortOrder: 1},
		{BranchCode: "BR01", Code: "G02", Name: "Beverages Cooler", RowCount: 5, SortOrder: 2},
		{BranchCode: "BR01", Code: "E01", Name: "Checkout Endcap", RowCount: 2, SortOrder: 3},
		{BranchCode: "BR02", Code: "G01", Name: "Travel Essentials", RowCount: 3, SortOrder: 1},
	}
	for _, s := range shelves {
		if err := db.Create(&s).Error; err != nil {
			log.Printf("⚠️  Failed to create shelf %s/%s: %v", s.BranchCode, s.Code, err)
		} else {
			fmt.Printf("   ✓ Created shelf: %s/%s (%d rows)\n", s.BranchCode, s.Code, s.RowCount)
		}
	}
	fmt.Printf("✅ Created %d shelves\n\n", len(shelves))

	// 3. Products
	fmt.Println("📦 Creating products...")
	now := time.Now()
	products := []models.Product{
		{ID: 1, Code: "SNK-001", Barcode: "4006381333931", Name: "Sea Salt Potato Chips 150g", Brand: "Crispy Farm", SalesPrice: 2.49, ShelfLife: 120, MinStock: 10, MaxStock: 60, Active: true, LastSyncedAt: now},
		{ID: 2, Code: "SNK-002", Barcode: "4006381333948", Name: "Paprika Potato Chips 150g", Brand: "Crispy Farm", SalesPrice: 2.49, ShelfLife: 120, MinStock: 10, MaxStock: 60, Active: true, LastSyncedAt: now},
		{ID: 3, Code: "SNK-010", Barcode: "4006381334105", Name: "Salted Peanuts 200g", Brand: "NutHouse", SalesPrice: 1.99, ShelfLife: 240, MinStock: 8, MaxStock: 40, Active: true, LastSyncedAt: now},
		{ID: 4, Code: "BEV-001", Barcode: "5449000000996", Name: "Cola 0.5L", Brand: "FizzCo", SalesPrice: 1.79, ShelfLife: 365, MinStock: 24, MaxStock: 120, Active: true, LastSyncedAt: now},
		{ID: 5, Code: "BEV-002", Barcode: "5449000001009", Name: "Orange Soda 0.5L", Brand: "FizzCo", SalesPrice: 1.79, ShelfLife: 365, MinStock: 24, MaxStock: 120, Active: true, LastSyncedAt: now},
		{ID: 6, Code: "BEV-020", Barcode: "5411188110835", Name: "Still Water 1L", Brand: "AlpSpring", SalesPrice: 0.99, ShelfLife: 540, MinStock: 36, MaxStock: 200, Active: true, LastSyncedAt: now},
		{ID: 7, Code: "CND-001", Barcode: "7622210449283", Name: "Milk Chocolate Bar 100g", Brand: "ChocoLux", SalesPrice: 1.49, ShelfLife: 300, MinStock: 12, MaxStock: 80, Active: true, LastSyncedAt: now},
		{ID: 8, Code: "CND-002", Barcode: "7622210449290", Name: "Hazelnut Chocolate Bar 100g", Brand: "ChocoLux", SalesPrice: 1.69, ShelfLife: 300, MinStock: 12, MaxStock: 80, Active: true, LastSyncedAt: now},
	}
	for _, p := range products {
		if err := db.Create(&p).Error; err != nil {
			log.Printf("⚠️  Failed to create product %s: %v", p.Code, err)
		} else {
			fmt.Printf("   ✓ Created product: [%s] %s\n", p.Code, p.Name)
		}
	}
	fmt.Printf("✅ Created %d products\n\n", len(products))

	// 4. Assignments (dense 1..N per row)
	fmt.Println("📐 Creating planogram assignments...")
	assignments := []models.Assignment{
		{BranchCode: "BR01", ShelfCode: "G01", ProductCode: "SNK-001", RowNo: 1, Position: 1, Barcode: "4006381333931", Name: "Sea Salt Potato Chips 150g", Brand: "Crispy Farm", SalesPrice: 2.49, StockQty: 34, ShelfLife: 120, MinStock: 10, MaxStock: 60},
		{BranchCode: "BR01", ShelfCode: "G01", ProductCode: "SNK-002", RowNo: 1, Position: 2, Barcode: "4006381333948", Name: "Paprika Potato Chips 150g", Brand: "Crispy Farm", SalesPrice: 2.49, StockQty: 28, ShelfLife: 120, MinStock: 10, MaxStock: 60},
		{BranchCode: "BR01", ShelfCode: "G01", ProductCode: "SNK-010", RowNo: 2, Position: 1, Barcode: "4006381334105", Name: "Salted Peanuts 200g", Brand: "NutHouse", SalesPrice: 1.99, StockQty: 17, ShelfLife: 240, MinStock: 8, MaxStock: 40},
		{BranchCode: "BR01", ShelfCode: "G02", ProductCode: "BEV-001", RowNo: 1, Position: 1, Barcode: "5449000000996", Name: "Cola 0.5L", Brand: "FizzCo", SalesPrice: 1.79, StockQty: 96, ShelfLife: 365, MinStock: 24, MaxStock: 120},
		{BranchCode: "BR01", ShelfCode: "G02", ProductCode: "BEV-002", RowNo: 1, Position: 2, Barcode: "5449000001009", Name: "Orange Soda 0.5L", Brand: "FizzCo", SalesPrice: 1.79, StockQty: 72, ShelfLife: 365, MinStock: 24, MaxStock: 120},
		{BranchCode: "BR01", ShelfCode: "G02", ProductCode: "BEV-020", RowNo: 2, Position: 1, Barcode: "5411188110835", Name: "Still Water 1L", Brand: "AlpSpring", SalesPrice: 0.99, StockQty: 144, ShelfLife: 540, MinStock: 36, MaxStock: 200},
		{BranchCode: "BR01", ShelfCode: "E01", ProductCode: "CND-001", RowNo: 1, Position: 1, Barcode: "7622210449283", Name: "Milk Chocolate Bar 100g", Brand: "ChocoLux", SalesPrice: 1.49, StockQty: 40, ShelfLife: 300, MinStock: 12, MaxStock: 80},
		{BranchCode: "BR02", ShelfCode: "G01", ProductCode: "BEV-020", RowNo: 1, Position: 1, Barcode: "5411188110835", Name: "Still Water 1L", Brand: "AlpSpring", SalesPrice: 0.99, StockQty: 60, ShelfLife: 540, MinStock: 36, MaxStock: 200},
		{BranchCode: "BR02", ShelfCode: "G01", ProductCode: "CND-002", RowNo: 2, Position: 1, Barcode: "7622210449290", Name: "Hazelnut Chocolate Bar 100g", Brand: "ChocoLux", SalesPrice: 1.69, StockQty: 25, ShelfLife: 300, MinStock: 12, MaxStock: 80},
	}
	for _, a := range assignments {
		if err := db.Create(&a).Error; err != nil {
			log.Printf("⚠️  Failed to create assignment %s: %v", a.ProductCode, err)
		} else {
			fmt.Printf("   ✓ Placed %s at %s/%s row %d pos %d\n", a.ProductCode, a.BranchCode, a.ShelfCode, a.RowNo, a.Position)
		}
	}
	fmt.Printf("✅ Created %d assignments\n\n", len(assignments))

	// 5. Admin user
	fmt.Println("👤 Creating admin user...")
	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	admin := models.UserAuth{
		Username: "admin",
		Email:    "admin@planogo.local",
		Password: hash,
		Name:     "Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️  Failed to create admin user: %v", err)
	} else {
		fmt.Println("   ✓ Created admin user (admin@planogo.local / admin123)")
	}

	fmt.Println()
	fmt.Println("🎉 Demo data seeded successfully")
}
