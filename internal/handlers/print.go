package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/services/printer"
	"gorm.io/gorm"
)

// printShelfLabels generates the QR label sheet for one shelf
func (r *Router) printShelfLabels(w http.ResponseWriter, req *http.Request) {
	var cfg printer.ShelfLabelConfig
	if err := json.NewDecoder(req.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if cfg.BranchCode == "" || cfg.ShelfCode == "" {
		respondError(w, http.StatusBadRequest, "branchCode and shelfCode are required")
		return
	}

	// Fill row count and name from the shelf template when not supplied
	if cfg.RowCount == 0 || cfg.ShelfName == "" {
		var shelf models.Shelf
		err := r.db.Where("branch_code = ? AND code = ?", cfg.BranchCode, cfg.ShelfCode).First(&shelf).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Shelf not found")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load shelf")
			return
		}
		if cfg.RowCount == 0 {
			cfg.RowCount = shelf.RowCount
		}
		if cfg.ShelfName == "" {
			cfg.ShelfName = shelf.Name
		}
	}

	// Layout defaults
	if cfg.Cols == 0 {
		cfg.Cols = 3
	}
	if cfg.Rows == 0 {
		cfg.Rows = 7
	}
	if cfg.MarginTop == 0 {
		cfg.MarginTop = 10
	}
	if cfg.MarginLeft == 0 {
		cfg.MarginLeft = 7
	}

	pdfBytes, err := printer.GenerateShelfLabelsPDF(cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=shelf-labels-%s-%s.pdf", cfg.BranchCode, cfg.ShelfCode))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
