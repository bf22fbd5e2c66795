package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/planogo/internal/utils"
)

// ShelfLabelConfig holds configuration for shelf row label sheets
type ShelfLabelConfig struct {
	BranchCode string  `json:"branchCode"`
	ShelfCode  string  `json:"shelfCode"`
	ShelfName  string  `json:"shelfName,omitempty"`
	RowCount   int     `json:"rowCount"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// GenerateShelfLabelsPDF creates an A4 sheet of QR labels, one per shelf
// row, ready to stick on the rack edge.
func GenerateShelfLabelsPDF(cfg ShelfLabelConfig) ([]byte, error) {
	if cfg.RowCount < 1 {
		return nil, fmt.Errorf("rowCount must be >= 1, got %d", cfg.RowCount)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i := 0; i < cfg.RowCount; i++ {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		// Top-left of label
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		rowNo := i + 1
		code := utils.EncodeShelfLabel(cfg.BranchCode, cfg.ShelfCode, rowNo)

		qrPng, err := qrcode.Encode(code, qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		reader := bytes.NewReader(qrPng)
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, reader)

		// QR centered, 70% of label height
		qrSize := labelH * 0.7
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}

		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 2 // Shift up slightly for text space

		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		// Human-readable location below the QR
		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(8)
		caption := fmt.Sprintf("%s / %s / Row %d", cfg.BranchCode, cfg.ShelfCode, rowNo)
		pdf.CellFormat(labelW, 5, caption, "", 0, "C", false, 0, "")

		// Shelf name top right, if provided
		if cfg.ShelfName != "" {
			pdf.SetXY(x, y+1)
			pdf.SetFontSize(6)
			pdf.CellFormat(labelW, 3, cfg.ShelfName, "", 0, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
