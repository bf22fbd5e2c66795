package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xelth-com/planogo/internal/config"
	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/planogram"
	"github.com/xelth-com/planogo/internal/utils"
	"github.com/xelth-com/planogo/internal/websocket"
)

// stubBackend serves one fixed shelf without touching a database.
type stubBackend struct{}

func (stubBackend) LoadCollection(ctx context.Context, branchCode, shelfCode string) (*planogram.ShelfCollection, error) {
	return planogram.NewShelfCollection(branchCode, shelfCode, 2, []models.Assignment{
		{BranchCode: branchCode, ShelfCode: shelfCode, ProductCode: "SNK-001", RowNo: 1, Position: 1},
		{BranchCode: branchCode, ShelfCode: shelfCode, ProductCode: "SNK-002", RowNo: 2, Position: 1},
	}), nil
}

func (stubBackend) AddAssignment(ctx context.Context, p planogram.AddPayload) error { return nil }

func (stubBackend) DeleteAssignment(ctx context.Context, p planogram.DeletePayload) error {
	return nil
}

func (stubBackend) UpdateLayout(ctx context.Context, items []planogram.LayoutItem) error {
	return nil
}

func newTestRouter(t *testing.T) (*Router, string) {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret"}
	service := planogram.NewService(planogram.NewStore(), stubBackend{}, stubBackend{}, nil)
	router := NewRouter(nil, cfg, service, nil, websocket.NewHub())

	user := &models.UserAuth{ID: "u1", Email: "tester@planogo.local", Role: "admin"}
	token, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return router, token
}

func TestResolveScan(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scan/sBR01.G01.2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		BranchCode string                    `json:"branchCode"`
		ShelfCode  string                    `json:"shelfCode"`
		RowNo      int                       `json:"rowNo"`
		Collection planogram.ShelfCollection `json:"collection"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.BranchCode != "BR01" || body.ShelfCode != "G01" || body.RowNo != 2 {
		t.Errorf("wrong location: got %s/%s row %d", body.BranchCode, body.ShelfCode, body.RowNo)
	}
	if len(body.Collection.Items) != 2 {
		t.Errorf("expected 2 assignments in collection, got %d", len(body.Collection.Items))
	}
}

func TestResolveScanMalformedCode(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scan/not-a-label", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed code, got %d", rec.Code)
	}
}

func TestResolveScanRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scan/sBR01.G01.1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}
