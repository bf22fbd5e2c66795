package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/planogo/internal/models"
	"github.com/xelth-com/planogo/internal/planogram"
	"github.com/xelth-com/planogo/internal/utils"
)

// MoveRequest is one drag result applied to an edit session
type MoveRequest struct {
	CodeProduct string `json:"codeProduct"`
	ToRow       int    `json:"toRow"`
	ToPosition  int    `json:"toPosition"`
}

// listShelves returns all shelves of a branch with their declared row counts
func (r *Router) listShelves(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var shelves []models.Shelf
	err := r.db.Where("branch_code = ?", vars["branch"]).
		Order("sort_order, code").
		Find(&shelves).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shelves")
		return
	}
	respondJSON(w, http.StatusOK, shelves)
}

// getShelf returns the canonical collection for one shelf
func (r *Router) getShelf(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	collection, err := r.service.Collection(req.Context(), vars["branch"], vars["shelf"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

// refreshShelf reloads the canonical collection from storage, discarding
// the cached copy
func (r *Router) refreshShelf(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	collection, err := r.service.Refresh(req.Context(), vars["branch"], vars["shelf"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

// openSession snapshots the shelf into a new edit session
func (r *Router) openSession(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	session, err := r.service.OpenSession(req.Context(), vars["branch"], vars["shelf"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": session.ID,
		"draft":     session.Draft(),
	})
}

// moveInSession applies one move to the session draft
func (r *Router) moveInSession(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var body MoveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	changed, err := r.service.Move(vars["id"], body.CodeProduct, body.ToRow, body.ToPosition)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, err := r.service.Session(vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"changed": changed,
		"dirty":   session.Dirty(),
		"draft":   session.Draft(),
	})
}

// commitSession saves the session draft through the persistence service
func (r *Router) commitSession(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	count, err := r.service.CommitSession(req.Context(), vars["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"patchedCount": count,
	})
}

// cancelSession discards the session draft
func (r *Router) cancelSession(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	if err := r.service.CancelSession(vars["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// addAssignment inserts one product into the canonical collection
func (r *Router) addAssignment(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var body planogram.AddRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	assignment, err := r.service.Add(req.Context(), vars["branch"], vars["shelf"], body)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

// deleteAssignment removes one product from the canonical collection
func (r *Router) deleteAssignment(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	err := r.service.Delete(req.Context(), vars["branch"], vars["shelf"], vars["code"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// searchProducts resolves catalog candidates for the Add dialog
func (r *Router) searchProducts(w http.ResponseWriter, req *http.Request) {
	branch := req.URL.Query().Get("branch")
	query := req.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	products, err := r.lookup.Search(req.Context(), branch, query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Product search failed")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// resolveScan maps a scanned shelf row label to its planogram location and
// returns the shelf's canonical collection, so a handheld jumps straight to
// the right row
func (r *Router) resolveScan(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	label, err := utils.DecodeShelfLabel(vars["code"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	collection, err := r.service.Collection(req.Context(), label.BranchCode, label.ShelfCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"branchCode": label.BranchCode,
		"shelfCode":  label.ShelfCode,
		"rowNo":      label.RowNo,
		"collection": collection,
	})
}

// respondServiceError maps engine errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	var validation *planogram.ValidationError
	var persistence *planogram.PersistenceError

	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planogram.ErrDuplicateProduct):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planogram.ErrShelfBusy),
		errors.Is(err, planogram.ErrSessionBusy):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planogram.ErrSessionClean):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planogram.ErrSessionClosed):
		respondError(w, http.StatusGone, err.Error())
	case errors.Is(err, planogram.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &persistence):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
