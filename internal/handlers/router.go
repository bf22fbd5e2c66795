package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/planogo/internal/buildinfo"
	"github.com/xelth-com/planogo/internal/config"
	"github.com/xelth-com/planogo/internal/database"
	"github.com/xelth-com/planogo/internal/middleware"
	"github.com/xelth-com/planogo/internal/planogram"
	"github.com/xelth-com/planogo/internal/websocket"
)

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	service *planogram.Service
	lookup  planogram.ProductLookup
	hub     *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, service *planogram.Service, lookup planogram.ProductLookup, hub *websocket.Hub) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		service: service,
		lookup:  lookup,
		hub:     hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg))
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Shelf browsing
	api.HandleFunc("/branches/{branch}/shelves", r.listShelves).Methods("GET")
	api.HandleFunc("/branches/{branch}/shelves/{shelf}", r.getShelf).Methods("GET")
	api.HandleFunc("/branches/{branch}/shelves/{shelf}/refresh", r.refreshShelf).Methods("POST")

	// Edit sessions (reorder flow)
	api.HandleFunc("/branches/{branch}/shelves/{shelf}/sessions", r.openSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", r.moveInSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/commit", r.commitSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", r.cancelSession).Methods("DELETE")

	// Direct assignment mutations (bypass the edit session)
	api.HandleFunc("/branches/{branch}/shelves/{shelf}/assignments", r.addAssignment).Methods("POST")
	api.HandleFunc("/branches/{branch}/shelves/{shelf}/assignments/{code}", r.deleteAssignment).Methods("DELETE")

	// Product lookup for the Add dialog
	api.HandleFunc("/products/search", r.searchProducts).Methods("GET")

	// Scanned shelf label -> planogram location
	api.HandleFunc("/scan/{code}", r.resolveScan).Methods("GET")

	// Shelf label printing
	api.HandleFunc("/print/shelf-labels", r.printShelfLabels).Methods("POST")

	// Live shelf-change notifications
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "planogo",
	})
}

// getStatus returns build and uptime info for the running instance
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":     "running",
		"commitHash": buildinfo.CommitHash,
		"buildTime":  buildinfo.BuildTime,
		"startTime":  buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
