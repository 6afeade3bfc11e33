package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/foodscope/foodscope/pkg/openfoodfacts"
	"github.com/foodscope/foodscope/pkg/scan"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	skipCache := r.URL.Query().Get("refresh") == "true"

	p, cached, err := s.Scanner.Lookup(r.Context(), barcode, skipCache)
	if errors.Is(err, openfoodfacts.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	report := scan.BuildReport(p, s.Thresholds)
	if cached {
		w.Header().Set("X-Foodscope-Cache", "hit")
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Thresholds)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.DB.ListHistory(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	stats, err := s.DB.GetStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
