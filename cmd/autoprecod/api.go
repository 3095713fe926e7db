package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"autopreco-backend/services/catalog"
	"autopreco-backend/services/listings"
	"autopreco-backend/services/pricecheck"
)

type api struct {
	catalog    *catalog.Catalog
	pricecheck pricecheck.Service
	listings   listings.Service
}

func registerRoutes(mux *http.ServeMux, a api) {
	mux.HandleFunc("GET /api/v1/brands", a.handleBrands)
	mux.HandleFunc("GET /api/v1/models", a.handleModels)
	mux.HandleFunc("POST /api/v1/validate", a.handleValidate)
	mux.HandleFunc("POST /api/v1/search", a.handleSearch)
	mux.HandleFunc("GET /api/v1/runs", a.handleRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", a.handleRun)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, errorBody{Error: err.Error()})
}

type brandsResponse struct {
	Brands []string      `json:"brands"`
	Stats  catalog.Stats `json:"stats"`
}

func (a api) handleBrands(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, brandsResponse{
		Brands: a.catalog.Brands(),
		Stats:  a.catalog.Stats(),
	})
}

type modelsResponse struct {
	Brand  string          `json:"brand"`
	Models []catalog.Model `json:"models"`
}

func (a api) handleModels(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		writeError(w, http.StatusBadRequest, errors.New("the `brand` query parameter is required"))
		return
	}
	if !a.catalog.IsValidBrand(brand) {
		writeError(w, http.StatusNotFound, errors.New("unknown brand"))
		return
	}
	writeJson(w, http.StatusOK, modelsResponse{
		Brand:  brand,
		Models: a.catalog.ModelsForBrand(brand),
	})
}

type validateRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Submodel string `json:"submodel"`
}

func (a api) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := a.catalog.ValidateSearchParams(req.Brand, req.Model, req.Submodel)
	writeJson(w, http.StatusOK, result)
}

func (a api) handleSearch(w http.ResponseWriter, r *http.Request) {
	var params pricecheck.SearchParams
	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := a.pricecheck.Search(r.Context(), params)
	if err != nil {
		var verr pricecheck.ValidationError
		if errors.As(err, &verr) {
			writeJson(w, http.StatusUnprocessableEntity, verr.Result)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJson(w, http.StatusOK, report)
}

func (a api) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := a.listings.RecentRuns(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, runs)
}

func (a api) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.listings.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, errors.New("unknown run"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, run)
}
