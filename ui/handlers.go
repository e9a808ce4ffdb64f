package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"goglm/app"
	"goglm/domain/core"
	"goglm/domain/formula"
	"goglm/internal/simulation"
	"goglm/models"
)

type parseRequest struct {
	Formula string `json:"formula"`
}

type parseResponse struct {
	Spec     formula.ModelSpec `json:"spec"`
	Warnings []formula.Warning `json:"warnings,omitempty"`
}

func (a *App) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !a.decode(w, r, &req) {
		return
	}
	spec, warnings, err := formula.Parse(req.Formula)
	if err != nil {
		a.writeError(w, err)
		return
	}
	for _, warn := range warnings {
		a.log.Warn("%s", warn.Message)
	}
	a.writeJSON(w, http.StatusOK, parseResponse{Spec: spec, Warnings: warnings})
}

// composeRequest mirrors the loosely-typed compose contract: predictors and
// interactions may each be a single string or an array of strings.
type composeRequest struct {
	Outcome      string `json:"outcome"`
	Predictors   any    `json:"predictors"`
	Interactions any    `json:"interactions"`
}

func (a *App) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if !a.decode(w, r, &req) {
		return
	}
	form, err := formula.Compose(req.Outcome, fromJSONArg(req.Predictors), fromJSONArg(req.Interactions))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"formula": form})
}

func (a *App) handleComposeSEM(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if !a.decode(w, r, &req) {
		return
	}
	if _, err := formula.ComposeSEM(req); err != nil {
		a.writeError(w, err)
		return
	}
}

type modelCreateRequest struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Notes   string `json:"notes,omitempty"`
}

func (a *App) handleCreateModel(w http.ResponseWriter, r *http.Request) {
	if !a.requireRepo(w) {
		return
	}
	var req modelCreateRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		a.writeError(w, core.NewTypeError("`name`", "must be a non-empty string"))
		return
	}
	model := &models.SavedModel{Name: req.Name, Formula: req.Formula, Notes: req.Notes}
	if err := a.modelRepo.Create(r.Context(), model); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, model)
}

func (a *App) handleListModels(w http.ResponseWriter, r *http.Request) {
	if !a.requireRepo(w) {
		return
	}
	list, err := a.modelRepo.List(r.Context(), 50, 0)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, list)
}

func (a *App) handleGetModel(w http.ResponseWriter, r *http.Request) {
	if !a.requireRepo(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, core.NewTypeError("`id`", "must be a UUID"))
		return
	}
	model, err := a.modelRepo.GetByID(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, model)
}

func (a *App) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	if !a.requireRepo(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, core.NewTypeError("`id`", "must be a UUID"))
		return
	}
	if err := a.modelRepo.Delete(r.Context(), id); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleModelReport(w http.ResponseWriter, r *http.Request) {
	if !a.requireRepo(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, core.NewTypeError("`id`", "must be a UUID"))
		return
	}
	model, err := a.modelRepo.GetByID(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	service, err := a.serviceFor(model.Formula)
	if err != nil {
		a.writeError(w, err)
		return
	}
	rep, err := service.Report(model.Name)
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rep.HTML())
}

type simulateRequest struct {
	Columns []simulation.ColumnSpec `json:"columns"`
	Rows    int                     `json:"rows"`
	Seed    uint64                  `json:"seed"`
}

func (a *App) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !a.decode(w, r, &req) {
		return
	}
	table, err := simulation.GenerateTable(req.Columns, req.Rows, req.Seed)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.setTable(table)
	a.writeJSON(w, http.StatusCreated, map[string]any{
		"rows":    table.RowCount,
		"columns": table.Columns,
	})
}

func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	table := a.currentTable()
	if table == nil {
		a.writeError(w, core.ErrNoDataset)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"rows":    table.RowCount,
		"columns": table.Columns,
	})
}

// analysisRequest selects the model for a describe/correlate call: either a
// raw formula string or a structured request.
type analysisRequest struct {
	Formula string            `json:"formula,omitempty"`
	Model   *app.ModelRequest `json:"model,omitempty"`
	Group   string            `json:"group,omitempty"`
}

func (a *App) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !a.decode(w, r, &req) {
		return
	}
	service, err := a.serviceForRequest(req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	overall, grouped, err := service.Describe(req.Group)
	if err != nil {
		a.writeError(w, err)
		return
	}
	resp := map[string]any{"overall": overall}
	if grouped != nil {
		resp["groups"] = grouped
	}
	a.writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleCorrelate(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !a.decode(w, r, &req) {
		return
	}
	service, err := a.serviceForRequest(req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	matrix, err := service.Correlate()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, matrix)
}

type powerRequest struct {
	simulation.PowerConfig
	Rates      []float64 `json:"rates,omitempty"`
	Thresholds []float64 `json:"thresholds,omitempty"`
}

func (a *App) handlePower(w http.ResponseWriter, r *http.Request) {
	var req powerRequest
	if !a.decode(w, r, &req) {
		return
	}
	if len(req.Rates) > 0 || len(req.Thresholds) > 0 {
		cells, err := simulation.PowerSensitivity(r.Context(), req.PowerConfig, req.Rates, req.Thresholds)
		if err != nil {
			a.writeError(w, err)
			return
		}
		a.writeJSON(w, http.StatusOK, map[string]any{"cells": cells})
		return
	}
	points, err := simulation.PowerBinomial(r.Context(), req.PowerConfig)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

// serviceForRequest builds a per-request regression service over the shared
// dataset, configured from either entry path.
func (a *App) serviceForRequest(req analysisRequest) (*app.RegressionService, error) {
	if req.Model != nil {
		return a.serviceFor(req.Model)
	}
	if req.Formula == "" {
		return nil, core.NewTypeError("`model`", "requires either a formula or a model request")
	}
	return a.serviceFor(req.Formula)
}

func (a *App) serviceFor(model any) (*app.RegressionService, error) {
	table := a.currentTable()
	if table == nil {
		return nil, core.ErrNoDataset
	}
	service := app.NewRegressionService(a.log)
	service.SetTable(table)
	if _, err := service.SetModel(model); err != nil {
		return nil, err
	}
	return service, nil
}

func (a *App) requireRepo(w http.ResponseWriter) bool {
	if a.modelRepo == nil {
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "model registry requires a configured database",
		})
		return false
	}
	return true
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsFormatError(err), core.IsTypeError(err):
		status = http.StatusUnprocessableEntity
	case core.IsNotImplementedError(err):
		status = http.StatusNotImplemented
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNoDataset), errors.Is(err, core.ErrNoModel):
		status = http.StatusConflict
	case errors.Is(err, core.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		a.log.Error("request failed: %v", err)
	}
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// fromJSONArg converts decoded JSON argument shapes to the compose
// contract's: strings pass through, arrays of strings become []string, and
// anything else is left for Compose to reject.
func fromJSONArg(v any) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return v
		}
		out[i] = s
	}
	return out
}
