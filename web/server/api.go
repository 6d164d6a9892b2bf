package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/solver"
)

const invalidBodyMessage = "Invalid request body."

type apiHandler struct {
	svc *services.RamService
}

func (h *apiHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("POST /api/convert", h.convert)
	mux.HandleFunc("POST /api/distribution/r", h.distributionReliability)
	mux.HandleFunc("POST /api/solve/{kind}", h.solve)
	mux.HandleFunc("POST /api/validate", h.validate)
	mux.HandleFunc("POST /api/formulas/convert", h.convertFormulas)
	mux.HandleFunc("POST /api/formulas/{kind}", h.formulas)
	mux.HandleFunc("GET /api/templates", h.listTemplates)
	mux.HandleFunc("GET /api/templates/{name}", h.getTemplate)
	mux.HandleFunc("GET /api/scenarios", h.listScenarios)
	mux.HandleFunc("POST /api/scenarios", h.saveScenario)
	mux.HandleFunc("GET /api/scenarios/{id}", h.getScenario)
	mux.HandleFunc("DELETE /api/scenarios/{id}", h.deleteScenario)
	mux.HandleFunc("POST /api/scenarios/{id}/solve/{kind}", h.solveStored)
}

type detailBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, detailBody{Detail: message})
}

// writeError maps an error onto the wire: domain errors keep their status,
// missing entities are 404 and everything else is an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if re, ok := core.AsRamError(err); ok {
		writeDetail(w, re.Status, re.Message)
		return
	}
	if errors.Is(err, services.ErrNoSuchEntity) {
		writeDetail(w, http.StatusNotFound, "Scenario not found.")
		return
	}
	slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error.")
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var out T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&out); err != nil {
		if core.IsRamError(err) {
			writeError(w, r, err)
			return nil, false
		}
		slog.Debug("Bad request body", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusBadRequest, invalidBodyMessage)
		return nil, false
	}
	return &out, true
}

// respond writes resp or the mapped error.
func respond[T any](w http.ResponseWriter, r *http.Request, resp T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health())
}

func (h *apiHandler) convert(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[core.ConvertRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Convert(req)
	respond(w, r, resp, err)
}

func (h *apiHandler) distributionReliability(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[solver.DistributionReliabilityRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.DistributionReliability(req)
	respond(w, r, resp, err)
}

func (h *apiHandler) solve(w http.ResponseWriter, r *http.Request) {
	kind, err := services.ParseSolveKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	scenario, ok := decodeBody[solver.Scenario](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Solve(r.Context(), kind, scenario)
	respond(w, r, resp, err)
}

func (h *apiHandler) validate(w http.ResponseWriter, r *http.Request) {
	scenario, ok := decodeBody[solver.Scenario](w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Validate(scenario))
}

func (h *apiHandler) formulas(w http.ResponseWriter, r *http.Request) {
	kind, err := services.ParseSolveKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	scenario, ok := decodeBody[solver.Scenario](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Formulas(r.Context(), kind, scenario)
	respond(w, r, resp, err)
}

func (h *apiHandler) convertFormulas(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[core.ConvertRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.ConvertFormulas(req)
	respond(w, r, resp, err)
}

func (h *apiHandler) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Templates())
}

func (h *apiHandler) getTemplate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Template(r.PathValue("name"))
	respond(w, r, resp, err)
}

func (h *apiHandler) listScenarios(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListScenarios(r.Context())
	respond(w, r, resp, err)
}

func (h *apiHandler) saveScenario(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[services.SaveScenarioRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.svc.SaveScenario(r.Context(), req)
	respond(w, r, resp, err)
}

func (h *apiHandler) getScenario(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetScenario(r.Context(), r.PathValue("id"))
	respond(w, r, resp, err)
}

func (h *apiHandler) deleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteScenario(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandler) solveStored(w http.ResponseWriter, r *http.Request) {
	kind, err := services.ParseSolveKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.SolveStored(r.Context(), r.PathValue("id"), kind)
	respond(w, r, resp, err)
}
