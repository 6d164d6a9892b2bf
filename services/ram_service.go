package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/formulas"
	"github.com/panyam/ramtool/solver"
)

type SolveKind string

const (
	SolveRbd          SolveKind = "rbd"
	SolveAvailability SolveKind = "availability"
)

// ParseSolveKind maps a path segment onto a SolveKind.
func ParseSolveKind(raw string) (SolveKind, error) {
	switch SolveKind(strings.ToLower(raw)) {
	case SolveRbd:
		return SolveRbd, nil
	case SolveAvailability:
		return SolveAvailability, nil
	}
	return "", core.NewRamErrorf("Unknown solve kind '%s'.", raw).WithStatus(http.StatusNotFound)
}

type HealthResponse struct {
	Status string `json:"status"`
}

// SaveScenarioRequest names a scenario for storage.  Without a name the
// scenario id is used, without either an id is generated.
type SaveScenarioRequest struct {
	Name     string           `json:"name"`
	Scenario *solver.Scenario `json:"scenario"`
}

// RamService is the single entry point used by the HTTP layer, the live
// session and the CLI.  The engine calls are pure; the service adds result
// caching and scenario persistence around them.
type RamService struct {
	Store ScenarioStore
	Cache *ResultCache
	IDGen *IDGen
	Now   func() time.Time
}

func NewRamService(store ScenarioStore, cache *ResultCache) *RamService {
	if store == nil {
		store = NewMemoryStore()
	}
	svc := &RamService{Store: store, Cache: cache, Now: time.Now}
	svc.IDGen = &IDGen{
		MaxRetries: maxIDRetries,
		Exists:     svc.scenarioExists,
		NextIDFunc: (&SimpleIDGen{}).NextID,
	}
	return svc
}

const maxIDRetries = 10

func (s *RamService) scenarioExists(ctx context.Context, id string) (bool, error) {
	_, err := s.Store.Get(ctx, id)
	if errors.Is(err, ErrNoSuchEntity) {
		return false, nil
	}
	return err == nil, err
}

func (s *RamService) Health() *HealthResponse {
	return &HealthResponse{Status: "ok"}
}

func (s *RamService) Convert(req *core.ConvertRequest) (*core.ConvertResponse, error) {
	return core.ConvertMetrics(req)
}

func (s *RamService) DistributionReliability(req *solver.DistributionReliabilityRequest) (*solver.DistributionReliabilityResponse, error) {
	return solver.SolveDistributionReliability(req)
}

func (s *RamService) SolveRbd(ctx context.Context, scenario *solver.Scenario) (*solver.SolveRbdResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(s.Cache, string(SolveRbd), scenario, solver.SolveRbdScenario)
}

func (s *RamService) SolveAvailability(ctx context.Context, scenario *solver.Scenario) (*solver.SolveAvailabilityResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(s.Cache, string(SolveAvailability), scenario, solver.SolveAvailabilityScenario)
}

// Solve dispatches on kind and returns the kind's response type.
func (s *RamService) Solve(ctx context.Context, kind SolveKind, scenario *solver.Scenario) (any, error) {
	switch kind {
	case SolveRbd:
		return s.SolveRbd(ctx, scenario)
	case SolveAvailability:
		return s.SolveAvailability(ctx, scenario)
	}
	return nil, core.NewRamErrorf("Unknown solve kind '%s'.", kind).WithStatus(http.StatusNotFound)
}

func (s *RamService) Validate(scenario *solver.Scenario) *solver.ValidationResult {
	result := solver.ValidateScenario(scenario)
	return &result
}

// Formulas solves the scenario and renders the equations behind the
// result.  A nil context means there is nothing to show (e.g. no rates).
func (s *RamService) Formulas(ctx context.Context, kind SolveKind, scenario *solver.Scenario) (*formulas.Context, error) {
	switch kind {
	case SolveRbd:
		resp, err := s.SolveRbd(ctx, scenario)
		if err != nil {
			return nil, err
		}
		return formulas.ForRbd(scenario, resp), nil
	case SolveAvailability:
		resp, err := s.SolveAvailability(ctx, scenario)
		if err != nil {
			return nil, err
		}
		return formulas.ForAvailability(scenario, resp), nil
	}
	return nil, core.NewRamErrorf("Unknown solve kind '%s'.", kind).WithStatus(http.StatusNotFound)
}

func (s *RamService) ConvertFormulas(req *core.ConvertRequest) (*formulas.Context, error) {
	resp, err := core.ConvertMetrics(req)
	if err != nil {
		return nil, err
	}
	return formulas.ForConverter(req, resp), nil
}

func (s *RamService) Templates() []*Template { return ListTemplates() }

func (s *RamService) Template(name string) (*Template, error) { return GetTemplate(name) }

// --- Stored scenarios ---

func (s *RamService) SaveScenario(ctx context.Context, req *SaveScenarioRequest) (*ScenarioRecord, error) {
	if req.Scenario == nil {
		return nil, core.NewRamError("Scenario is required.")
	}
	id := NormalizeID(req.Scenario.Id)
	if id == "" {
		id = NormalizeID(req.Name)
	}
	if id == "" {
		var err error
		if id, err = s.IDGen.NextID(ctx); err != nil {
			return nil, err
		}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = id
	}

	scenario := *req.Scenario
	scenario.Id = id
	rec := &ScenarioRecord{Id: id, Name: name, Scenario: &scenario, UpdatedAt: s.Now().UTC()}
	if err := s.Store.Save(ctx, rec); err != nil {
		slog.Error("Failed to save scenario", "id", id, "error", err)
		return nil, err
	}
	return rec, nil
}

func (s *RamService) GetScenario(ctx context.Context, id string) (*ScenarioRecord, error) {
	return s.Store.Get(ctx, id)
}

func (s *RamService) ListScenarios(ctx context.Context) ([]*ScenarioRecord, error) {
	return s.Store.List(ctx)
}

func (s *RamService) DeleteScenario(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

// SolveStored loads a scenario by id and solves it.
func (s *RamService) SolveStored(ctx context.Context, id string, kind SolveKind) (any, error) {
	rec, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, kind, rec.Scenario)
}
