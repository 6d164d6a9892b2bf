package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	ghttp "github.com/panyam/goutils/http"
	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/formulas"
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/solver"
)

// engine is what the commands need from the solver, whether it runs in
// process or behind a server.
type engine interface {
	Solve(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (any, error)
	Convert(req *core.ConvertRequest) (*core.ConvertResponse, error)
	Validate(scenario *solver.Scenario) (*solver.ValidationResult, error)
	Formulas(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (*formulas.Context, error)
}

// getServerURL returns the server URL using the priority:
// 1. Command line flag (--server)
// 2. Environment variable (RAMTOOL_SERVER_URL)
// 3. Empty, meaning solve locally
func getServerURL() string {
	if cfg != nil {
		return cfg.ServerURL
	}
	if serverURL != "" {
		return serverURL
	}
	return os.Getenv("RAMTOOL_SERVER_URL")
}

func newEngine() engine {
	if url := getServerURL(); url != "" {
		return &remoteEngine{baseURL: strings.TrimSuffix(url, "/")}
	}
	return &localEngine{svc: services.NewRamService(services.NewMemoryStore(), nil)}
}

type localEngine struct {
	svc *services.RamService
}

func (l *localEngine) Solve(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (any, error) {
	return l.svc.Solve(ctx, kind, scenario)
}

func (l *localEngine) Convert(req *core.ConvertRequest) (*core.ConvertResponse, error) {
	return l.svc.Convert(req)
}

func (l *localEngine) Validate(scenario *solver.Scenario) (*solver.ValidationResult, error) {
	return l.svc.Validate(scenario), nil
}

func (l *localEngine) Formulas(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (*formulas.Context, error) {
	return l.svc.Formulas(ctx, kind, scenario)
}

type remoteEngine struct {
	baseURL string
}

// postJSON sends body to endpoint and decodes the reply into T.  Replies
// carrying a "detail" field are turned back into domain errors.
func postJSON[T any](baseURL, endpoint string, body any) (*T, error) {
	payload, err := toMap(body)
	if err != nil {
		return nil, err
	}
	slog.Debug("Calling endpoint", "method", "POST", "endpoint", endpoint)
	req, err := ghttp.NewJsonRequest("POST", baseURL+endpoint, payload)
	if err != nil {
		return nil, err
	}
	resp, callErr := ghttp.Call(req, nil)
	if m, ok := resp.(map[string]any); ok {
		if detail, ok := m["detail"].(string); ok {
			return nil, core.NewRamError(detail)
		}
	}
	if callErr != nil {
		return nil, fmt.Errorf("cannot reach ramtool server at %s: %w", baseURL, callErr)
	}
	return fromAny[T](resp)
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromAny[T any](v any) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unexpected server response: %w", err)
	}
	return &out, nil
}

func (r *remoteEngine) Solve(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (any, error) {
	endpoint := "/api/solve/" + string(kind)
	switch kind {
	case services.SolveRbd:
		return postJSON[solver.SolveRbdResponse](r.baseURL, endpoint, scenario)
	case services.SolveAvailability:
		return postJSON[solver.SolveAvailabilityResponse](r.baseURL, endpoint, scenario)
	}
	return nil, core.NewRamErrorf("Unknown solve kind '%s'.", kind)
}

func (r *remoteEngine) Convert(req *core.ConvertRequest) (*core.ConvertResponse, error) {
	return postJSON[core.ConvertResponse](r.baseURL, "/api/convert", req)
}

func (r *remoteEngine) Validate(scenario *solver.Scenario) (*solver.ValidationResult, error) {
	return postJSON[solver.ValidationResult](r.baseURL, "/api/validate", scenario)
}

func (r *remoteEngine) Formulas(ctx context.Context, kind services.SolveKind, scenario *solver.Scenario) (*formulas.Context, error) {
	return postJSON[formulas.Context](r.baseURL, "/api/formulas/"+string(kind), scenario)
}

// loadScenario reads the scenario named by --template or --file.
func loadScenario(stdin io.Reader) (*solver.Scenario, error) {
	if templateName != "" {
		tpl, err := services.GetTemplate(templateName)
		if err != nil {
			return nil, err
		}
		return tpl.Scenario, nil
	}
	if scenarioFile == "" {
		return nil, fmt.Errorf("a scenario is required: pass --file or --template")
	}

	var data []byte
	var err error
	if scenarioFile == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(scenarioFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var scenario solver.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", scenarioFile, err)
	}
	return &scenario, nil
}
