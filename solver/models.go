package solver

import (
	"encoding/json"
	"fmt"

	"github.com/panyam/ramtool/core"
)

// StructureKind is the wire tag of a Structure.
type StructureKind string

const (
	KindSeries   StructureKind = "series"
	KindParallel StructureKind = "parallel"
	KindKofN     StructureKind = "kofn"
)

// Structure is the logical arrangement of the active components.  It is a
// closed set of variants: Series, Parallel, KofN, plus UnsupportedStructure
// for tags the engine does not know.
type Structure interface {
	Kind() StructureKind
	isStructure()
}

// Series is up only when every component is up.
type Series struct{}

// Parallel is up when at least one component is up.
type Parallel struct{}

// KofN is up when at least K of N components are up.  Both values are kept
// as supplied and checked by ResolveKofN; a nil N means "number of active
// components".
type KofN struct {
	K *int `json:"k,omitempty"`
	N *int `json:"n,omitempty"`
}

// UnsupportedStructure preserves an unknown tag so the solvers can reject it.
type UnsupportedStructure struct {
	Tag StructureKind
}

func (Series) Kind() StructureKind                 { return KindSeries }
func (Parallel) Kind() StructureKind               { return KindParallel }
func (KofN) Kind() StructureKind                   { return KindKofN }
func (u UnsupportedStructure) Kind() StructureKind { return u.Tag }

func (Series) isStructure()               {}
func (Parallel) isStructure()             {}
func (KofN) isStructure()                 {}
func (UnsupportedStructure) isStructure() {}

// structureWire is the {kind, k, n} shape used on the wire.  k and n are
// read as numbers so that 2.0 is accepted and 1.5 gets the domain message.
type structureWire struct {
	Kind StructureKind `json:"kind"`
	K    *float64      `json:"k,omitempty"`
	N    *float64      `json:"n,omitempty"`
}

// wireInt narrows an optional JSON number to an int.  Integral floats are
// accepted; anything else fails with message.
func wireInt(v *float64, message string) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, err := core.EnsureIntegerInRange(v, message, core.Range{})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func wireFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	return core.Ptr(float64(*v))
}

// MarshalStructure encodes any Structure into its wire form.
func MarshalStructure(s Structure) ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	w := structureWire{Kind: s.Kind()}
	if kofn, ok := s.(KofN); ok {
		w.K, w.N = wireFloat(kofn.K), wireFloat(kofn.N)
	}
	return json.Marshal(w)
}

// UnmarshalStructure decodes a wire structure.  k and n are dropped for any
// kind other than kofn.
func UnmarshalStructure(data []byte) (Structure, error) {
	var w structureWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("invalid structure: %w", err)
	}
	switch w.Kind {
	case KindSeries:
		return Series{}, nil
	case KindParallel:
		return Parallel{}, nil
	case KindKofN:
		k, err := wireInt(w.K, kofnKMessage)
		if err != nil {
			return nil, err
		}
		n, err := wireInt(w.N, kofnBoundMessage)
		if err != nil {
			return nil, err
		}
		return KofN{K: k, N: n}, nil
	default:
		return UnsupportedStructure{Tag: w.Kind}, nil
	}
}

// Component is one block of the diagram.
type Component struct {
	Id           string            `json:"id"`
	Name         string            `json:"name"`
	Distribution core.Distribution `json:"distribution"`
	MTTR         *float64          `json:"mttr,omitempty"`
	Enabled      bool              `json:"enabled"`
}

// PlotSettings is the sampled time window.
type PlotSettings struct {
	TMax     float64 `json:"tMax"`
	Samples  int     `json:"samples"`
	LogScale bool    `json:"logScale,omitempty"`
}

func (p *PlotSettings) UnmarshalJSON(data []byte) error {
	var w struct {
		TMax     float64  `json:"tMax"`
		Samples  *float64 `json:"samples"`
		LogScale bool     `json:"logScale"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	samples, err := wireInt(w.Samples, "Samples must be >= 2.")
	if err != nil {
		return err
	}
	*p = PlotSettings{TMax: w.TMax, LogScale: w.LogScale}
	if samples != nil {
		p.Samples = *samples
	}
	return nil
}

// Scenario is the sole input to both solvers.  Solvers never modify it.
type Scenario struct {
	Id           string       `json:"id"`
	Structure    Structure    `json:"-"`
	Components   []Component  `json:"components"`
	PlotSettings PlotSettings `json:"plotSettings"`
}

type scenarioAlias Scenario

type scenarioWire struct {
	scenarioAlias
	Structure json.RawMessage `json:"structure"`
}

func (s Scenario) MarshalJSON() ([]byte, error) {
	structure, err := MarshalStructure(s.Structure)
	if err != nil {
		return nil, err
	}
	w := scenarioWire{scenarioAlias: scenarioAlias(s), Structure: structure}
	if w.Components == nil {
		w.Components = []Component{}
	}
	return json.Marshal(w)
}

func (s *Scenario) UnmarshalJSON(data []byte) error {
	var w scenarioWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Scenario(w.scenarioAlias)
	if len(w.Structure) == 0 || string(w.Structure) == "null" {
		s.Structure = Series{}
		return nil
	}
	structure, err := UnmarshalStructure(w.Structure)
	if err != nil {
		return err
	}
	s.Structure = structure
	return nil
}

// ActiveComponents returns the enabled components in their original order.
func (s *Scenario) ActiveComponents() []Component {
	out := make([]Component, 0, len(s.Components))
	for _, c := range s.Components {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// --- Results ---

type ReliabilityCurve struct {
	T []float64 `json:"t"`
	R []float64 `json:"r"`
}

type SolveKpis struct {
	RT0   float64 `json:"R_t0"`
	T0    float64 `json:"t0"`
	RTmax float64 `json:"R_tmax"`
	Tmax  float64 `json:"tmax"`
}

type SolveRbdResponse struct {
	RCurve   ReliabilityCurve `json:"r_curve"`
	Kpis     SolveKpis        `json:"kpis"`
	Warnings []string         `json:"warnings"`
	// Lambdas are the resolved failure rates of the active components, in
	// scenario order.
	Lambdas []float64 `json:"lambdas"`
}

type AvailabilityCurve struct {
	T []float64 `json:"t"`
	A []float64 `json:"a"`
}

type AvailabilityKpis struct {
	ASS   float64 `json:"A_ss"`
	AT0   float64 `json:"A_t0"`
	ATmax float64 `json:"A_tmax"`
	T0    float64 `json:"t0"`
	Tmax  float64 `json:"tmax"`
}

type SolveAvailabilityResponse struct {
	ACurve   AvailabilityCurve `json:"a_curve"`
	Kpis     AvailabilityKpis  `json:"kpis"`
	Warnings []string          `json:"warnings"`
}

type DistributionReliabilityRequest struct {
	Distribution core.Distribution `json:"distribution"`
	T            []float64         `json:"t"`
}

type DistributionReliabilityResponse struct {
	R     []float64 `json:"r"`
	Notes string    `json:"notes"`
}
