package services

import (
	"fmt"
	"sort"

	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/solver"
)

// Template is a named starting scenario.
type Template struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Scenario    *solver.Scenario `json:"scenario"`
}

// DefaultScenario is the empty series scenario a fresh session starts from.
func DefaultScenario() *solver.Scenario {
	return &solver.Scenario{
		Id:           "demo",
		Structure:    solver.Series{},
		Components:   []solver.Component{},
		PlotSettings: solver.PlotSettings{TMax: 1000, Samples: 200},
	}
}

// NewComponent returns the index-th (1 based) placeholder component with
// an exponential distribution and no parameters yet.
func NewComponent(index int) solver.Component {
	return solver.Component{
		Id:           fmt.Sprintf("comp-%d", index),
		Name:         fmt.Sprintf("Component %d", index),
		Distribution: core.Distribution{Type: core.Exponential},
		Enabled:      true,
	}
}

func withRate(id, name string, lambda float64, mttr *float64) solver.Component {
	return solver.Component{Id: id, Name: name, Distribution: core.ExponentialLambda(lambda), MTTR: mttr, Enabled: true}
}

func withMTBF(id, name string, mtbf float64, mttr *float64) solver.Component {
	return solver.Component{Id: id, Name: name, Distribution: core.ExponentialMTBF(mtbf), MTTR: mttr, Enabled: true}
}

var templateBuilders = map[string]func() *Template{
	"series-demo": func() *Template {
		s := DefaultScenario()
		s.Id = "series-demo"
		s.Components = []solver.Component{
			withRate("c1", "Component 1", 0.001, nil),
			withRate("c2", "Component 2", 0.001, nil),
			withRate("c3", "Component 3", 0.001, nil),
		}
		return &Template{Name: "series-demo", Description: "Three identical components in series.", Scenario: s}
	},
	"redundant-pair": func() *Template {
		s := DefaultScenario()
		s.Id = "redundant-pair"
		s.Structure = solver.Parallel{}
		s.Components = []solver.Component{
			withMTBF("p1", "Pump A", 2000, core.Ptr(24.0)),
			withMTBF("p2", "Pump B", 2000, core.Ptr(24.0)),
		}
		return &Template{Name: "redundant-pair", Description: "Two redundant pumps in parallel.", Scenario: s}
	},
	"two-of-three": func() *Template {
		s := DefaultScenario()
		s.Id = "two-of-three"
		s.Structure = solver.KofN{K: core.Ptr(2), N: core.Ptr(3)}
		s.PlotSettings.TMax = 5000
		s.Components = []solver.Component{
			withRate("s1", "Sensor 1", 0.0002, core.Ptr(8.0)),
			withRate("s2", "Sensor 2", 0.0002, core.Ptr(8.0)),
			withRate("s3", "Sensor 3", 0.0002, core.Ptr(8.0)),
		}
		return &Template{Name: "two-of-three", Description: "2-out-of-3 voting sensors.", Scenario: s}
	},
	"repairable-pump": func() *Template {
		s := DefaultScenario()
		s.Id = "repairable-pump"
		s.PlotSettings.TMax = 200
		s.Components = []solver.Component{withRate("pump", "Pump", 0.0025, core.Ptr(8.0))}
		return &Template{Name: "repairable-pump", Description: "Single repairable pump for transient A(t).", Scenario: s}
	},
}

// TemplateNames lists the built in templates in name order.
func TemplateNames() []string {
	names := make([]string, 0, len(templateBuilders))
	for name := range templateBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTemplate returns a fresh copy of a built in template.
func GetTemplate(name string) (*Template, error) {
	build, ok := templateBuilders[name]
	if !ok {
		return nil, core.NewRamErrorf("Unknown template '%s'.", name).WithStatus(404)
	}
	return build(), nil
}

func ListTemplates() []*Template {
	out := make([]*Template, 0, len(templateBuilders))
	for _, name := range TemplateNames() {
		out = append(out, templateBuilders[name]())
	}
	return out
}
