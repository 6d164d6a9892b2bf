package services

import (
	"context"
	"errors"
	"time"

	"github.com/panyam/ramtool/solver"
)

var ErrNoSuchEntity = errors.New("entity not found")

// ScenarioRecord is a named, persisted scenario.
type ScenarioRecord struct {
	Id        string           `json:"id"`
	Name      string           `json:"name"`
	Scenario  *solver.Scenario `json:"scenario"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ScenarioStore persists scenario records.  Get and Delete return
// ErrNoSuchEntity for unknown ids.  List is ordered by id.
type ScenarioStore interface {
	Get(ctx context.Context, id string) (*ScenarioRecord, error)
	Save(ctx context.Context, rec *ScenarioRecord) error
	List(ctx context.Context) ([]*ScenarioRecord, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
