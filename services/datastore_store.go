package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/panyam/ramtool/solver"
)

const ScenarioKind = "RamScenario"

// DataStore is a thin typed wrapper over one Datastore kind keyed by name.
type DataStore[T any] struct {
	DSClient *datastore.Client
	kind     string
}

func NewDataStore[T any](client *datastore.Client, kind string) *DataStore[T] {
	return &DataStore[T]{DSClient: client, kind: kind}
}

func (ds *DataStore[T]) Kind() string { return ds.kind }

func (ds *DataStore[T]) key(id string) *datastore.Key {
	return datastore.NameKey(ds.kind, id, nil)
}

func (ds *DataStore[T]) GetByID(ctx context.Context, id string, out *T) error {
	err := ds.DSClient.Get(ctx, ds.key(id), out)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return ErrNoSuchEntity
	}
	if err != nil {
		slog.Error("Error getting by ID", "kind", ds.kind, "id", id, "err", err)
	}
	return err
}

func (ds *DataStore[T]) Put(ctx context.Context, id string, entity *T) error {
	_, err := ds.DSClient.Put(ctx, ds.key(id), entity)
	return err
}

func (ds *DataStore[T]) DeleteByID(ctx context.Context, id string) error {
	return ds.DSClient.Delete(ctx, ds.key(id))
}

// All returns every entity of the kind with its key name, ordered by key.
func (ds *DataStore[T]) All(ctx context.Context) (ids []string, out []*T, err error) {
	keys, err := ds.DSClient.GetAll(ctx, datastore.NewQuery(ds.kind).Order("__key__"), &out)
	if err != nil {
		slog.Error("error listing entities", "kind", ds.kind, "err", err)
		return nil, nil, err
	}
	for _, k := range keys {
		ids = append(ids, k.Name)
	}
	return
}

type scenarioEntity struct {
	Name      string
	Body      string `datastore:",noindex"`
	UpdatedAt time.Time
}

// DatastoreStore keeps scenarios as RamScenario entities in Cloud Datastore.
type DatastoreStore struct {
	client *datastore.Client
	table  *DataStore[scenarioEntity]
}

func NewDatastoreStore(ctx context.Context, projectID string) (*DatastoreStore, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("datastore client: %w", err)
	}
	return &DatastoreStore{client: client, table: NewDataStore[scenarioEntity](client, ScenarioKind)}, nil
}

func (s *DatastoreStore) Get(ctx context.Context, id string) (*ScenarioRecord, error) {
	var entity scenarioEntity
	if err := s.table.GetByID(ctx, id, &entity); err != nil {
		return nil, err
	}
	return entityToRecord(id, &entity)
}

func (s *DatastoreStore) Save(ctx context.Context, rec *ScenarioRecord) error {
	if err := ValidateID(rec.Id); err != nil {
		return err
	}
	body, err := json.Marshal(rec.Scenario)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario %s: %w", rec.Id, err)
	}
	return s.table.Put(ctx, rec.Id, &scenarioEntity{Name: rec.Name, Body: string(body), UpdatedAt: rec.UpdatedAt.UTC()})
}

func (s *DatastoreStore) List(ctx context.Context) ([]*ScenarioRecord, error) {
	ids, entities, err := s.table.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*ScenarioRecord, 0, len(entities))
	for i, entity := range entities {
		rec, err := entityToRecord(ids[i], entity)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Delete checks existence first; Datastore deletes of missing keys succeed.
func (s *DatastoreStore) Delete(ctx context.Context, id string) error {
	var entity scenarioEntity
	if err := s.table.GetByID(ctx, id, &entity); err != nil {
		return err
	}
	return s.table.DeleteByID(ctx, id)
}

func (s *DatastoreStore) Close() error { return s.client.Close() }

func entityToRecord(id string, entity *scenarioEntity) (*ScenarioRecord, error) {
	scenario := &solver.Scenario{}
	if err := json.Unmarshal([]byte(entity.Body), scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", id, err)
	}
	return &ScenarioRecord{Id: id, Name: entity.Name, Scenario: scenario, UpdatedAt: entity.UpdatedAt}, nil
}
