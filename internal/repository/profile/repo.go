package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamarack-health/matchd/internal/db"
	"github.com/tamarack-health/matchd/internal/domain"
)

// Key returns the storage key for a profile ID.
func Key(id string) string {
	return domain.KeyPrefix + "profile:" + id
}

// IndexName is the FT index over profile hashes.
const IndexName = domain.KeyPrefix + "profile:idx"

// store is the consumer interface for profile persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// IndexParams holds tunables for the profile vector index.
type IndexParams struct {
	Dimensions      int
	HNSWM           int
	HNSWEFConstruct int
}

// Entry pairs a profile with its summary embedding for ingest.
type Entry struct {
	Record domain.CandidateRecord
	Vector []float32
}

// Repo implements profile persistence over a hash store with an FT index.
type Repo struct {
	store store
}

// New creates a profile repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexDefinition builds the FT schema for profile hashes.
func IndexDefinition(p IndexParams) *db.IndexDefinition {
	dims := p.Dimensions
	if dims <= 0 {
		dims = domain.DefaultVectorDimensions
	}

	tag := func(name string) db.IndexField {
		return db.IndexField{Name: name, Type: db.IndexFieldTag, TagSeparator: ","}
	}

	return &db.IndexDefinition{
		Name:     IndexName,
		Prefixes: []string{domain.KeyPrefix + "profile:"},
		Fields: []db.IndexField{
			tag(fieldGender),
			tag(fieldEthnicity),
			tag(fieldSexuality),
			tag(fieldFaith),
			tag(fieldLanguages),
			tag(fieldAvailability),
			tag(fieldFormat),
			{Name: fieldInitialPrice, Type: db.IndexFieldNumeric},
			{Name: fieldSubsequentPrice, Type: db.IndexFieldNumeric},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dims,
				VectorDistance:    db.DistanceCosine,
				VectorM:           p.HNSWM,
				VectorEFConstruct: p.HNSWEFConstruct,
			},
		},
	}
}

// EnsureIndex creates the profile index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, p IndexParams) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, IndexDefinition(p)); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Put stores a single profile with its embedding.
func (r *Repo) Put(ctx context.Context, rec *domain.CandidateRecord, vector []float32) error {
	if rec.ID == "" {
		return errors.New("profile id is required")
	}
	if err := r.store.HSet(ctx, Key(rec.ID), buildHashFields(rec, vector)); err != nil {
		return fmt.Errorf("put profile %s: %w", rec.ID, err)
	}
	return nil
}

// PutMulti stores a batch of profiles in one round-trip.
func (r *Repo) PutMulti(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Record.ID == "" {
			return errors.New("profile id is required")
		}
		items = append(items, db.HashSetItem{
			Key:    Key(e.Record.ID),
			Fields: buildHashFields(&e.Record, e.Vector),
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("put profiles: %w", err)
	}
	return nil
}

// Get returns a profile by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.CandidateRecord, error) {
	m, err := r.store.HGetAll(ctx, Key(id))
	if err != nil {
		return domain.CandidateRecord{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.CandidateRecord{}, domain.ErrProfileNotFound
	}
	return RecordFromFields(id, m), nil
}

// Delete removes a profile.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, Key(id))
	if err != nil {
		return fmt.Errorf("check exists %s: %w", id, err)
	}
	if !exists {
		return domain.ErrProfileNotFound
	}
	if err := r.store.Del(ctx, Key(id)); err != nil {
		return fmt.Errorf("del profile %s: %w", id, err)
	}
	return nil
}
