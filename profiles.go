package matchd

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamarack-health/matchd/internal/domain"
	profilerepo "github.com/tamarack-health/matchd/internal/repository/profile"
)

// ProfileService manages therapist profiles in the search index.
type ProfileService struct {
	repo     *profilerepo.Repo
	embedder domain.Embedder
}

// Upsert stores a profile, embedding its summary (or bio) for retrieval.
func (p *ProfileService) Upsert(ctx context.Context, t *Therapist) error {
	text := profileText(t)
	if text == "" {
		return errors.New("profile needs a summary or bio to be searchable")
	}

	result, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed profile %s: %w", t.ID, err)
	}

	rec := therapistToDomain(t)
	if err := p.repo.Put(ctx, &rec, result.Embedding); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// UpsertBatch stores profiles in one round-trip, embedding all summaries in a
// single provider call.
func (p *ProfileService) UpsertBatch(ctx context.Context, ts []Therapist) error {
	if len(ts) == 0 {
		return nil
	}

	texts := make([]string, len(ts))
	for i := range ts {
		texts[i] = profileText(&ts[i])
		if texts[i] == "" {
			return fmt.Errorf("profile %s needs a summary or bio to be searchable", ts[i].ID)
		}
	}

	result, err := p.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed profiles: %w", err)
	}

	entries := make([]profilerepo.Entry, len(ts))
	for i := range ts {
		entries[i] = profilerepo.Entry{
			Record: therapistToDomain(&ts[i]),
			Vector: result.Embeddings[i],
		}
	}
	if err := p.repo.PutMulti(ctx, entries); err != nil {
		return fmt.Errorf("store profiles: %w", err)
	}
	return nil
}

// Get returns a profile by ID.
func (p *ProfileService) Get(ctx context.Context, id string) (Therapist, error) {
	rec, err := p.repo.Get(ctx, id)
	if err != nil {
		return Therapist{}, fmt.Errorf("get profile: %w", err)
	}
	return therapistFromDomain(&rec), nil
}

// Delete removes a profile from the index.
func (p *ProfileService) Delete(ctx context.Context, id string) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func profileText(t *Therapist) string {
	if t.Summary != "" {
		return t.Summary
	}
	return t.Bio
}
