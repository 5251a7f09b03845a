package character

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/internal/testutil"
)

func TestRepository(t *testing.T) {

	var ctx = context.Background()

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	mc, cleanup_mc := testutil.CreateMC()
	defer cleanup_mc()

	repo := NewRepository(db, mc)

	alice := xid.New().String()
	bob := xid.New().String()

	created, err := repo.Create(ctx, core.Character{
		ID:          xid.New().String(),
		UserID:      alice,
		Name:        "Elara Moonwhisper",
		Role:        "Protagonist",
		Description: "An elven ranger who guards the northern woods",
	})
	if assert.NoError(t, err) {
		assert.NotZero(t, created.ID)
		assert.NotZero(t, created.CDate)
	}

	// owner mismatch is indistinguishable from absence
	_, err = repo.Get(ctx, bob, created.ID)
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	found, err := repo.Get(ctx, alice, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, found.ID)
	}

	_, err = repo.Create(ctx, core.Character{
		ID:          xid.New().String(),
		UserID:      bob,
		Name:        "Grimble",
		Role:        "Villain",
		Description: "A goblin warlord",
	})
	assert.NoError(t, err)

	listed, err := repo.List(ctx, alice, "")
	if assert.NoError(t, err) {
		assert.Len(t, listed, 1)
		assert.Equal(t, created.ID, listed[0].ID)
	}

	// search is case-insensitive and matches substrings
	listed, err = repo.List(ctx, alice, "MOONWHISPER")
	if assert.NoError(t, err) {
		assert.Len(t, listed, 1)
	}

	listed, err = repo.List(ctx, alice, "goblin")
	if assert.NoError(t, err) {
		assert.Len(t, listed, 0)
	}

	// a patch only overwrites the keys it carries
	updated, err := repo.Update(ctx, alice, created.ID, map[string]any{
		"role": "Antihero",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "Antihero", updated.Role)
		assert.Equal(t, "Elara Moonwhisper", updated.Name)
	}

	// constraint violations reject the whole patch
	_, err = repo.Update(ctx, alice, created.ID, map[string]any{
		"name": strings.Repeat("x", 101),
	})
	assert.ErrorAs(t, err, &core.ErrorValidation{})

	unchanged, err := repo.Get(ctx, alice, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "Elara Moonwhisper", unchanged.Name)
	}

	_, err = repo.Update(ctx, bob, created.ID, map[string]any{"role": "Stolen"})
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	deleted, err := repo.Delete(ctx, alice, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, deleted.ID)
	}

	_, err = repo.Get(ctx, alice, created.ID)
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	_, err = repo.Delete(ctx, alice, created.ID)
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(1), count)
	}
}
