package place

import (
	"context"
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

	owner := xid.New().String()

	thornwood, err := repo.Create(ctx, core.Place{
		ID:          xid.New().String(),
		UserID:      owner,
		Name:        "Thornwood Forest",
		Type:        "Wilderness",
		Description: "A dense forest where the old roads end",
		Atmosphere:  "Perpetual twilight beneath the canopy",
	})
	assert.NoError(t, err)

	library, err := repo.Create(ctx, core.Place{
		ID:          xid.New().String(),
		UserID:      owner,
		Name:        "The Old Library",
		Type:        "Building",
		Description: "A crumbling archive at the heart of the capital",
	})
	assert.NoError(t, err)

	// newest first
	listed, err := repo.List(ctx, owner, "")
	if assert.NoError(t, err) && assert.Len(t, listed, 2) {
		assert.Equal(t, library.ID, listed[0].ID)
		assert.Equal(t, thornwood.ID, listed[1].ID)
	}

	listed, err = repo.List(ctx, owner, "lib")
	if assert.NoError(t, err) && assert.Len(t, listed, 1) {
		assert.Equal(t, "The Old Library", listed[0].Name)
	}

	listed, err = repo.List(ctx, owner, "WILDERNESS")
	if assert.NoError(t, err) && assert.Len(t, listed, 1) {
		assert.Equal(t, thornwood.ID, listed[0].ID)
	}

	updated, err := repo.Update(ctx, owner, thornwood.ID, map[string]any{
		"description": "A dense forest, recently burned at its edges",
		"history":     "Once the seat of the elder court",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "A dense forest, recently burned at its edges", updated.Description)
		assert.Equal(t, "Once the seat of the elder court", updated.History)
		assert.Equal(t, "Perpetual twilight beneath the canopy", updated.Atmosphere)
	}

	_, err = repo.Update(ctx, owner, thornwood.ID, map[string]any{
		"image_url": "not a url",
	})
	assert.ErrorAs(t, err, &core.ErrorValidation{})

	deleted, err := repo.Delete(ctx, owner, library.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "The Old Library", deleted.Name)
	}

	listed, err = repo.List(ctx, owner, "")
	if assert.NoError(t, err) {
		assert.Len(t, listed, 1)
	}
}
