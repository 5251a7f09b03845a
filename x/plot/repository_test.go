package plot

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

	created, err := repo.Create(ctx, core.Plot{
		ID:          xid.New().String(),
		UserID:      owner,
		Title:       "The Fall of the Capital",
		Chapter:     "12",
		Type:        "Climax",
		Description: "The siege that ends the second act",
		Conflicts:   "Elara against her former mentor",
	})
	if assert.NoError(t, err) {
		assert.NotZero(t, created.CDate)
	}

	listed, err := repo.List(ctx, owner, "siege")
	if assert.NoError(t, err) {
		assert.Len(t, listed, 1)
	}

	updated, err := repo.Update(ctx, owner, created.ID, map[string]any{
		"resolution": "The city falls but the archive survives",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "The Fall of the Capital", updated.Title)
		assert.Equal(t, "The city falls but the archive survives", updated.Resolution)
	}

	stranger := xid.New().String()
	_, err = repo.Delete(ctx, stranger, created.ID)
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	deleted, err := repo.Delete(ctx, owner, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, deleted.ID)
	}
}
