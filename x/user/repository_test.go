package user

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

	created, err := repo.Create(ctx, core.User{
		ID:    xid.New().String(),
		Name:  "Morgan Reyes",
		Email: "morgan@example.com",
	})
	if assert.NoError(t, err) {
		assert.NotZero(t, created.CDate)
	}

	// the unique index guards email regardless of the rest of the row
	_, err = repo.Create(ctx, core.User{
		ID:    xid.New().String(),
		Name:  "Another Morgan",
		Email: "morgan@example.com",
	})
	assert.ErrorAs(t, err, &core.ErrorAlreadyExists{})

	_, err = repo.Create(ctx, core.User{
		ID:    xid.New().String(),
		Name:  "No Address",
		Email: "not-an-email",
	})
	assert.ErrorAs(t, err, &core.ErrorValidation{})

	found, err := repo.GetByEmail(ctx, "morgan@example.com")
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, found.ID)
	}

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	listed, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, listed, 1)
	}

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(1), count)
	}
}
