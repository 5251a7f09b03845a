package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/internal/testutil"
	"github.com/lorekeep/lorekeep/util"
	"github.com/lorekeep/lorekeep/x/user"
)

func TestService(t *testing.T) {

	var ctx = context.Background()

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	rdb, cleanup_rdb := testutil.CreateRDB()
	defer cleanup_rdb()

	mc, cleanup_mc := testutil.CreateMC()
	defer cleanup_mc()

	conf := util.Config{}
	conf.Lorekeep.FQDN = "lorekeep.example.com"
	conf.Lorekeep.JwtSecret = "unittest-secret"
	conf.Lorekeep.TokenTTLHours = 1

	userService := user.NewService(user.NewRepository(db, mc))
	test_service := NewService(NewRepository(rdb), userService, conf)

	created, token, err := test_service.Register(ctx, "Elara Author", "author@example.com", "correct-horse-battery", "", nil)
	if assert.NoError(t, err) {
		assert.NotZero(t, created.ID)
		assert.NotZero(t, token)
		assert.NotEqual(t, "correct-horse-battery", created.PasswordHash)
	}

	_, _, err = test_service.Register(ctx, "Elara Again", "author@example.com", "another-password", "", nil)
	assert.ErrorAs(t, err, &core.ErrorAlreadyExists{})

	_, _, err = test_service.Register(ctx, "Short", "short@example.com", "tiny", "", nil)
	assert.ErrorAs(t, err, &core.ErrorValidation{})

	// unknown email and wrong password answer identically
	_, err = test_service.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = test_service.Login(ctx, "author@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := test_service.Login(ctx, "author@example.com", "correct-horse-battery")
	assert.NoError(t, err)

	claims, err := test_service.ParseToken(ctx, session)
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, claims.Subject)
		assert.NotZero(t, claims.ID)
	}

	// logout revokes the presented token without touching others
	err = test_service.Logout(ctx, claims)
	assert.NoError(t, err)

	_, err = test_service.ParseToken(ctx, session)
	assert.Error(t, err)

	_, err = test_service.ParseToken(ctx, token)
	assert.NoError(t, err)
}
