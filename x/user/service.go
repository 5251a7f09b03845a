package user

import (
	"context"

	"github.com/rs/xid"

	"github.com/lorekeep/lorekeep/core"
)

// Service is the interface for user service
type Service interface {
	Create(ctx context.Context, user core.User) (core.User, error)
	Get(ctx context.Context, id string) (core.User, error)
	GetByEmail(ctx context.Context, email string) (core.User, error)
	List(ctx context.Context) ([]core.User, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Count returns the total number of users
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "User.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// Create stamps the account with a generated id and stores it
func (s *service) Create(ctx context.Context, user core.User) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.Create")
	defer span.End()

	if user.ID != "" {
		return core.User{}, core.NewErrorValidation("id must be empty")
	}
	user.ID = xid.New().String()

	return s.repo.Create(ctx, user)
}

func (s *service) Get(ctx context.Context, id string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.GetByEmail")
	defer span.End()

	return s.repo.GetByEmail(ctx, email)
}

func (s *service) List(ctx context.Context) ([]core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.List")
	defer span.End()

	return s.repo.List(ctx)
}
