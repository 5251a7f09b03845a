package character

import (
	"context"

	"github.com/rs/xid"

	"github.com/lorekeep/lorekeep/core"
)

// Service is the interface for character service
type Service interface {
	Create(ctx context.Context, character core.Character) (core.Character, error)
	Get(ctx context.Context, owner string, id string) (core.Character, error)
	List(ctx context.Context, owner string, search string) ([]core.Character, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Character, error)
	Delete(ctx context.Context, owner string, id string) (core.Character, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new character service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Count returns the total number of characters
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// Create stamps the owner-assigned record with a generated id and stores it
func (s *service) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	if character.ID != "" {
		return core.Character{}, core.NewErrorValidation("id must be empty")
	}
	character.ID = xid.New().String()

	return s.repo.Create(ctx, character)
}

func (s *service) Get(ctx context.Context, owner string, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	return s.repo.Get(ctx, owner, id)
}

func (s *service) List(ctx context.Context, owner string, search string) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	return s.repo.List(ctx, owner, search)
}

func (s *service) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Update")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Character{}, core.NewErrorMalformedID()
	}

	return s.repo.Update(ctx, owner, id, patch)
}

func (s *service) Delete(ctx context.Context, owner string, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Delete")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Character{}, core.NewErrorMalformedID()
	}

	return s.repo.Delete(ctx, owner, id)
}
