package place

import (
	"context"

	"github.com/rs/xid"

	"github.com/lorekeep/lorekeep/core"
)

// Service is the interface for place service
type Service interface {
	Create(ctx context.Context, place core.Place) (core.Place, error)
	Get(ctx context.Context, owner string, id string) (core.Place, error)
	List(ctx context.Context, owner string, search string) ([]core.Place, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Place, error)
	Delete(ctx context.Context, owner string, id string) (core.Place, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new place service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Count returns the total number of places
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// Create stamps the record with a generated id and stores it
func (s *service) Create(ctx context.Context, place core.Place) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.Create")
	defer span.End()

	if place.ID != "" {
		return core.Place{}, core.NewErrorValidation("id must be empty")
	}
	place.ID = xid.New().String()

	return s.repo.Create(ctx, place)
}

func (s *service) Get(ctx context.Context, owner string, id string) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.Get")
	defer span.End()

	return s.repo.Get(ctx, owner, id)
}

func (s *service) List(ctx context.Context, owner string, search string) ([]core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.List")
	defer span.End()

	return s.repo.List(ctx, owner, search)
}

func (s *service) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.Update")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Place{}, core.NewErrorMalformedID()
	}

	return s.repo.Update(ctx, owner, id, patch)
}

func (s *service) Delete(ctx context.Context, owner string, id string) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Service.Delete")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Place{}, core.NewErrorMalformedID()
	}

	return s.repo.Delete(ctx, owner, id)
}
