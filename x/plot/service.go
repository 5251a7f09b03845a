package plot

import (
	"context"

	"github.com/rs/xid"

	"github.com/lorekeep/lorekeep/core"
)

// Service is the interface for plot service
type Service interface {
	Create(ctx context.Context, plot core.Plot) (core.Plot, error)
	Get(ctx context.Context, owner string, id string) (core.Plot, error)
	List(ctx context.Context, owner string, search string) ([]core.Plot, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Plot, error)
	Delete(ctx context.Context, owner string, id string) (core.Plot, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new plot service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Count returns the total number of plots
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// Create stamps the record with a generated id and stores it
func (s *service) Create(ctx context.Context, plot core.Plot) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.Create")
	defer span.End()

	if plot.ID != "" {
		return core.Plot{}, core.NewErrorValidation("id must be empty")
	}
	plot.ID = xid.New().String()

	return s.repo.Create(ctx, plot)
}

func (s *service) Get(ctx context.Context, owner string, id string) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.Get")
	defer span.End()

	return s.repo.Get(ctx, owner, id)
}

func (s *service) List(ctx context.Context, owner string, search string) ([]core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.List")
	defer span.End()

	return s.repo.List(ctx, owner, search)
}

func (s *service) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.Update")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Plot{}, core.NewErrorMalformedID()
	}

	return s.repo.Update(ctx, owner, id, patch)
}

func (s *service) Delete(ctx context.Context, owner string, id string) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Service.Delete")
	defer span.End()

	if _, err := xid.FromString(id); err != nil {
		return core.Plot{}, core.NewErrorMalformedID()
	}

	return s.repo.Delete(ctx, owner, id)
}
