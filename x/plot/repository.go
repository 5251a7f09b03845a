package plot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/lorekeep/lorekeep/core"
)

// Repository is the interface for plot repository
type Repository interface {
	Create(ctx context.Context, plot core.Plot) (core.Plot, error)
	Get(ctx context.Context, owner string, id string) (core.Plot, error)
	List(ctx context.Context, owner string, search string) ([]core.Plot, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Plot, error)
	Delete(ctx context.Context, owner string, id string) (core.Plot, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new plot repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.Plot{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count plots",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "plot_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the cached total number of plots
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("plot_count")
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return strconv.ParseInt(string(item.Value), 10, 64)
}

func (r *repository) refreshCount(ctx context.Context) {
	var count int64
	err := r.db.WithContext(ctx).Model(&core.Plot{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count plots",
			slog.String("error", err.Error()),
		)
		return
	}
	r.mc.Set(&memcache.Item{Key: "plot_count", Value: []byte(strconv.FormatInt(count, 10))})
}

// Create stores a new plot after running the schema constraints
func (r *repository) Create(ctx context.Context, plot core.Plot) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.Create")
	defer span.End()

	if err := core.ValidateRecord(plot); err != nil {
		span.RecordError(err)
		return core.Plot{}, err
	}

	err := r.db.WithContext(ctx).Create(&plot).Error
	if err != nil {
		span.RecordError(err)
		return core.Plot{}, err
	}

	r.refreshCount(ctx)

	return plot, nil
}

// Get returns a plot by id, scoped to its owner
func (r *repository) Get(ctx context.Context, owner string, id string) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.Get")
	defer span.End()

	var plot core.Plot
	err := r.db.WithContext(ctx).First(&plot, "id = ? AND user_id = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Plot{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Plot{}, err
	}

	return plot, nil
}

// List returns all plots owned by owner, newest first, optionally
// narrowed by a case-insensitive substring over title, type, description.
func (r *repository) List(ctx context.Context, owner string, search string) ([]core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.List")
	defer span.End()

	query := r.db.WithContext(ctx).Where("user_id = ?", owner)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR type ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var plots []core.Plot
	if err := query.Order("c_date DESC").Find(&plots).Error; err != nil {
		span.RecordError(err)
		return []core.Plot{}, err
	}
	if plots == nil {
		return []core.Plot{}, nil
	}

	return plots, nil
}

// Update applies a partial edit as one conditional write matching both the
// id and the owner; zero affected rows is NotFound.
func (r *repository) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.Update")
	defer span.End()

	merged, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Plot{}, err
	}

	applyPatch(&merged, patch)
	if err := core.ValidateRecord(merged); err != nil {
		span.RecordError(err)
		return core.Plot{}, err
	}

	result := r.db.WithContext(ctx).Model(&core.Plot{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(patch)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.Plot{}, result.Error
	}
	if result.RowsAffected == 0 {
		return core.Plot{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, owner, id)
}

// Delete removes a plot once ownership is confirmed and returns its
// prior content.
func (r *repository) Delete(ctx context.Context, owner string, id string) (core.Plot, error) {
	ctx, span := tracer.Start(ctx, "Plot.Repository.Delete")
	defer span.End()

	deleted, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Plot{}, err
	}

	err = r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&core.Plot{}).Error
	if err != nil {
		span.RecordError(err)
		return core.Plot{}, err
	}

	r.refreshCount(ctx)

	return deleted, nil
}

func applyPatch(plot *core.Plot, patch map[string]any) {
	for key, value := range patch {
		switch key {
		case "title":
			plot.Title = value.(string)
		case "chapter":
			plot.Chapter = value.(string)
		case "type":
			plot.Type = value.(string)
		case "description":
			plot.Description = value.(string)
		case "timeframe":
			plot.Timeframe = value.(string)
		case "location":
			plot.Location = value.(string)
		case "characters":
			plot.Characters = value.(string)
		case "significance":
			plot.Significance = value.(string)
		case "conflicts":
			plot.Conflicts = value.(string)
		case "resolution":
			plot.Resolution = value.(string)
		case "notes":
			plot.Notes = value.(string)
		case "image_url":
			plot.ImageURL = value.(string)
		}
	}
}
