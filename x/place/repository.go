package place

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/lorekeep/lorekeep/core"
)

// Repository is the interface for place repository
type Repository interface {
	Create(ctx context.Context, place core.Place) (core.Place, error)
	Get(ctx context.Context, owner string, id string) (core.Place, error)
	List(ctx context.Context, owner string, search string) ([]core.Place, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Place, error)
	Delete(ctx context.Context, owner string, id string) (core.Place, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new place repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.Place{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count places",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "place_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the cached total number of places
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("place_count")
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return strconv.ParseInt(string(item.Value), 10, 64)
}

func (r *repository) refreshCount(ctx context.Context) {
	var count int64
	err := r.db.WithContext(ctx).Model(&core.Place{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count places",
			slog.String("error", err.Error()),
		)
		return
	}
	r.mc.Set(&memcache.Item{Key: "place_count", Value: []byte(strconv.FormatInt(count, 10))})
}

// Create stores a new place after running the schema constraints
func (r *repository) Create(ctx context.Context, place core.Place) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.Create")
	defer span.End()

	if err := core.ValidateRecord(place); err != nil {
		span.RecordError(err)
		return core.Place{}, err
	}

	err := r.db.WithContext(ctx).Create(&place).Error
	if err != nil {
		span.RecordError(err)
		return core.Place{}, err
	}

	r.refreshCount(ctx)

	return place, nil
}

// Get returns a place by id, scoped to its owner
func (r *repository) Get(ctx context.Context, owner string, id string) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.Get")
	defer span.End()

	var place core.Place
	err := r.db.WithContext(ctx).First(&place, "id = ? AND user_id = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Place{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Place{}, err
	}

	return place, nil
}

// List returns all places owned by owner, newest first, optionally
// narrowed by a case-insensitive substring over name, type, description.
func (r *repository) List(ctx context.Context, owner string, search string) ([]core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.List")
	defer span.End()

	query := r.db.WithContext(ctx).Where("user_id = ?", owner)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR type ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var places []core.Place
	if err := query.Order("c_date DESC").Find(&places).Error; err != nil {
		span.RecordError(err)
		return []core.Place{}, err
	}
	if places == nil {
		return []core.Place{}, nil
	}

	return places, nil
}

// Update applies a partial edit as one conditional write matching both the
// id and the owner; zero affected rows is NotFound.
func (r *repository) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.Update")
	defer span.End()

	merged, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Place{}, err
	}

	applyPatch(&merged, patch)
	if err := core.ValidateRecord(merged); err != nil {
		span.RecordError(err)
		return core.Place{}, err
	}

	result := r.db.WithContext(ctx).Model(&core.Place{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(patch)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.Place{}, result.Error
	}
	if result.RowsAffected == 0 {
		return core.Place{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, owner, id)
}

// Delete removes a place once ownership is confirmed and returns its
// prior content.
func (r *repository) Delete(ctx context.Context, owner string, id string) (core.Place, error) {
	ctx, span := tracer.Start(ctx, "Place.Repository.Delete")
	defer span.End()

	deleted, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Place{}, err
	}

	err = r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&core.Place{}).Error
	if err != nil {
		span.RecordError(err)
		return core.Place{}, err
	}

	r.refreshCount(ctx)

	return deleted, nil
}

func applyPatch(place *core.Place, patch map[string]any) {
	for key, value := range patch {
		switch key {
		case "name":
			place.Name = value.(string)
		case "type":
			place.Type = value.(string)
		case "description":
			place.Description = value.(string)
		case "location":
			place.Location = value.(string)
		case "significance":
			place.Significance = value.(string)
		case "atmosphere":
			place.Atmosphere = value.(string)
		case "history":
			place.History = value.(string)
		case "inhabitants":
			place.Inhabitants = value.(string)
		case "features":
			place.Features = value.(string)
		case "image_url":
			place.ImageURL = value.(string)
		}
	}
}
