package character

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/lorekeep/lorekeep/core"
)

// Repository is the interface for character repository
type Repository interface {
	Create(ctx context.Context, character core.Character) (core.Character, error)
	Get(ctx context.Context, owner string, id string) (core.Character, error)
	List(ctx context.Context, owner string, search string) ([]core.Character, error)
	Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Character, error)
	Delete(ctx context.Context, owner string, id string) (core.Character, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new character repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.Character{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count characters",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "character_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the cached total number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("character_count")
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return strconv.ParseInt(string(item.Value), 10, 64)
}

func (r *repository) refreshCount(ctx context.Context) {
	var count int64
	err := r.db.WithContext(ctx).Model(&core.Character{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count characters",
			slog.String("error", err.Error()),
		)
		return
	}
	r.mc.Set(&memcache.Item{Key: "character_count", Value: []byte(strconv.FormatInt(count, 10))})
}

// Create stores a new character after running the schema constraints
func (r *repository) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	if err := core.ValidateRecord(character); err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	err := r.db.WithContext(ctx).Create(&character).Error
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	r.refreshCount(ctx)

	return character, nil
}

// Get returns a character by id, scoped to its owner. A foreign or absent
// row is reported identically so ownership is never leaked.
func (r *repository) Get(ctx context.Context, owner string, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Get")
	defer span.End()

	var character core.Character
	err := r.db.WithContext(ctx).First(&character, "id = ? AND user_id = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Character{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// List returns all characters owned by owner, newest first. A non-empty
// search narrows to rows whose name, role, or description contains the
// string, case-insensitively.
func (r *repository) List(ctx context.Context, owner string, search string) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.List")
	defer span.End()

	query := r.db.WithContext(ctx).Where("user_id = ?", owner)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR role ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var characters []core.Character
	if err := query.Order("c_date DESC").Find(&characters).Error; err != nil {
		span.RecordError(err)
		return []core.Character{}, err
	}
	if characters == nil {
		return []core.Character{}, nil
	}

	return characters, nil
}

// Update applies a partial edit as one conditional write matching both the
// id and the owner; zero affected rows is NotFound.
func (r *repository) Update(ctx context.Context, owner string, id string, patch map[string]any) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Update")
	defer span.End()

	merged, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Character{}, err
	}

	applyPatch(&merged, patch)
	if err := core.ValidateRecord(merged); err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	result := r.db.WithContext(ctx).Model(&core.Character{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(patch)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.Character{}, result.Error
	}
	if result.RowsAffected == 0 {
		return core.Character{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, owner, id)
}

// Delete removes a character once ownership is confirmed and returns its
// prior content.
func (r *repository) Delete(ctx context.Context, owner string, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Delete")
	defer span.End()

	deleted, err := r.Get(ctx, owner, id)
	if err != nil {
		return core.Character{}, err
	}

	err = r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&core.Character{}).Error
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	r.refreshCount(ctx)

	return deleted, nil
}

func applyPatch(character *core.Character, patch map[string]any) {
	for key, value := range patch {
		switch key {
		case "name":
			character.Name = value.(string)
		case "age":
			age := value.(int)
			character.Age = &age
		case "role":
			character.Role = value.(string)
		case "description":
			character.Description = value.(string)
		case "background":
			character.Background = value.(string)
		case "personality":
			character.Personality = value.(string)
		case "appearance":
			character.Appearance = value.(string)
		case "relationships":
			character.Relationships = value.(string)
		case "motivations":
			character.Motivations = value.(string)
		}
	}
}
