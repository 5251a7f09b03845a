package user

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/lorekeep/lorekeep/core"
)

// Repository is the interface for user repository
type Repository interface {
	Create(ctx context.Context, user core.User) (core.User, error)
	Get(ctx context.Context, id string) (core.User, error)
	GetByEmail(ctx context.Context, email string) (core.User, error)
	List(ctx context.Context) ([]core.User, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.User{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count users",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "user_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the cached total number of users
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("user_count")
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return strconv.ParseInt(string(item.Value), 10, 64)
}

// Create stores a new user. A duplicate email surfaces as AlreadyExists
// via the driver's translated unique-violation error.
func (r *repository) Create(ctx context.Context, user core.User) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Create")
	defer span.End()

	if err := core.ValidateRecord(user); err != nil {
		span.RecordError(err)
		return core.User{}, err
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return core.User{}, core.NewErrorAlreadyExists()
		}
		span.RecordError(err)
		return core.User{}, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&core.User{}).Count(&count).Error; err == nil {
		r.mc.Set(&memcache.Item{Key: "user_count", Value: []byte(strconv.FormatInt(count, 10))})
	}

	return user, nil
}

// Get returns a user by id
func (r *repository) Get(ctx context.Context, id string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Get")
	defer span.End()

	var user core.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.User{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.User{}, err
	}

	return user, nil
}

// GetByEmail returns a user by email
func (r *repository) GetByEmail(ctx context.Context, email string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.GetByEmail")
	defer span.End()

	var user core.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.User{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.User{}, err
	}

	return user, nil
}

// List returns every account, newest first
func (r *repository) List(ctx context.Context) ([]core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.List")
	defer span.End()

	var users []core.User
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&users).Error; err != nil {
		span.RecordError(err)
		return []core.User{}, err
	}
	if users == nil {
		return []core.User{}, nil
	}

	return users, nil
}
