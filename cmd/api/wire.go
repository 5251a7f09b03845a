//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lorekeep/lorekeep/util"
	"github.com/lorekeep/lorekeep/x/auth"
	"github.com/lorekeep/lorekeep/x/character"
	"github.com/lorekeep/lorekeep/x/place"
	"github.com/lorekeep/lorekeep/x/plot"
	"github.com/lorekeep/lorekeep/x/user"
)

var userServiceProvider = wire.NewSet(user.NewService, user.NewRepository)
var characterServiceProvider = wire.NewSet(character.NewService, character.NewRepository)
var placeServiceProvider = wire.NewSet(place.NewService, place.NewRepository)
var plotServiceProvider = wire.NewSet(plot.NewService, plot.NewRepository)

func SetupUserService(db *gorm.DB, mc *memcache.Client) user.Service {
	wire.Build(userServiceProvider)
	return nil
}

func SetupCharacterService(db *gorm.DB, mc *memcache.Client) character.Service {
	wire.Build(characterServiceProvider)
	return nil
}

func SetupPlaceService(db *gorm.DB, mc *memcache.Client) place.Service {
	wire.Build(placeServiceProvider)
	return nil
}

func SetupPlotService(db *gorm.DB, mc *memcache.Client) plot.Service {
	wire.Build(plotServiceProvider)
	return nil
}

func SetupAuthService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config util.Config) auth.Service {
	wire.Build(auth.NewService, auth.NewRepository, userServiceProvider)
	return nil
}
