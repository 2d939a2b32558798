//go:build wireinject
// +build wireinject

package di

import (
	"safar/config"
	"safar/infras/jwt"
	"safar/infras/kafka"
	"safar/infras/otel"
	"safar/infras/postgres"
	"safar/infras/redis"
	"safar/infras/s3"
	"safar/permissions"
	"safar/shared/cache"
	"safar/transport/http"
	"safar/transport/http/middleware"
	"safar/transport/http/router"

	"github.com/google/wire"

	authService "safar/internal/domains/auth/service"
	bookingRepository "safar/internal/domains/booking/repository"
	bookingService "safar/internal/domains/booking/service"
	pkgRepository "safar/internal/domains/pkg/repository"
	pkgService "safar/internal/domains/pkg/service"
	userRepository "safar/internal/domains/user/repository"
	adminHandler "safar/internal/handlers/admin"
	authHandler "safar/internal/handlers/auth"
	bookingHandler "safar/internal/handlers/booking"
	pkgHandler "safar/internal/handlers/pkg"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var packageDomain = wire.NewSet(
	pkgRepository.New,
	pkgService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	packageDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	pkgHandler.New,
	bookingHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
