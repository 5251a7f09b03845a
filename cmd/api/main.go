package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/util"
	"github.com/lorekeep/lorekeep/x/auth"
	"github.com/lorekeep/lorekeep/x/character"
	"github.com/lorekeep/lorekeep/x/place"
	"github.com/lorekeep/lorekeep/x/plot"
	"github.com/lorekeep/lorekeep/x/user"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version = "unknown"
)

func main() {

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Lorekeep %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := util.Config{}
	configPath := os.Getenv("LOREKEEP_CONFIG")
	if configPath == "" {
		configPath = "/etc/lorekeep/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config: ", err)
	}

	slog.Info(fmt.Sprintf("Config loaded! I am: %s", config.Lorekeep.FQDN))

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, config.Lorekeep.FQDN+"/lkapi", version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "lkapi",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		panic("failed to connect database")
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	// Migrate the schema
	slog.Info("start migrate")
	db.AutoMigrate(
		&core.User{},
		&core.Character{},
		&core.Place{},
		&core.Plot{},
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	userService := SetupUserService(db, mc)
	userHandler := user.NewHandler(userService)

	authService := SetupAuthService(db, rdb, mc, config)
	authHandler := auth.NewHandler(authService, userService)

	characterService := SetupCharacterService(db, mc)
	characterHandler := character.NewHandler(characterService)

	placeService := SetupPlaceService(db, mc)
	placeHandler := place.NewHandler(placeService)

	plotService := SetupPlotService(db, mc)
	plotHandler := plot.NewHandler(plotService)

	api := e.Group("/api", authService.Identify)

	// auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout, auth.Restrict(auth.ISAUTHED))
	api.GET("/auth/me", authHandler.Me, auth.Restrict(auth.ISAUTHED))

	// users
	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create)

	// characters
	api.GET("/characters", characterHandler.List, auth.Restrict(auth.ISAUTHED))
	api.POST("/characters", characterHandler.Create, auth.Restrict(auth.ISAUTHED))
	api.PUT("/characters/:id", characterHandler.Update, auth.Restrict(auth.ISAUTHED))
	api.DELETE("/characters/:id", characterHandler.Delete, auth.Restrict(auth.ISAUTHED))

	// places
	api.GET("/places", placeHandler.List, auth.Restrict(auth.ISAUTHED))
	api.POST("/places", placeHandler.Create, auth.Restrict(auth.ISAUTHED))
	api.PUT("/places/:id", placeHandler.Update, auth.Restrict(auth.ISAUTHED))
	api.DELETE("/places/:id", placeHandler.Delete, auth.Restrict(auth.ISAUTHED))

	// plots
	api.GET("/plots", plotHandler.List, auth.Restrict(auth.ISAUTHED))
	api.POST("/plots", plotHandler.Create, auth.Restrict(auth.ISAUTHED))
	api.PUT("/plots/:id", plotHandler.Update, auth.Restrict(auth.ISAUTHED))
	api.DELETE("/plots/:id", plotHandler.Delete, auth.Restrict(auth.ISAUTHED))

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.String(http.StatusOK, "ok")
	})

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lk_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	go func() {
		for {
			time.Sleep(15 * time.Second)
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				count, err := userService.Count(ctx)
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count users: %v", err))
					return
				}
				resourceCountMetrics.WithLabelValues("user").Set(float64(count))

				count, err = characterService.Count(ctx)
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count characters: %v", err))
					return
				}
				resourceCountMetrics.WithLabelValues("character").Set(float64(count))

				count, err = placeService.Count(ctx)
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count places: %v", err))
					return
				}
				resourceCountMetrics.WithLabelValues("place").Set(float64(count))

				count, err = plotService.Count(ctx)
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count plots: %v", err))
					return
				}
				resourceCountMetrics.WithLabelValues("plot").Set(float64(count))
			}()
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	bind := config.Server.Bind
	if bind == "" {
		bind = ":8000"
	}
	e.Logger.Fatal(e.Start(bind))
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
