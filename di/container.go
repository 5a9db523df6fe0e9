package di

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"golang.org/x/text/language"

	"tire-locator/api"
	"tire-locator/api/placemarks"
	"tire-locator/config"
	"tire-locator/dao/redis"
	"tire-locator/db"
	"tire-locator/geo"
	"tire-locator/locator"
	"tire-locator/models"
	"tire-locator/server"
	"tire-locator/server/handlers"
	services "tire-locator/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                         *config.Config
	Locale                         language.Tag
	RedisClient                    db.RedisClient
	RedisPlacemarkDao              *redis.RedisPlacemarkDAO
	PlacemarkIndex                 *geo.Index
	PlacemarkService               *services.PlacemarkService
	RequestService                 *services.RequestService
	PlacemarkIndexRefresherService *services.PlacemarkIndexRefresherService
	PlacemarksAPI                  placemarks.PlacemarksAPI
	PlacemarkHandler               *handlers.PlacemarkHandler
	RequestHandler                 *handlers.RequestHandler
	SessionHandler                 *handlers.SessionHandler
	MuxRouter                      *mux.Router
	Router                         *server.Router
	LocatorHttpServer              *server.LocatorHttpServer

	closeRedis func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config, logger log.Logger) (*Container, error) {
	logger = log.With(logger, "component", "Container")
	ctx := context.Background()

	locale, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		level.Warn(logger).Log("msg", "unknown collation locale, using ru", "locale", cfg.CollationLocale, "err", err)
		locale = language.Russian
	}

	// Initialize Redis client; no address means the in-memory client
	var redisClient db.RedisClient
	closeRedis := func() error { return nil }
	if cfg.RedisAddr == "" {
		level.Info(logger).Log("msg", "using in-memory redis client")
		redisClient = db.NewMockRedisClient(ctx)
	} else {
		level.Info(logger).Log("msg", "using redis", "addr", cfg.RedisAddr)
		geoClient := db.NewGeoRedisClient(ctx, goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), logger)
		if err := geoClient.Ping(); err != nil {
			geoClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = geoClient
		closeRedis = geoClient.Close
	}

	redisPlacemarkDao := redis.NewRedisPlacemarkDAO(redisClient)
	placemarkIndex := geo.NewIndex()

	placemarkService := services.NewPlacemarkService(redisPlacemarkDao, placemarkIndex, locale, logger)
	requestService := services.NewRequestService(placemarkService, logger)
	refresherService := services.NewPlacemarkIndexRefresherService(redisPlacemarkDao, placemarkIndex, logger)

	// Map sessions talk to the backend over its public HTTP API
	var placemarksApiClient placemarks.PlacemarksAPI
	if cfg.APIMode == config.API_MODE_MOCK {
		level.Info(logger).Log("msg", "using mock placemarks api", "fixture", cfg.SeedFile)
		placemarksApiClient = placemarks.NewPlacemarksApiClientMock(cfg.SeedFile)
	} else {
		level.Info(logger).Log("msg", "using placemarks api", "base_url", cfg.APIBaseURL)
		placemarksApiClient = placemarks.NewPlacemarksApiClient(api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout))
	}

	placemarkHandler := handlers.NewPlacemarkHandler(placemarkService, logger)
	requestHandler := handlers.NewRequestHandler(requestService, logger)
	sessionHandler := handlers.NewSessionHandler(locator.SessionOptions{
		Fetcher:     placemarksApiClient,
		Submitter:   placemarksApiClient,
		Locale:      locale,
		PanDuration: cfg.PanDuration,
		Description: cfg.RequestDescription,
		Client:      models.ClientInfo{Name: cfg.ClientName, Phone: cfg.ClientPhone},
	}, logger)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(placemarkHandler, requestHandler, sessionHandler, muxRouter, logger)
	locatorHttpServer := server.NewLocatorHttpServer(router, muxRouter, cfg.HTTPAddr, logger)

	return &Container{
		Config:                         cfg,
		Locale:                         locale,
		RedisClient:                    redisClient,
		RedisPlacemarkDao:              redisPlacemarkDao,
		PlacemarkIndex:                 placemarkIndex,
		PlacemarkService:               placemarkService,
		RequestService:                 requestService,
		PlacemarkIndexRefresherService: refresherService,
		PlacemarksAPI:                  placemarksApiClient,
		PlacemarkHandler:               placemarkHandler,
		RequestHandler:                 requestHandler,
		SessionHandler:                 sessionHandler,
		MuxRouter:                      muxRouter,
		Router:                         router,
		LocatorHttpServer:              locatorHttpServer,
		closeRedis:                     closeRedis,
	}, nil
}

// Close releases the Redis connection, if any.
func (c *Container) Close() error {
	return c.closeRedis()
}
