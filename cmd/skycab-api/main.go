// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"skycab/internal/ai"
	"skycab/internal/config"
	httptransport "skycab/internal/http"
	"skycab/internal/infra"
	"skycab/internal/maps"
	"skycab/internal/modules/aiusage"
	"skycab/internal/modules/booking"
	"skycab/internal/modules/chat"
	"skycab/internal/modules/fare"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := infra.NewLogger(cfg.Log.Level, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("SKYCAB_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.WithError(err).Fatal("firebase init")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.WithError(err).Fatal("postgres init")
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.WithError(err).Fatal("redis init")
	}
	defer redisClient.Close()

	catalog := fare.DefaultCatalog()
	engine := fare.NewEngine(catalog, cfg.Fare.Region, fare.WithMinimumFare(cfg.Fare.MinimumFare))
	fareSvc := fare.NewService(engine, fare.NewStore(redisClient), cfg.Fare.QuoteTTL)

	var labeler booking.Labeler = booking.CoordinateLabeler{}
	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			logger.WithError(err).Fatal("maps init")
		}
		labeler = geocoder
	}
	bookingSvc := booking.NewService(booking.NewStore(dbPool), fareSvc, labeler).WithLogger(logger)
	chatSvc := chat.NewService(chat.NewStore(dbPool))

	deps := httptransport.ServerDeps{
		Fare:      fareSvc,
		Booking:   bookingSvc,
		Chat:      chatSvc,
		AITimeout: cfg.AI.Timeout,
		Verifier:  verifier,
		Logger:    logger,
	}
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			logger.WithError(err).Fatal("gemini init")
		}
		defer provider.Close()
		deps.AI = aiusage.NewService(aiusage.NewStore(dbPool), provider)
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant routes disabled")
	}

	logger.WithFields(logrus.Fields{
		"region":       cfg.Fare.Region.Name,
		"minimum_fare": engine.MinimumFare(),
		"tiers":        len(catalog.All()),
	}).Info("fare engine ready")

	server := httptransport.NewServer(deps)
	if err := server.Run(ctx, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout); err != nil {
		logger.WithError(err).Fatal("http server")
	}
}
