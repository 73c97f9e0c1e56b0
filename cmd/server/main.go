package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/config"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/handler"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/notifier"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/usecase"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/auth"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/mailer"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)
	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)

	emailNotifier := notifier.NewEmailNotifier(mailer.NewMailer(&logger), &logger)
	defer emailNotifier.Close()

	codes := otp.NewEngine(userRepo, emailNotifier)
	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)

	v, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	authHandler := handler.NewAuthHTTPHandler(
		usecase.NewAuthUsecase(userRepo, codes, jwtAuth, cfg),
		usecase.NewVerificationUsecase(userRepo, codes),
		usecase.NewPasswordResetUsecase(userRepo, codes),
		v,
		&logger,
		cfg,
	)

	router := chi.NewRouter()
	router.Use(handler.RequestLogger(&logger))
	router.Use(handler.Recoverer(&logger, cfg))
	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"API working successfully!"}`))
	})
	authHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down server gracefully")
	}
}
