package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hackhub/internal/config"
	"hackhub/internal/database"
	"hackhub/internal/domain"
	"hackhub/internal/identity"
	"hackhub/internal/middleware"
	"hackhub/internal/modules/auth"
	"hackhub/internal/modules/challenge"
	"hackhub/internal/modules/evaluationmetric"
	"hackhub/internal/modules/hackathon"
	"hackhub/internal/modules/leaderboard"
	"hackhub/internal/modules/submission"
	"hackhub/internal/modules/todo"
	"hackhub/internal/modules/useradmin"
	"hackhub/internal/pkg/tokens"
	"hackhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.RefreshToken{},
		&domain.Challenge{},
		&domain.Submission{},
		&domain.TodoItem{},
		&domain.HackathonInfo{},
		&domain.EvaluationMetric{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	accountRepo := repository.NewAccountRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	metricRepo := repository.NewEvaluationMetricRepository(db)
	hackathonRepo := repository.NewHackathonRepository(db)

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sessions := auth.NewSessionManager(db, issuer, cfg.RefreshTokenPepper, cfg.SessionMaxDuration)

	var verifiers []identity.Verifier
	if cfg.GoogleClientID != "" {
		verifiers = append(verifiers, identity.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleJWKSURL, cfg.JWKSCacheTTL))
	}
	if cfg.MicrosoftClientID != "" {
		verifiers = append(verifiers, identity.NewMicrosoftVerifier(cfg.MicrosoftClientID, cfg.MicrosoftIssuer, cfg.MicrosoftJWKSURL, cfg.JWKSCacheTTL))
	}
	if len(verifiers) == 0 {
		log.Warn().Msg("no identity providers configured, logins will fail")
	}
	defer func() {
		for _, v := range verifiers {
			if closer, ok := v.(interface{ Close() }); ok {
				closer.Close()
			}
		}
	}()

	authService := auth.NewService(verifiers, accountRepo, sessions, issuer)
	authHandler := auth.NewHandler(authService)

	challengeService := challenge.NewService(challengeRepo)
	challengeHandler := challenge.NewHandler(challengeService)

	submissionService := submission.NewService(submissionRepo, challengeRepo)
	submissionHandler := submission.NewHandler(submissionService)

	todoService := todo.NewService(todoRepo)
	todoHandler := todo.NewHandler(todoService)

	metricService := evaluationmetric.NewService(metricRepo)
	metricHandler := evaluationmetric.NewHandler(metricService)

	hackathonService := hackathon.NewService(hackathonRepo)
	hackathonHandler := hackathon.NewHandler(hackathonService)

	userAdminService := useradmin.NewService(accountRepo, refreshTokenRepo)
	userAdminHandler := useradmin.NewHandler(userAdminService)

	hub := leaderboard.NewHub()
	defer hub.Close()
	leaderboardService := leaderboard.NewService(submissionRepo, hub)
	leaderboardHandler := leaderboard.NewHandler(leaderboardService, hub, issuer)

	// Judge scores push live standings to websocket viewers.
	submissionService.SetScoreListener(leaderboardService)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(issuer))
		{
			authHandler.RegisterProtectedRoutes(protected)
			challengeHandler.RegisterRoutes(protected)
			submissionHandler.RegisterRoutes(protected)
			todoHandler.RegisterRoutes(protected)
			metricHandler.RegisterRoutes(protected)
			userAdminHandler.RegisterRoutes(protected)
		}

		hackathonHandler.RegisterRoutes(v1, protected)
		leaderboardHandler.RegisterRoutes(v1, protected)
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting api server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
