package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/opportunity-hub/api/docs"
	"github.com/opportunity-hub/api/internal/authentication"
	"github.com/opportunity-hub/api/internal/discussion"
	"github.com/opportunity-hub/api/internal/feedback"
	"github.com/opportunity-hub/api/internal/requirement"
	"github.com/opportunity-hub/api/internal/scholarship"
	"github.com/opportunity-hub/api/internal/tip"
	"github.com/opportunity-hub/api/internal/user"
	"github.com/opportunity-hub/api/internal/utils"
)

const blacklistPurgeInterval = time.Hour

// @title           Opportunity Hub API
// @version         1.0
// @description     API for managing programs, reviews, and opportunities for students.
//
// @host      localhost:8000
// @BasePath  /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// init database
	db, err := utils.InitDatabase(cfg.Database.DSN())
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}
	err = db.AutoMigrate(
		&user.User{},
		&user.StudentProfile{},
		&user.PartnerProfile{},
		&authentication.BlacklistedToken{},
		&scholarship.Scholarship{},
		&feedback.Feedback{},
		&feedback.Like{},
		&tip.Tip{},
		&requirement.CountryRequirement{},
		&discussion.Discussion{},
	)
	if err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// init Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.Default())

	//
	// SWAGGER (protected by Basic Auth, not JWT)
	//
	swaggerGroup := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
		cfg.Admin.Username: cfg.Admin.Password,
	}))
	swaggerGroup.GET("", ginSwagger.WrapHandler(swaggerFiles.Handler))
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//
	// WIRE UP SERVICES
	//
	userRepo := user.NewUserRepository(db)
	userService := user.NewUserService(userRepo, logger)

	blacklistRepo := authentication.NewBlacklistRepository(db)
	authService := authentication.NewAuthenticationService(userService, blacklistRepo, logger, cfg.Token)

	scholarshipRepo := scholarship.NewScholarshipRepository(db)
	scholarshipService := scholarship.NewScholarshipService(scholarshipRepo, userService, logger)

	feedbackRepo := feedback.NewFeedbackRepository(db)
	feedbackService := feedback.NewFeedbackService(feedbackRepo, scholarshipRepo, userService, logger)

	tipRepo := tip.NewTipRepository(db)
	tipService := tip.NewTipService(tipRepo, scholarshipRepo, logger)

	requirementRepo := requirement.NewRequirementRepository(db)
	requirementService := requirement.NewRequirementService(requirementRepo, logger)

	discussionRepo := discussion.NewDiscussionRepository(db)
	discordClient := discussion.NewDiscordClient(cfg.Discord)
	discussionService := discussion.NewDiscussionService(discussionRepo, scholarshipRepo, discordClient, logger)

	api := router.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// credential endpoints get a rate limit on top
	limiter := tollbooth.NewLimiter(5, nil)
	authGroup := api.Group("/", tollbooth_gin.LimitHandler(limiter))
	authentication.NewAuthHandler(authGroup, authService, cfg.Token.RefreshTokenTTL, logger)

	protected := api.Group("/")
	protected.Use(authentication.AuthMiddleware(authService, userService, logger))

	user.NewUserHandler(authGroup, protected, userService, logger)
	scholarship.NewScholarshipHandler(api, protected, scholarshipService, logger)
	feedback.NewFeedbackHandler(api, protected, feedbackService, logger)
	tip.NewTipHandler(api, protected, tipService, logger)
	requirement.NewRequirementHandler(api, protected, requirementService, logger)
	discussion.NewDiscussionHandler(protected, discussionService, logger)

	//
	// BLACKLIST HYGIENE
	//
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(blacklistPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				purged, err := blacklistRepo.PurgeExpired(purgeCtx)
				if err != nil {
					logger.Error("blacklist purge failed", zap.Error(err))
					continue
				}
				if purged > 0 {
					logger.Info("purged expired blacklisted tokens", zap.Int64("count", purged))
				}
			}
		}
	}()

	//
	// START SERVER
	//
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	stopPurge()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped gracefully")
	}
}
