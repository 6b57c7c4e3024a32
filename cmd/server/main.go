package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/courtside/racketdb/internal/config"
	"github.com/courtside/racketdb/internal/database"
	"github.com/courtside/racketdb/internal/handler"
	"github.com/courtside/racketdb/internal/queue"
	"github.com/courtside/racketdb/internal/repository"
	"github.com/courtside/racketdb/internal/router"
	"github.com/courtside/racketdb/internal/service"
	"github.com/courtside/racketdb/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Nil when Redis is unreachable; cache and limiter degrade gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache and rate limits disabled")
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	brands := repository.NewBrandRepo(db)
	rackets := repository.NewRacketRepo(db)
	comments := repository.NewCommentRepo(db)
	reviews := repository.NewReviewRepo(db)
	profiles := repository.NewProfileRepo(db)

	// Composition services over the repositories.
	tree := service.NewCommentTree(comments, profiles)
	reviewList := service.NewReviewList(reviews, profiles)
	reviewStats := service.NewReviewStats(reviews)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Brands:   handler.NewBrandHandler(brands, rackets),
		Rackets:  handler.NewRacketHandler(rackets),
		Comments: handler.NewCommentHandler(comments, tree),
		Reviews:  handler.NewReviewHandler(reviews, reviewList, reviewStats),
		Profile:  handler.NewProfileHandler(profiles),
		Upload:   handler.NewUploadHandler(store),
	}

	// Background view counter; owns its reconnect loop.
	go func() {
		if err := queue.StartViewConsumer(rackets); err != nil {
			log.Printf("view consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, rlCfg, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
