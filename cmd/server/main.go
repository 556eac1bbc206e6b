package main

import (
	"context"
	"flag"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/avatar"
	"github.com/genkan-app/genkan/internal/config"
	"github.com/genkan-app/genkan/internal/database"
	"github.com/genkan-app/genkan/internal/identifier"
	"github.com/genkan-app/genkan/internal/lesson"
	"github.com/genkan-app/genkan/internal/mailer"
	"github.com/genkan-app/genkan/internal/match"
	"github.com/genkan-app/genkan/internal/ratelimit"
	"github.com/genkan-app/genkan/internal/room"
	"github.com/genkan-app/genkan/internal/server"
	"github.com/genkan-app/genkan/internal/social"
	"github.com/genkan-app/genkan/internal/story"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.CreateSchema(ctx, db); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer rdb.Close()

	mail := mailer.NewSMTP(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	repos := auth.NewRepositoryManager(db)
	repos.MustValidate()

	users := repos.Users()
	provider := auth.NewUserProvider(users)
	auther := auth.NewAuthenticator(provider, cfg.JWT)

	avatars := avatar.New(cfg.Avatar.BaseURL)
	lifecycle := auth.NewLifecycle(users, auther, mail, cfg.App.BaseURL,
		auth.WithIdentifierAllocator(identifier.Allocate),
		auth.WithAvatarURL(avatars.URL),
	)

	graph := social.NewGraphRepository(db)
	socialSvc := social.NewService(graph)

	deps := server.Deps{
		Auther:    auther,
		Lifecycle: lifecycle,
		Users:     users,
		Stories:   story.NewService(story.NewStoriesRepository(db)),
		Lessons:   lesson.NewService(lesson.NewLessonsRepository(db)),
		Rooms:     room.NewService(room.NewRoomsRepository(db)),
		Social:    socialSvc,
		Match:     match.NewService(db, socialSvc),
		Limiter:   ratelimit.New(rdb, "genkan:ratelimit", cfg.App.RateLimit, cfg.App.RateBurst),
	}

	app := server.New(deps)
	if err := app.Listen(cfg.App.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
