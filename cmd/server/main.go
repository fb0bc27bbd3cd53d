package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/hellokiler/blogbot/internal/ai"
	"github.com/hellokiler/blogbot/internal/config"
	"github.com/hellokiler/blogbot/internal/database"
	"github.com/hellokiler/blogbot/internal/repository"
	"github.com/hellokiler/blogbot/internal/service"
	"github.com/hellokiler/blogbot/internal/telegram"
	"github.com/hellokiler/blogbot/internal/together"
	"github.com/hellokiler/blogbot/internal/web"
	"github.com/hellokiler/blogbot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	textProvider, err := ai.NewProvider(ai.ProviderConfig{
		UseGPT:        cfg.UseGPT,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiBaseURL: cfg.GeminiBaseURL,
		Timeout:       cfg.TextTimeout,
	})
	if err != nil {
		log.Fatalf("text provider: %v", err)
	}

	imageClient := together.NewClient(cfg.TogetherAPIKey, cfg.TogetherBaseURL, cfg.ImageTimeout, logr)
	sender := telegram.NewSender(cfg.ChatTimeout, logr)

	blogRepo := repository.NewBlogRepository(db)
	botRepo := repository.NewBotConfigRepository(db)
	imageRepo := repository.NewImageRepository(db)

	generator := ai.NewArticleGenerator(textProvider)
	blogService := service.NewBlogService(logr, blogRepo, generator)
	webhookService := service.NewWebhookService(logr, botRepo, imageRepo, textProvider, imageClient, sender)

	server := web.NewServer(cfg.ListenAddr, logr, blogService, webhookService)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("server stopped", "err", err)
	}
}
