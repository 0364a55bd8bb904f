package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/PierreClouet/WorkEat/internal/api"
	"github.com/PierreClouet/WorkEat/internal/infrastructure/config"
	mongodb "github.com/PierreClouet/WorkEat/internal/infrastructure/db/mongo"
	redisdb "github.com/PierreClouet/WorkEat/internal/infrastructure/db/redis"
	"github.com/PierreClouet/WorkEat/internal/infrastructure/mail"
	"github.com/PierreClouet/WorkEat/internal/infrastructure/queue"
	"github.com/PierreClouet/WorkEat/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), client); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mailer setup failed")
	}

	mailQueue := queue.NewMailQueue(0, mailer, log)
	mailQueue.Start(ctx)

	e := api.NewRouter(api.Options{
		Mongo:         db,
		Redis:         rdb,
		Welcome:       mailQueue,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		Logger:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("accounts api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
