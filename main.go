package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caption-stream/backend/internal/api"
	"github.com/caption-stream/backend/internal/auth"
	"github.com/caption-stream/backend/internal/config"
	"github.com/caption-stream/backend/internal/engine"
	"github.com/caption-stream/backend/internal/job"
	"github.com/caption-stream/backend/internal/logging"
	"github.com/caption-stream/backend/internal/transcript"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Segmentation pipeline. A failed dictionary load is not fatal: the
	// pipeline degrades to proportional splitting for every request.
	var smart *transcript.SmartSegmenter
	tokenizer, err := transcript.NewTokenizer()
	if err != nil {
		log.Warn().Err(err).Msg("tokenizer unavailable, smart segmentation disabled")
	} else {
		smart = transcript.NewSmartSegmenter(tokenizer, transcript.DefaultSmartConfig(),
			log.With().Str("component", "smart-segmenter").Logger())
	}
	segmenter := transcript.NewSegmenter(smart, transcript.NewProportionalSegmenter(""),
		log.With().Str("component", "segmenter").Logger())

	// Recognition engines
	engineService := engine.NewService(segmenter, log.With().Str("component", "engines").Logger())
	if cfg.FunASRURL != "" {
		engineService.Register(engine.NewFunASRClient(cfg.FunASRURL, engine.FunASROptions{
			BatchSizeSeconds:     cfg.FunASRBatchSizeSeconds,
			UseSmartSegmentation: cfg.FunASRSmartSegmentation,
		}, log.With().Str("component", "funasr").Logger()))
	}
	if cfg.WhisperURL != "" {
		engineService.Register(engine.NewWhisperClient(cfg.WhisperURL,
			log.With().Str("component", "whisper").Logger()))
	}

	// Job queue: one worker, which also serializes runtime access
	jobQueue := job.NewQueue(log.With().Str("component", "jobs").Logger())
	jobQueue.RegisterHandler(job.TypeTranscribe, engineService.HandleJob(jobQueue))

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	adminPwdHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	router := api.NewRouter(cfg, log, jwtService, adminPwdHash, segmenter, engineService, jobQueue)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router}

	log.Info().Str("addr", addr).Strs("engines", engineService.Names()).Msg("starting server")

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")

		jobQueue.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}
