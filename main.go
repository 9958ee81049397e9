package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"debator/audio"
	"debator/config"
	"debator/debate"
	"debator/provider"
	"debator/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()
	_ = godotenv.Load()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", *configPath)
		os.Exit(1)
	}
	var logWriter io.Writer = os.Stderr
	if cfg.LogFile != "" {
		logfile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Error("failed to open log file", "error", err, "filename", cfg.LogFile)
			os.Exit(1)
		}
		defer logfile.Close()
		logWriter = logfile
	}
	logger := slog.New(slog.NewJSONHandler(logWriter, nil))
	if err := cfg.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	store, err := storage.NewProviderSQL(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open db", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	audioStore, err := audio.NewStore(cfg.StaticDir, logger)
	if err != nil {
		logger.Error("failed to init audio store", "error", err)
		os.Exit(1)
	}
	gemini := provider.NewGeminiClient(cfg, logger)
	yarn := provider.NewYarnClient(cfg, logger)
	var fallback provider.SpeechSynthesizer
	if cfg.TTSFallback {
		fallback = provider.NewGoogleTranslateSynthesizer(cfg, logger)
	}
	orc := debate.New(cfg, gemini, yarn, fallback, audioStore, logger)
	svc := debate.NewService(cfg, orc, store, gemini, logger)
	srv := &Server{
		cfg:     cfg,
		turns:   orc,
		debates: svc,
		logger:  logger,
	}
	if err := srv.ListenToRequests(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
