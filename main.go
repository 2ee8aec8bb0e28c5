package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Aashish23092/finstatement-extractor/client"
	"github.com/Aashish23092/finstatement-extractor/config"
	"github.com/Aashish23092/finstatement-extractor/handler"
	"github.com/Aashish23092/finstatement-extractor/logger"
	"github.com/Aashish23092/finstatement-extractor/resolver"
	"github.com/Aashish23092/finstatement-extractor/service"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Initialize configuration
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel)

	thresholds, err := config.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load thresholds")
	}
	log.Info().
		Int("table", thresholds.Table).
		Int("pattern", thresholds.Pattern).
		Int("fallback", thresholds.Fallback).
		Int("section_window", thresholds.SectionWindow).
		Msg("resolution thresholds loaded")

	// Optional AI fallback
	var ai service.AIExtractor
	if cfg.AI.Usable() {
		gemini, err := client.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Warn().Err(err).Msg("ai fallback disabled")
		} else {
			ai = gemini
			log.Info().Str("model", cfg.AI.Model).Msg("ai fallback enabled")
		}
	}

	// Initialize service layer
	extractionService := service.NewExtractionService(
		resolver.New(thresholds, log),
		client.NewTesseractClient(cfg.TesseractDataPath),
		service.NewPDFProcessor(),
		ai,
		cfg.AI,
		log,
	)

	// Initialize handler layer
	extractionHandler := handler.NewExtractionHandler(extractionService, cfg.MaxFileSize, log)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxFileSize

	handler.RegisterRoutes(router, extractionHandler)

	log.Info().Str("port", cfg.ServerPort).Msg("starting financial statement extractor")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
