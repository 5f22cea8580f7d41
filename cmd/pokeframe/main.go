package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/pokeframe/internal/acquire"
	"github.com/vbonduro/pokeframe/internal/config"
	"github.com/vbonduro/pokeframe/internal/device/console"
	"github.com/vbonduro/pokeframe/internal/logging"
	"github.com/vbonduro/pokeframe/internal/photostore/local"
	"github.com/vbonduro/pokeframe/internal/publish"
	"github.com/vbonduro/pokeframe/internal/session"
	"github.com/vbonduro/pokeframe/internal/vision"
	claudevision "github.com/vbonduro/pokeframe/internal/vision/claude"
	ollamavision "github.com/vbonduro/pokeframe/internal/vision/ollama"
	openaivision "github.com/vbonduro/pokeframe/internal/vision/openai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	os.Exit(finish(logger, cleanup, err))
}

// finish logs err, if any, before closing the log file and returns the
// process exit code.
func finish(logger *slog.Logger, cleanup func(), err error) int {
	defer cleanup()
	if err != nil {
		logger.Error("pokeframe failed", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	photoStg, err := local.NewLocalPhotoStore(cfg.PublicDir)
	if err != nil {
		return fmt.Errorf("failed to initialize photo store: %w", err)
	}

	dev, err := console.New(cfg.CameraSource, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logger.Error("failed to close device", "error", err)
		}
	}()
	logger.Info("device initialized", "camera_source", cfg.CameraSource)

	runner := session.NewRunner(
		dev,
		acquire.NewAcquirer(dev, photoStg, cfg.CaptureQuality, logger),
		newVisionAnalyzer(cfg, logger),
		publish.NewScriptPublisher(cfg.OutputFile, logger),
		logger,
	)

	if cfg.Mode == config.ModeOnce {
		_, err := runner.RunOnce(ctx)
		return err
	}
	return runner.Run(ctx)
}

func newVisionAnalyzer(cfg *config.Config, logger *slog.Logger) vision.Analyzer {
	switch cfg.VisionBackend {
	case "claude":
		logger.Info("using Claude vision backend", "model", cfg.ClaudeModel)
		return claudevision.NewClaudeAnalyzer(cfg.ClaudeModel, cfg.MaxTokens, logger)
	case "ollama":
		logger.Info("using Ollama vision backend", "model", cfg.OllamaModel)
		return ollamavision.NewOllamaAnalyzer(cfg.OllamaHost, cfg.OllamaModel, cfg.MaxTokens, logger)
	default:
		logger.Info("using OpenAI vision backend", "model", cfg.OpenAIModel)
		return openaivision.NewOpenAIAnalyzer(cfg.OpenAIModel,
			openaivision.WithEndpoint(cfg.OpenAIURL),
			openaivision.WithMaxTokens(cfg.MaxTokens),
			openaivision.WithLogger(logger),
		)
	}
}
