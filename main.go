package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"scanax/config"
	"scanax/internal/analysis"
	"scanax/internal/llm"
	"scanax/logging"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("Error loading configuration: %v", err)
	}

	logging.Init(cfg.Logging)

	engine, err := buildEngine(cfg)
	if err != nil {
		logrus.Fatalf("Error initializing reasoning engine: %v", err)
	}

	cache := analysis.NewCache(time.Duration(cfg.Analysis.CacheTTLMinutes) * time.Minute)
	svc := analysis.NewService(engine, cache, cfg.Analysis.MaxFindings, cfg.Fix.VerifySearch)
	srv := newServer(cfg, svc)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("Starting server on %s...", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func buildEngine(cfg *config.Config) (llm.Client, error) {
	switch cfg.Engine.Provider {
	case "ollama":
		return llm.NewOllamaClient(cfg.Engine.Ollama.Host, cfg.Engine.Ollama.Model)
	case "groq":
		return llm.NewGroqClient(cfg.Engine.Groq.BaseURL, cfg.Engine.APIKey, cfg.Engine.Groq.Model, cfg.Engine.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown engine provider %q", cfg.Engine.Provider)
	}
}
