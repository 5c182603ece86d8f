package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"brea-backend/internal/analysis"
	"brea-backend/internal/config"
	"brea-backend/internal/llm"
	"brea-backend/internal/llm/gemini"
	"brea-backend/internal/server/middleware"
	"brea-backend/internal/server/respond"
	"brea-backend/internal/subscription"
	"brea-backend/internal/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	client, err := buildLLMClient(cfg)
	if err != nil {
		return nil, err
	}

	subsSvc := subscription.NewService(cfg.PaymentDelay)
	orch := analysis.NewOrchestrator(client, subsSvc, cfg.AnalysisTimeout)
	analysisHandler := analysis.NewHandler(orch)
	subsHandler := subscription.NewHandler(subsSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	analysisHandler.RegisterRoutes(api)
	subsHandler.RegisterRoutes(api)
	if cfg.Env == "dev" {
		dev := api.Group("/dev")
		subsHandler.RegisterDevRoutes(dev)
	}

	return r, nil
}

func buildLLMClient(cfg config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		if cfg.Env == "dev" || cfg.Env == "local" {
			telemetry.Info("llm.placeholder", map[string]any{
				"reason": "GEMINI_API_KEY empty; analyses will fail with missing_credential",
			})
			return llm.Placeholder{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required in %s", cfg.Env)
	}
	return gemini.NewClient(context.Background(), gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.LLMModel,
	})
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
