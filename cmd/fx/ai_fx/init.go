package ai_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/internal/config"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

var Module = fx.Provide(provideLLMClient, provideVisionClient, provideTriageAnalyzer)

// provideLLMClient returns a nil interface when no key is set; consumers treat that as "use fallback".
func provideLLMClient(cfg config.Config, log *zap.Logger) utils.LLMClientInterface {
	if cfg.LLM.APIKey == "" {
		log.Warn("LLM_API_KEY missing, AI features will use fallback content")
		return nil
	}
	return utils.NewOpenAICompatibleClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
}

func provideVisionClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (utils.VisionClientInterface, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY missing, report analysis is disabled")
		return nil, nil
	}

	client, err := utils.NewGeminiVisionClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func provideTriageAnalyzer(llm utils.LLMClientInterface, log *zap.Logger) services.TriageAnalyzer {
	var primary services.TriageAnalyzer
	if llm != nil {
		primary = services.NewRemoteTriageAnalyzer(llm)
	}
	return services.NewResilientTriageAnalyzer(primary, services.NewFallbackTriageAnalyzer(), log)
}
