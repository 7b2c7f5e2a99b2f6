package suggest

import "catalyst/internal/infra"

// NewFromConfig returns the Suggester selected by configuration. A provider
// that cannot be constructed, usually for want of an API key, degrades to
// the disabled Suggester so uploads keep working.
func NewFromConfig(cfg *infra.Config, logger infra.Logger) Suggester {
	switch cfg.SuggestProvider {
	case openAIProviderName:
		s, err := NewOpenAISuggester(OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.SuggestTimeout,
			Logger:  &logger,
		})
		if err != nil {
			logger.Warn().Err(err).Str("provider", openAIProviderName).Msg("suggestions disabled")
			return NewDisabled()
		}
		return s
	case geminiProviderName:
		s, err := NewGeminiSuggester(GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.SuggestTimeout,
			Logger:  &logger,
		})
		if err != nil {
			logger.Warn().Err(err).Str("provider", geminiProviderName).Msg("suggestions disabled")
			return NewDisabled()
		}
		return s
	default:
		return NewDisabled()
	}
}
