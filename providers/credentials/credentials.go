// Package credentials resolves the active API key for a provider. Resolution
// is a pure function of the explicit key argument and the current environment
// snapshot: an explicit key always wins, the provider's environment variable
// is the fallback, and a missing key is a typed failure naming both the
// provider and the variable that was consulted. Nothing is cached; each chat
// call resolves afresh.
package credentials

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

// envKeys is the per-provider environment snapshot, parsed in one pass.
type envKeys struct {
	Gemini    string `env:"GEMINI_API_KEY"`
	Anthropic string `env:"ANTHROPIC_API_KEY"`
	OpenAI    string `env:"OPENAI_API_KEY"`
}

// EnvVar returns the environment variable consulted for the given provider.
func EnvVar(provider ai.ProviderID) string {
	switch provider {
	case ai.ProviderGemini:
		return "GEMINI_API_KEY"
	case ai.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ai.ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// Resolve returns the credential for provider. Precedence: explicitKey when
// non-empty, otherwise the provider's environment variable, otherwise an
// [ai.MissingAPIKeyError]. An unknown provider is a validation failure.
func Resolve(provider ai.ProviderID, explicitKey string) (ai.Credential, error) {
	envVar := EnvVar(provider)
	if envVar == "" {
		return ai.Credential{}, &ai.ValidationError{Message: fmt.Sprintf("unknown provider %q", provider)}
	}

	if explicitKey != "" {
		return ai.Credential{Provider: provider, APIKey: explicitKey}, nil
	}

	var keys envKeys
	if err := env.Parse(&keys); err != nil {
		return ai.Credential{}, fmt.Errorf("credentials: parsing environment: %w", err)
	}

	var key string
	switch provider {
	case ai.ProviderGemini:
		key = keys.Gemini
	case ai.ProviderAnthropic:
		key = keys.Anthropic
	case ai.ProviderOpenAI:
		key = keys.OpenAI
	}

	if key == "" {
		return ai.Credential{}, &ai.MissingAPIKeyError{Provider: provider, EnvVar: envVar}
	}

	return ai.Credential{Provider: provider, APIKey: key}, nil
}
