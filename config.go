package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`

	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	LLMBaseURL      string `yaml:"llm_base_url"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`

	DefaultIntent     string   `yaml:"default_intent"`
	DefaultEmailCount int      `yaml:"default_email_count"`
	RemoveKeywords    []string `yaml:"remove_keywords"`
	AddKeywords       []string `yaml:"add_keywords"`
	CustomPrompt      string   `yaml:"custom_prompt"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`

	AutoRunSchedule string `yaml:"auto_run_schedule"`

	RestaurantDataPath string `yaml:"restaurant_data_path"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.CredentialsPath, "GOOGLE_CREDENTIALS_PATH")
	envOverride(&cfg.TokenPath, "GOOGLE_TOKEN_PATH")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.LLMBaseURL, "LLM_BASE_URL")
	envOverride(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.DefaultIntent, "DEFAULT_INTENT")
	envOverrideInt(&cfg.DefaultEmailCount, "DEFAULT_EMAIL_COUNT")
	envOverride(&cfg.CustomPrompt, "CUSTOM_PROMPT")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.AutoRunSchedule, "AUTO_RUN_SCHEDULE")
	envOverride(&cfg.RestaurantDataPath, "RESTAURANT_DATA_PATH")

	if kws := os.Getenv("REMOVE_KEYWORDS"); kws != "" {
		cfg.RemoveKeywords = splitKeywords(kws)
	}
	if kws := os.Getenv("ADD_KEYWORDS"); kws != "" {
		cfg.AddKeywords = splitKeywords(kws)
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./inboxcal.db"
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "credentials.json"
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = "token.json"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = ProviderGemini
	}
	if cfg.DefaultIntent == "" {
		cfg.DefaultIntent = IntentRecent
	}
	if cfg.DefaultEmailCount == 0 {
		cfg.DefaultEmailCount = defaultEmailCount
	}

	// Validate
	switch cfg.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		log.Fatalf("llm_provider must be 'gemini', 'openai' or 'anthropic', got '%s'", cfg.LLMProvider)
	}
	if cfg.DefaultEmailCount < 1 || cfg.DefaultEmailCount > maxEmailCount {
		log.Fatalf("invalid default_email_count '%d': must be between 1 and %d", cfg.DefaultEmailCount, maxEmailCount)
	}
	if cfg.APIKeyFor(cfg.LLMProvider) == "" {
		// Requests can still carry their own api_key; only warn here.
		log.Printf("No API key configured for default provider %s; requests must supply api_key", cfg.LLMProvider)
	}

	return cfg
}

// APIKeyFor returns the configured key for a provider tag, or "".
func (c Config) APIKeyFor(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	}
	return ""
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
