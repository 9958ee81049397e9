package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ListenAddr string `toml:"ListenAddr"`
	LogFile    string `toml:"LogFile"`
	DBPath     string `toml:"DBPATH"`
	StaticDir  string `toml:"StaticDir"`
	// text generation
	LLMAPI         string  `toml:"LLMAPI"`
	LLMModel       string  `toml:"LLMModel"`
	LLMTemperature float32 `toml:"LLMTemperature"`
	// TTS
	TTSAPI    string `toml:"TTS_URL"`
	TTSVoice  string `toml:"TTS_VOICE"`
	TTSFormat string `toml:"TTS_FORMAT"`
	// local fallback synth for when the TTS provider is down
	TTSFallback     bool    `toml:"TTS_FALLBACK"`
	TTSFallbackLang string  `toml:"TTS_FALLBACK_LANG"`
	TTSSpeed        float32 `toml:"TTS_SPEED"`
	// provider call policy
	ProviderTimeout int `toml:"ProviderTimeout"` // seconds, per attempt
	RetryAttempts   int `toml:"RetryAttempts"`   // total attempts, incl. the first call
	RetryBaseMs     int `toml:"RetryBaseMs"`
	RetryMaxMs      int `toml:"RetryMaxMs"`
	// debate shape
	MaxHistory      int `toml:"MaxHistory"` // prompt context bound, oldest dropped first
	MaxSentences    int `toml:"MaxSentences"`
	DebateTimeLimit int `toml:"DebateTimeLimit"` // seconds before the judge steps in
	// secrets, env only
	GoogleAPIKey string
	YarnGPTKey   string
}

func defaults() *Config {
	return &Config{
		ListenAddr:      "localhost:8080",
		DBPath:          "debator.db",
		StaticDir:       "static",
		LLMAPI:          "https://generativelanguage.googleapis.com/v1beta",
		LLMModel:        "gemini-2.0-flash-exp",
		LLMTemperature:  0.8,
		TTSAPI:          "https://yarngpt.ai/api/v1/tts",
		TTSVoice:        "Osagie",
		TTSFormat:       "mp3",
		TTSFallbackLang: "en",
		TTSSpeed:        1.0,
		ProviderTimeout: 15,
		RetryAttempts:   2,
		RetryBaseMs:     250,
		RetryMaxMs:      2000,
		MaxHistory:      20,
		MaxSentences:    2,
		DebateTimeLimit: 300,
	}
}

func LoadConfig(fn string) (*Config, error) {
	if fn == "" {
		fn = "config.toml"
	}
	config := defaults()
	if _, err := toml.DecodeFile(fn, config); err != nil {
		// missing config file is fine; defaults + env cover everything
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	config.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	config.YarnGPTKey = os.Getenv("YARNGPT_API_KEY")
	return config, nil
}

// Validate checks the startup-fatal part of the config: both provider
// secrets have to be present before the server starts taking requests.
func (c *Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return errors.New("GOOGLE_API_KEY not set")
	}
	if c.YarnGPTKey == "" {
		return errors.New("YARNGPT_API_KEY not set")
	}
	return nil
}
