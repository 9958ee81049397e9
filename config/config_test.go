package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("YARNGPT_API_KEY", "y-key")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.LLMModel != "gemini-2.0-flash-exp" {
		t.Errorf("unexpected default model: %s", cfg.LLMModel)
	}
	if cfg.TTSVoice != "Osagie" {
		t.Errorf("unexpected default voice: %s", cfg.TTSVoice)
	}
	if cfg.RetryAttempts != 2 || cfg.MaxHistory != 20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.GoogleAPIKey != "g-key" || cfg.YarnGPTKey != "y-key" {
		t.Errorf("secrets not read from env: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("YARNGPT_API_KEY", "y-key")
	fn := filepath.Join(t.TempDir(), "config.toml")
	content := `
ListenAddr = "localhost:9090"
TTS_VOICE = "Idera"
MaxHistory = 5
`
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(fn)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.ListenAddr != "localhost:9090" {
		t.Errorf("file value not applied: %s", cfg.ListenAddr)
	}
	if cfg.TTSVoice != "Idera" {
		t.Errorf("file value not applied: %s", cfg.TTSVoice)
	}
	if cfg.MaxHistory != 5 {
		t.Errorf("file value not applied: %d", cfg.MaxHistory)
	}
	// untouched keys keep defaults
	if cfg.LLMModel != "gemini-2.0-flash-exp" {
		t.Errorf("default lost: %s", cfg.LLMModel)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		google  string
		yarn    string
		wantErr bool
	}{
		{google: "g", yarn: "y", wantErr: false},
		{google: "", yarn: "y", wantErr: true},
		{google: "g", yarn: "", wantErr: true},
		{google: "", yarn: "", wantErr: true},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("run_%d", i), func(t *testing.T) {
			cfg := &Config{GoogleAPIKey: tc.google, YarnGPTKey: tc.yarn}
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("unexpected validation result: %v", err)
			}
		})
	}
}
