package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected port 8080, got %s", cfg.Port)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("expected log level info, got %s", cfg.LogLevel)
				}
				if cfg.WSReadTimeout != 60*time.Second {
					t.Errorf("expected WSReadTimeout 60s, got %v", cfg.WSReadTimeout)
				}
				if cfg.CacheCapacity != 1024 {
					t.Errorf("expected cache capacity 1024, got %d", cfg.CacheCapacity)
				}
				if cfg.CacheTTL != 5*time.Minute {
					t.Errorf("expected cache TTL 5m, got %v", cfg.CacheTTL)
				}
				if cfg.DefaultAnswerTimeSecs != 20 {
					t.Errorf("expected default answer time 20s, got %v", cfg.DefaultAnswerTimeSecs)
				}
				if cfg.MaxSearchAgents != 10000 {
					t.Errorf("expected max search agents 10000, got %d", cfg.MaxSearchAgents)
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PORT":                        "9000",
				"LOG_LEVEL":                   "debug",
				"WS_READ_TIMEOUT":             "30",
				"WS_WRITE_TIMEOUT":            "5",
				"ALLOWED_ORIGINS":             "http://example.com,http://test.com",
				"CACHE_CAPACITY":              "64",
				"CACHE_TTL_SECONDS":           "60",
				"DEFAULT_ANSWER_TIME_SECONDS": "30",
				"MAX_SEARCH_AGENTS":           "500",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.Port)
				}
				if cfg.LogLevel != "debug" {
					t.Errorf("expected log level debug, got %s", cfg.LogLevel)
				}
				if cfg.WSReadTimeout != 30*time.Second {
					t.Errorf("expected WSReadTimeout 30s, got %v", cfg.WSReadTimeout)
				}
				if cfg.WSWriteTimeout != 5*time.Second {
					t.Errorf("expected WSWriteTimeout 5s, got %v", cfg.WSWriteTimeout)
				}
				if len(cfg.AllowedOrigins) != 2 {
					t.Errorf("expected 2 allowed origins, got %d", len(cfg.AllowedOrigins))
				}
				if cfg.CacheCapacity != 64 {
					t.Errorf("expected cache capacity 64, got %d", cfg.CacheCapacity)
				}
				if cfg.CacheTTL != time.Minute {
					t.Errorf("expected cache TTL 1m, got %v", cfg.CacheTTL)
				}
				if cfg.DefaultAnswerTimeSecs != 30 {
					t.Errorf("expected default answer time 30s, got %v", cfg.DefaultAnswerTimeSecs)
				}
				if cfg.MaxSearchAgents != 500 {
					t.Errorf("expected max search agents 500, got %d", cfg.MaxSearchAgents)
				}
			},
		},
		{
			name: "invalid WS_READ_TIMEOUT",
			env: map[string]string{
				"WS_READ_TIMEOUT": "invalid",
			},
			wantErr: true,
		},
		{
			name: "invalid WS_WRITE_TIMEOUT",
			env: map[string]string{
				"WS_WRITE_TIMEOUT": "invalid",
			},
			wantErr: true,
		},
		{
			name: "invalid CACHE_CAPACITY",
			env: map[string]string{
				"CACHE_CAPACITY": "lots",
			},
			wantErr: true,
		},
		{
			name: "invalid CACHE_TTL_SECONDS",
			env: map[string]string{
				"CACHE_TTL_SECONDS": "forever",
			},
			wantErr: true,
		},
		{
			name: "invalid DEFAULT_ANSWER_TIME_SECONDS",
			env: map[string]string{
				"DEFAULT_ANSWER_TIME_SECONDS": "soon",
			},
			wantErr: true,
		},
		{
			name: "negative DEFAULT_ANSWER_TIME_SECONDS",
			env: map[string]string{
				"DEFAULT_ANSWER_TIME_SECONDS": "-5",
			},
			wantErr: true,
		},
		{
			name: "invalid MAX_SEARCH_AGENTS",
			env: map[string]string{
				"MAX_SEARCH_AGENTS": "many",
			},
			wantErr: true,
		},
		{
			name: "ping period derived from pong wait",
			env: map[string]string{
				"WS_READ_TIMEOUT": "100",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.PongWait != 100*time.Second {
					t.Errorf("expected PongWait 100s, got %v", cfg.PongWait)
				}
				if cfg.PingPeriod != 90*time.Second {
					t.Errorf("expected PingPeriod 90s, got %v", cfg.PingPeriod)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
