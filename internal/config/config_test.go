package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		SQLiteDBPath:      "./data/test.db",
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		TokenDuration:     24 * time.Hour,
		SchedulerEnabled:  true,
		SchedulerInterval: time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "short jwt secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: true},
		{name: "empty db path", mutate: func(c *Config) { c.SQLiteDBPath = "" }, wantErr: true},
		{name: "scheduler interval too short", mutate: func(c *Config) { c.SchedulerInterval = time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Port)
	}
	if cfg.SchedulerInterval != time.Hour {
		t.Errorf("default scheduler interval = %s, want 1h", cfg.SchedulerInterval)
	}
	if !cfg.SchedulerEnabled {
		t.Error("scheduler should default to enabled")
	}
}
