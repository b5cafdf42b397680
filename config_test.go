/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"cert and key", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"min above max", func(c *Config) { c.minPlayers, c.maxPlayers = 4, 3 }, true},
		{"zero min", func(c *Config) { c.minPlayers = 0 }, true},
		{"zero idle timeout", func(c *Config) { c.idleTimeout = 0 }, true},
		{"zero send buffer", func(c *Config) { c.sendBuffer = 0 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.modify(cfg)

			err := cfg.validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestNewCmd_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("WORDCHAIN_PORT", "9090")
	t.Setenv("WORDCHAIN_STRICT_TURNS", "true")
	t.Setenv("WORDCHAIN_IDLE_TIMEOUT", "30s")

	cfg := &Config{}
	_ = newCmd(cfg)

	if cfg.port != 9090 {
		t.Fatalf("port: got %d, want 9090", cfg.port)
	}
	if !cfg.strictTurns {
		t.Fatalf("strict turns were not enabled from the environment")
	}
	if cfg.idleTimeout != 30*time.Second {
		t.Fatalf("idle timeout: got %s, want 30s", cfg.idleTimeout)
	}
	if cfg.minPlayers != 2 || cfg.maxPlayers != 5 {
		t.Fatalf("player limits: got %d-%d, want 2-5", cfg.minPlayers, cfg.maxPlayers)
	}
}
