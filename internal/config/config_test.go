// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("SOLO_BLOG_HOST", "example.com")
	t.Setenv("SOLO_BLOG_TITLE", "My Blog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BlogHost != "example.com" {
		t.Errorf("BlogHost = %q, want %q", cfg.BlogHost, "example.com")
	}
	if cfg.BlogTitle != "My Blog" {
		t.Errorf("BlogTitle = %q, want %q", cfg.BlogTitle, "My Blog")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.StatFlushSpec != "*/10 * * * *" {
		t.Errorf("StatFlushSpec = %q, want default", cfg.StatFlushSpec)
	}
}

func TestLoadStripsScheme(t *testing.T) {
	t.Setenv("SOLO_BLOG_HOST", "https://example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BlogHost != "example.com" {
		t.Errorf("BlogHost = %q, want %q", cfg.BlogHost, "example.com")
	}
}

func TestLoadMissingHost(t *testing.T) {
	t.Setenv("SOLO_BLOG_HOST", "")

	if _, err := Load(); err == nil {
		t.Error("Load() with empty host should fail")
	}
}

func TestIsLocalHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:8080", true},
		{"127.0.0.1", true},
		{"127.0.0.1:8080", true},
		{"[::1]:8080", true},
		{"example.com", false},
		{"example.com:8080", false},
		{"blog.example.com", false},
	}

	for _, tt := range tests {
		cfg := Config{BlogHost: tt.host}
		if got := cfg.IsLocalHost(); got != tt.want {
			t.Errorf("IsLocalHost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9090}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9090" {
		t.Errorf("ServerAddr() = %q, want %q", got, "0.0.0.0:9090")
	}
}
