package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Initialize with empty config
	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig == nil {
		t.Fatal("AppConfig is nil")
	}

	// Check defaults
	if AppConfig.Server.Port != 8483 {
		t.Errorf("Expected default port 8483, got %d", AppConfig.Server.Port)
	}
	if AppConfig.Server.Mode != "release" {
		t.Errorf("Expected default mode 'release', got %s", AppConfig.Server.Mode)
	}
	if AppConfig.Database.Path != "data/bilinote.db" {
		t.Errorf("Expected default db path 'data/bilinote.db', got %s", AppConfig.Database.Path)
	}
	if AppConfig.Resolver.DefaultMaxVideos != 50 {
		t.Errorf("Expected default max videos 50, got %d", AppConfig.Resolver.DefaultMaxVideos)
	}
	if AppConfig.Resolver.PageCallCap != 50 {
		t.Errorf("Expected page call cap 50, got %d", AppConfig.Resolver.PageCallCap)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	// Set environment variable
	os.Setenv("BILINOTE_SERVER_PORT", "9999")
	defer os.Unsetenv("BILINOTE_SERVER_PORT")

	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.Server.Port != 9999 {
		t.Errorf("Expected port 9999 from env, got %d", AppConfig.Server.Port)
	}
}

func TestLoadConfig_ResolverEnvOverride(t *testing.T) {
	os.Setenv("BILINOTE_RESOLVER_DEFAULT_MAX_VIDEOS", "25")
	defer os.Unsetenv("BILINOTE_RESOLVER_DEFAULT_MAX_VIDEOS")

	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.Resolver.DefaultMaxVideos != 25 {
		t.Errorf("Expected max videos 25 from env, got %d", AppConfig.Resolver.DefaultMaxVideos)
	}
}
