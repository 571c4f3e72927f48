package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "tinyhttpd-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Test case 1: Valid configuration file
	validConfigPath := filepath.Join(tempDir, "valid-config.yaml")
	validConfigContent := `
server:
  read_buffer_size: 8192
limits:
  max_method_len: 16
  max_path_len: 256
  max_body_len: 65536
routes:
  - path: /
    file: ./www/home.html
  - path: /about
    file: ./www/about.html
backoff:
  initial_delay: 250
  max_delay: 10000
  backoff_factor: 3.0
  jitter_factor: 0.5
`
	err = os.WriteFile(validConfigPath, []byte(validConfigContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write valid config file: %v", err)
	}

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	// Verify the loaded configuration matches expected values
	if cfg.Server.ReadBufferSize != 8192 {
		t.Errorf("Expected read buffer size 8192, got %d", cfg.Server.ReadBufferSize)
	}

	if cfg.Limits.MaxMethodLen != 16 {
		t.Errorf("Expected max method len 16, got %d", cfg.Limits.MaxMethodLen)
	}

	if cfg.Limits.MaxPathLen != 256 {
		t.Errorf("Expected max path len 256, got %d", cfg.Limits.MaxPathLen)
	}

	if cfg.Limits.MaxBodyLen != 65536 {
		t.Errorf("Expected max body len 65536, got %d", cfg.Limits.MaxBodyLen)
	}

	expectedRoutes := []RouteConfig{
		{Path: "/", File: "./www/home.html"},
		{Path: "/about", File: "./www/about.html"},
	}
	if !reflect.DeepEqual(cfg.Routes, expectedRoutes) {
		t.Errorf("Expected routes %v, got %v", expectedRoutes, cfg.Routes)
	}

	if cfg.Backoff.InitialDelay != 250 {
		t.Errorf("Expected initial delay 250, got %d", cfg.Backoff.InitialDelay)
	}

	if cfg.Backoff.MaxDelay != 10000 {
		t.Errorf("Expected max delay 10000, got %d", cfg.Backoff.MaxDelay)
	}

	if cfg.Backoff.BackoffFactor != 3.0 {
		t.Errorf("Expected backoff factor 3.0, got %f", cfg.Backoff.BackoffFactor)
	}

	// Test case 2: Default values when settings are omitted
	minimalConfigPath := filepath.Join(tempDir, "minimal-config.yaml")
	minimalConfigContent := `
server:
  read_buffer_size: 1024
`
	err = os.WriteFile(minimalConfigPath, []byte(minimalConfigContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write minimal config file: %v", err)
	}

	cfg, err = Load(minimalConfigPath)
	if err != nil {
		t.Fatalf("Failed to load minimal config: %v", err)
	}

	if cfg.Server.ReadBufferSize != 1024 {
		t.Errorf("Expected read buffer size 1024, got %d", cfg.Server.ReadBufferSize)
	}

	// Omitted settings keep the defaults
	if cfg.Limits.MaxMethodLen != 9 {
		t.Errorf("Expected default max method len 9, got %d", cfg.Limits.MaxMethodLen)
	}

	if cfg.Limits.MaxPathLen != 99 {
		t.Errorf("Expected default max path len 99, got %d", cfg.Limits.MaxPathLen)
	}

	if len(cfg.Routes) != 2 || cfg.Routes[0].Path != "/" || cfg.Routes[1].Path != "/test" {
		t.Errorf("Expected default route table, got %v", cfg.Routes)
	}

	if cfg.Logging.LogFilePath != "tinyhttpd.log" {
		t.Errorf("Expected default log file path 'tinyhttpd.log', got '%s'", cfg.Logging.LogFilePath)
	}

	// Test case 3: Nonexistent configuration file
	_, err = Load(filepath.Join(tempDir, "nonexistent.yaml"))
	if err == nil {
		t.Error("Expected error loading nonexistent config file")
	}

	// Test case 4: Malformed configuration file
	malformedConfigPath := filepath.Join(tempDir, "malformed-config.yaml")
	err = os.WriteFile(malformedConfigPath, []byte("routes: {not: [valid"), 0644)
	if err != nil {
		t.Fatalf("Failed to write malformed config file: %v", err)
	}

	_, err = Load(malformedConfigPath)
	if err == nil {
		t.Error("Expected error loading malformed config file")
	}
}

func TestLoadDefault(t *testing.T) {
	cfg := LoadDefault()

	if cfg.Server.ReadBufferSize != 30000 {
		t.Errorf("Expected default read buffer size 30000, got %d", cfg.Server.ReadBufferSize)
	}

	if cfg.Limits.MaxBodyLen != 4095 {
		t.Errorf("Expected default max body len 4095, got %d", cfg.Limits.MaxBodyLen)
	}

	expectedRoutes := []RouteConfig{
		{Path: "/", File: "./public_html/index.html"},
		{Path: "/test", File: "./public_html/test.html"},
	}
	if !reflect.DeepEqual(cfg.Routes, expectedRoutes) {
		t.Errorf("Expected default routes %v, got %v", expectedRoutes, cfg.Routes)
	}

	if cfg.Backoff.InitialDelay != 100 {
		t.Errorf("Expected default initial delay 100, got %d", cfg.Backoff.InitialDelay)
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Nonexistent file falls back to defaults instead of failing
	cfg := LoadOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("Expected non-nil config from LoadOrDefault")
	}

	if cfg.Server.ReadBufferSize != 30000 {
		t.Errorf("Expected default read buffer size 30000, got %d", cfg.Server.ReadBufferSize)
	}
}
