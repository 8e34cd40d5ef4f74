package models

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_DIR", "LOG_STDOUT", "OPEN_BROWSER", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.LogDir != "logs" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if !cfg.LogStdout || cfg.OpenBrowser {
		t.Errorf("Expected stdout logging on and the browser off by default, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_STDOUT", "false")
	t.Setenv("OPEN_BROWSER", "not-a-bool")
	t.Setenv("ADMIN_USERNAME", "alice")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := LoadConfig()
	if cfg.LogStdout {
		t.Error("Expected LOG_STDOUT=false to turn off stdout logging")
	}
	if cfg.OpenBrowser {
		t.Error("Expected an invalid OPEN_BROWSER to fall back to false")
	}
	if cfg.AdminUsername != "alice" || cfg.AdminPassword != "hunter2" {
		t.Errorf("Unexpected admin credentials %q/%q", cfg.AdminUsername, cfg.AdminPassword)
	}
}
