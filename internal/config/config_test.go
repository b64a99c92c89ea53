package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("UPLOAD_URL_PATH", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("default port: got %s", cfg.Port)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("default listen addr: got %s", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "pannben.db" {
		t.Fatalf("default database path: got %s", cfg.DatabasePath)
	}
	if cfg.UploadURLPath != "/uploads" {
		t.Fatalf("default upload url path: got %s", cfg.UploadURLPath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SESSION_SECRET", "hemlig")

	cfg := Load()

	if cfg.Port != "9090" || cfg.ListenAddr != "127.0.0.1:9090" {
		t.Fatalf("env override not applied: %+v", cfg)
	}
	if cfg.DatabasePath != "/tmp/test.db" || cfg.SessionSecret != "hemlig" {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}
