package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/richhaase/codescan/internal/config"
)

func TestConfigInit_CreatesFile(t *testing.T) {
	dir := isolate(t)

	res := execute(t, "", "config", "init")
	if res.status != 0 {
		t.Fatalf("unexpected status %d: %s", res.status, res.stderr)
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("expected .codescan.yaml to be created")
	}

	// The starter file must load cleanly.
	result, err := config.LoadFromPathWithWarnings(configPath)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("starter config has warnings: %v", result.Warnings)
	}
}

func TestConfigInit_FailsIfExists(t *testing.T) {
	dir := isolate(t)

	configPath := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := execute(t, "", "config", "init")
	if res.status == 0 {
		t.Fatal("expected error when file already exists")
	}
	if !strings.Contains(res.stderr, "already exists") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)

	res := execute(t, "", "config", "show")
	if res.status != 0 {
		t.Fatalf("unexpected status %d: %s", res.status, res.stderr)
	}
	for _, want := range []string{"no config file", "http://localhost:8000", "1m0s", "5s", "python", "(none)"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, res.stdout)
		}
	}
}

func TestConfigShow_Precedence(t *testing.T) {
	dir := isolate(t)

	cfg := "base_url: http://file:1\ntimeout: 30s\nlanguage: java\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CODESCAN_TIMEOUT", "45s")

	res := execute(t, "", "config", "show", "--base-url", "http://flag:2")
	if res.status != 0 {
		t.Fatalf("unexpected status %d: %s", res.status, res.stderr)
	}
	for _, want := range []string{config.ConfigFileName, "http://flag:2", "45s", "java"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "http://file:1") {
		t.Errorf("flag should override file base_url:\n%s", res.stdout)
	}
}

func TestConfigShow_ExplicitPath(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("language: rust\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := execute(t, "", "config", "show", "--config", path)
	if res.status != 0 {
		t.Fatalf("unexpected status %d: %s", res.status, res.stderr)
	}
	if !strings.Contains(res.stdout, "rust") {
		t.Errorf("expected rust in output:\n%s", res.stdout)
	}

	res = execute(t, "", "config", "show", "--config", filepath.Join(dir, "missing.yaml"))
	if res.status == 0 {
		t.Error("expected error for missing --config file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr bool
		want    string
	}{
		{name: "no file", want: "Configuration is valid."},
		{name: "valid file", file: "language: php\n", want: "Configuration is valid."},
		{name: "unknown key", file: "langauge: php\n", want: "did you mean"},
		{name: "bad language", file: "language: cobol\n", wantErr: true, want: "language"},
		{name: "bad yaml", file: "timeout: [\n", wantErr: true, want: "invalid"},
		{name: "bad env duration", env: map[string]string{"CODESCAN_TIMEOUT": "soon"}, wantErr: true, want: "CODESCAN_TIMEOUT"},
		{name: "bad env url", env: map[string]string{"CODESCAN_BASE_URL": "localhost"}, wantErr: true, want: "base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			res := execute(t, "", "config", "validate")
			if gotErr := res.status != 0; gotErr != tt.wantErr {
				t.Errorf("status = %d, wantErr %v\nstderr: %s", res.status, tt.wantErr, res.stderr)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("expected %q in stderr:\n%s", tt.want, res.stderr)
			}
		})
	}
}
