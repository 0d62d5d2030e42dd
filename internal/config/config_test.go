package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TESSDATA_PREFIX", "OCR_LANGUAGE", "OCR_ENGINE", "OCR_WORKERS", "OCR_IMAGES_DIR", "OCR_OUTPUT_DIR", "DEBUG"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	s, err := FromEnv()

	// Assert
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	want := Settings{Language: "eng", Engine: "tesseract", Workers: 2, ImagesDir: "images", OutputDir: "output"}
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("OCR_LANGUAGE", "deu")
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TESSDATA_PREFIX=/opt/tessdata\nOCR_LANGUAGE=fra\nOCR_WORKERS=4\nDEBUG=1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// Act
	s, err := Load(path)

	// Assert
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DataPath != "/opt/tessdata" || s.Workers != 4 || !s.Debug {
		t.Errorf("env file not applied: %+v", s)
	}
	if s.Language != "deu" {
		t.Errorf("environment should win over env file, got %q", s.Language)
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestFromEnv_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"zero", "0", "-3"} {
		clearEnv(t)
		t.Setenv("OCR_WORKERS", v)
		if _, err := FromEnv(); err == nil {
			t.Errorf("OCR_WORKERS=%s: expected error", v)
		}
	}
}
