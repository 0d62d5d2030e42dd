// Package config loads ocr-tool settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the defaults the CLI starts from; flags override them.
type Settings struct {
	DataPath  string
	Language  string
	Engine    string
	Workers   int
	ImagesDir string
	OutputDir string
	Debug     bool
}

const (
	DefaultLanguage = "eng"
	DefaultEngine   = "tesseract"
	DefaultWorkers  = 2
)

// Load reads the given .env files (".env" when none are named) without
// overriding variables already set in the environment, then builds Settings.
// Missing files are ignored.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds Settings from the process environment.
func FromEnv() (Settings, error) {
	s := Settings{
		DataPath:  os.Getenv("TESSDATA_PREFIX"),
		Language:  stringVariable("OCR_LANGUAGE", DefaultLanguage),
		Engine:    stringVariable("OCR_ENGINE", DefaultEngine),
		Workers:   DefaultWorkers,
		ImagesDir: stringVariable("OCR_IMAGES_DIR", "images"),
		OutputDir: stringVariable("OCR_OUTPUT_DIR", "output"),
		Debug:     os.Getenv("DEBUG") == "1",
	}
	if v := strings.TrimSpace(os.Getenv("OCR_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Settings{}, fmt.Errorf("OCR_WORKERS must be a positive integer, got: %s", v)
		}
		s.Workers = n
	}
	return s, nil
}

func stringVariable(name, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return defaultValue
}
