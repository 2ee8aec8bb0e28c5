package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aashish23092/finstatement-extractor/resolver"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	LogLevel          string
	ThresholdsFile    string
	AI                AIConfig
}

// AIConfig controls the optional LLM fallback for accounts the core
// pipeline leaves unresolved.
type AIConfig struct {
	Enabled     bool
	APIKey      string
	Model       string
	Timeout     time.Duration
	PrefixChars int
	MaxItems    int
}

// Usable reports whether the fallback is switched on and has credentials.
func (c AIConfig) Usable() bool {
	return c.Enabled && c.APIKey != ""
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata"),
		MaxFileSize:       int64(getEnvInt("MAX_FILE_SIZE", 10*1024*1024)), // 10 MB
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ThresholdsFile:    os.Getenv("THRESHOLDS_FILE"),
		AI: AIConfig{
			Enabled:     getEnvBool("AI_FALLBACK_ENABLED", false),
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
			PrefixChars: getEnvInt("AI_PREFIX_CHARS", 3000),
			MaxItems:    getEnvInt("AI_MAX_ITEMS", 10),
		},
	}
}

// thresholdsFile distinguishes an absent field from an explicit value.
type thresholdsFile struct {
	Table         *int `yaml:"table"`
	Pattern       *int `yaml:"pattern"`
	Fallback      *int `yaml:"fallback"`
	SectionWindow *int `yaml:"section_window"`
}

// LoadThresholds reads stage thresholds from a YAML file. An empty path
// returns the defaults; fields absent from the file keep their defaults.
// An explicit zero is rejected because a zero field selects the default.
func LoadThresholds(path string) (resolver.Thresholds, error) {
	if path == "" {
		return resolver.DefaultThresholds(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return resolver.Thresholds{}, fmt.Errorf("read thresholds: %w", err)
	}
	var file thresholdsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return resolver.Thresholds{}, fmt.Errorf("parse thresholds %s: %w", path, err)
	}

	var t resolver.Thresholds
	fields := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"table", file.Table, &t.Table},
		{"pattern", file.Pattern, &t.Pattern},
		{"fallback", file.Fallback, &t.Fallback},
		{"section_window", file.SectionWindow, &t.SectionWindow},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if *f.src == 0 {
			return resolver.Thresholds{}, fmt.Errorf("thresholds %s: %s must be positive; omit it to keep the default", path, f.name)
		}
		*f.dst = *f.src
	}

	if err := t.Validate(); err != nil {
		return resolver.Thresholds{}, fmt.Errorf("thresholds %s: %w", path, err)
	}
	return t.WithDefaults(), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
