package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config aggregates application-wide configuration values.
type Config struct {
	Port              string
	MaxFileSize       int64
	AllowedExtensions map[string]struct{}
	UploadDir         string
	OutputDir         string

	// LLM collaborator settings
	Provider    string
	GeminiModel string
	OllamaModel string
	OpenAIModel string

	// OCR settings
	TesseractLangs []string
}

// fileConfig mirrors Config for the optional YAML overlay pointed at by
// CARDSCAN_CONFIG. Zero values leave the environment-derived value in place.
type fileConfig struct {
	Port              string   `yaml:"port"`
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	UploadDir         string   `yaml:"upload_dir"`
	OutputDir         string   `yaml:"output_dir"`
	Provider          string   `yaml:"provider"`
	GeminiModel       string   `yaml:"gemini_model"`
	OllamaModel       string   `yaml:"ollama_model"`
	OpenAIModel       string   `yaml:"openai_model"`
	TesseractLangs    []string `yaml:"tesseract_langs"`
}

const defaultExtensions = ".jpg,.jpeg,.png,.bmp,.tiff,.webp"

// Load reads configuration from environment variables, applies sane defaults,
// and overlays values from the YAML file named by CARDSCAN_CONFIG if set.
func Load() (*Config, error) {
	maxSize, err := parseSize(getEnv("MAX_FILE_SIZE", "10485760"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE value: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8787"),
		MaxFileSize:       maxSize,
		AllowedExtensions: parseExtensions(strings.Split(getEnv("ALLOWED_EXTENSIONS", defaultExtensions), ",")),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		OutputDir:         getEnv("OUTPUT_DIR", "outputs"),
		Provider:          getEnv("CARDSCAN_PROVIDER", "gemini"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "mistral-small3.2:24b"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o"),
		TesseractLangs:    splitNonEmpty(getEnv("TESSERACT_LANGS", "")),
	}

	if path := os.Getenv("CARDSCAN_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

// ExtensionAllowed reports whether the given file extension (including the
// leading dot) is accepted for upload. The check is case-insensitive.
func (c *Config) ExtensionAllowed(ext string) bool {
	_, ok := c.AllowedExtensions[strings.ToLower(ext)]
	return ok
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.MaxFileSize > 0 {
		c.MaxFileSize = fc.MaxFileSize
	}
	if len(fc.AllowedExtensions) > 0 {
		c.AllowedExtensions = parseExtensions(fc.AllowedExtensions)
	}
	if fc.UploadDir != "" {
		c.UploadDir = fc.UploadDir
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if fc.Provider != "" {
		c.Provider = fc.Provider
	}
	if fc.GeminiModel != "" {
		c.GeminiModel = fc.GeminiModel
	}
	if fc.OllamaModel != "" {
		c.OllamaModel = fc.OllamaModel
	}
	if fc.OpenAIModel != "" {
		c.OpenAIModel = fc.OpenAIModel
	}
	if len(fc.TesseractLangs) > 0 {
		c.TesseractLangs = fc.TesseractLangs
	}

	return nil
}

func parseExtensions(exts []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}
	return allowed
}

func parseSize(value string) (int64, error) {
	size, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a byte count, got %q", value)
	}
	if size <= 0 {
		return 0, fmt.Errorf("byte count must be positive, got %d", size)
	}
	return size, nil
}

func splitNonEmpty(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
