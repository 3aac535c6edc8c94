package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	Marker      MarkerConfig      `yaml:"marker"`
	SRT         SRTConfig         `yaml:"srt"`
	Audio       AudioConfig       `yaml:"audio"`
	Cleaner     CleanerConfig     `yaml:"cleaner"`
	Video       VideoConfig       `yaml:"video"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	YouTube     YouTubeConfig     `yaml:"youtube"`
	Publish     PublishConfig     `yaml:"publish"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type WhisperConfig struct {
	URL      string `yaml:"url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Prompt   string `yaml:"prompt"`
}

// MarkerConfig is the sole tuning surface of the homily detector.
type MarkerConfig struct {
	Pattern          string  `yaml:"pattern"`
	EndStrategy      string  `yaml:"end_strategy"`
	SilenceThreshold float64 `yaml:"silence_threshold"`
	ExtractVariant   string  `yaml:"extract_variant"`
}

type SRTConfig struct {
	// Shift is added to every caption timestamp to account for the intro
	// video prepended ahead of the homily footage.
	Shift float64 `yaml:"shift"`
}

type AudioConfig struct {
	// TrimEdge seconds are cut from both ends of the cleaned audio to drop
	// the cleanup service's fade artifacts.
	TrimEdge   float64 `yaml:"trim_edge"`
	PadSilence float64 `yaml:"pad_silence"`
}

type CleanerConfig struct {
	URL    string `yaml:"url"`
	Preset string `yaml:"preset"`
}

type VideoConfig struct {
	IntroPath string `yaml:"intro_path"`
	Encoder   string `yaml:"encoder"`
	Preset    string `yaml:"preset"`
}

type MetadataConfig struct {
	Provider string `yaml:"provider"` // "openai" or "gemini"
	Model    string `yaml:"model"`
}

type YouTubeConfig struct {
	CategoryID string `yaml:"category_id"`
	Privacy    string `yaml:"privacy"`
}

type PublishConfig struct {
	ContentDir    string `yaml:"content_dir"`
	ContentBranch string `yaml:"content_branch"`
}

type PathsConfig struct {
	Input         string `yaml:"input"`
	WorkingSuffix string `yaml:"working_suffix"`
	FinalSuffix   string `yaml:"final_suffix"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Secrets are API credentials sourced from the environment, never from the
// YAML file.
type Secrets struct {
	OpenAIKey          string
	GeminiKeys         []string
	AuphonicKey        string
	YouTubeClientID    string
	YouTubeSecret      string
	YouTubeRefreshToken string
}

// Load reads the YAML configuration file, validates it and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadSecrets loads the .env file when present, then reads credentials from
// the environment. A missing .env is not an error; a deployment may supply
// real environment variables instead.
func LoadSecrets(envFile string) *Secrets {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	var geminiKeys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			geminiKeys = append(geminiKeys, k)
		}
	}

	return &Secrets{
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GeminiKeys:         geminiKeys,
		AuphonicKey:        os.Getenv("AUPHONIC_API_KEY"),
		YouTubeClientID:    os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeSecret:      os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeRefreshToken: os.Getenv("YOUTUBE_REFRESH_TOKEN"),
	}
}

func (c *Config) Validate() error {
	if c.Whisper.URL == "" {
		return fmt.Errorf("whisper.url is required")
	}
	if c.Whisper.Model == "" {
		return fmt.Errorf("whisper.model is required")
	}

	if c.Marker.Pattern == "" {
		c.Marker.Pattern = "Holy Ghost|Spirit. Amen."
	}
	if c.Marker.EndStrategy == "" {
		c.Marker.EndStrategy = "marker"
	}
	if c.Marker.EndStrategy == "silence" && c.Marker.SilenceThreshold <= 0 {
		return fmt.Errorf("marker.silence_threshold is required for the silence end strategy")
	}
	if c.Marker.ExtractVariant == "" {
		c.Marker.ExtractVariant = "strict"
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.SRT.Shift == 0 {
		c.SRT.Shift = 11.0
	}
	if c.Audio.TrimEdge == 0 {
		c.Audio.TrimEdge = 6.4
	}
	if c.Audio.PadSilence == 0 {
		c.Audio.PadSilence = 1.0
	}
	if c.Cleaner.URL == "" {
		c.Cleaner.URL = "https://auphonic.com/api"
	}
	if c.Video.Encoder == "" {
		c.Video.Encoder = "libx264"
	}
	if c.Video.Preset == "" {
		c.Video.Preset = "medium"
	}
	if c.Metadata.Provider == "" {
		c.Metadata.Provider = "openai"
	}
	if c.Metadata.Provider != "openai" && c.Metadata.Provider != "gemini" {
		return fmt.Errorf("metadata.provider must be \"openai\" or \"gemini\", got %q", c.Metadata.Provider)
	}
	if c.Metadata.Model == "" {
		if c.Metadata.Provider == "gemini" {
			c.Metadata.Model = "gemini-2.5-flash"
		} else {
			c.Metadata.Model = "gpt-4o"
		}
	}
	if c.YouTube.CategoryID == "" {
		c.YouTube.CategoryID = "22"
	}
	if c.YouTube.Privacy == "" {
		c.YouTube.Privacy = "public"
	}
	if c.Publish.ContentBranch == "" {
		c.Publish.ContentBranch = "main"
	}
	if c.Paths.WorkingSuffix == "" {
		c.Paths.WorkingSuffix = "working"
	}
	if c.Paths.FinalSuffix == "" {
		c.Paths.FinalSuffix = "final"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}
