package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	News     NewsConfig     `yaml:"news"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Timezone string         `yaml:"timezone"`
}

type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	APIKey              string `yaml:"api_key"` // env SAMACHAR_API_KEY
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type NewsConfig struct {
	APIKey  string   `yaml:"api_key"` // env NEWSAPI_KEY
	Sources []string `yaml:"sources"`
	Feeds   []string `yaml:"feeds"`
}

type AIConfig struct {
	HuggingFaceToken string `yaml:"huggingface_token"` // env HF_API_TOKEN
	SummaryModel     string `yaml:"summary_model"`
	GroqKey          string `yaml:"groq_key"` // env GROQ_API_KEY
	QuizModel        string `yaml:"quiz_model"`
	DigestModel      string `yaml:"digest_model"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"` // env MINIO_ACCESS_KEY
	SecretKey string `yaml:"secret_key"` // env MINIO_SECRET_KEY
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// JobsConfig holds the local times (HH:MM in the configured time zone) at
// which the scheduler fires each job. The digest runs weekly, on DigestDay.
type JobsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	IngestTime string `yaml:"ingest_time"`
	QuizTime   string `yaml:"quiz_time"`
	DigestTime string `yaml:"digest_time"`
	DigestDay  string `yaml:"digest_day"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Path: "./samachar.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		News: NewsConfig{
			Sources: []string{
				"the-hindu", "the-times-of-india", "hindustan-times",
				"the-indian-express", "news18-com",
			},
			Feeds: []string{
				"https://indianexpress.com/section/india/feed/",
				"https://www.thehindu.com/news/national/feeder/default.rss",
				"https://cfo.economictimes.indiatimes.com/rss/topstories",
				"https://timesofindia.indiatimes.com/rssfeedstopstories.cms",
				"https://www.thehindu.com/news/international/feeder/default.rss",
				"https://feeds.feedburner.com/ndtvnews-top-stories",
				"https://www.indiatoday.in/rss/1206578",
				"https://www.firstpost.com/commonfeeds/v1/mfp/rss/web-stories.xml",
			},
		},
		AI: AIConfig{
			SummaryModel: "google/pegasus-xsum",
			QuizModel:    "llama3-70b-8192",
			DigestModel:  "llama3-8b-8192",
		},
		Storage: StorageConfig{
			Bucket: "weekly-digests",
		},
		Jobs: JobsConfig{
			Enabled:    true,
			IngestTime: "06:30",
			QuizTime:   "06:35",
			DigestTime: "06:40",
			DigestDay:  "Sunday",
		},
		Timezone: "Asia/Kolkata",
	}
}

// Load reads a YAML config file and merges it over defaults. If the file does
// not exist, defaults are returned without error. Secrets left empty in the
// file are filled from the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults", "path", path)
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	fromEnv(&c.Server.APIKey, "SAMACHAR_API_KEY")
	fromEnv(&c.News.APIKey, "NEWSAPI_KEY")
	fromEnv(&c.AI.HuggingFaceToken, "HF_API_TOKEN")
	fromEnv(&c.AI.GroqKey, "GROQ_API_KEY")
	fromEnv(&c.Storage.AccessKey, "MINIO_ACCESS_KEY")
	fromEnv(&c.Storage.SecretKey, "MINIO_SECRET_KEY")
}

func fromEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
