package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeBatch       = "batch"
	ModeIncremental = "incremental"

	IndexBackendMemory = "memory"
	IndexBackendQdrant = "qdrant"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	Feedback  FeedbackConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Storage   StorageConfig
	Ranking   RankingConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	Mode           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type EmbeddingConfig struct {
	Provider  string
	Model     string
	Dimension int
	CacheSize int64
	OllamaURL string
}

type FeedbackConfig struct {
	Provider string
	URL      string
	Model    string
	Timeout  time.Duration
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type StorageConfig struct {
	UploadPath     string
	MaxFileSize    int64
	MaxRequestSize int64
}

type RankingConfig struct {
	TopK         int
	IndexBackend string
}

type WorkerConfig struct {
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Env:            getEnv("ENV", "development"),
			Mode:           strings.ToLower(getEnv("RANKER_MODE", ModeIncremental)),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_ranker"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resumes"),
		},
		Embedding: EmbeddingConfig{
			Provider:  strings.ToLower(getEnv("EMBEDDING_PROVIDER", "ollama")),
			Model:     getEnv("EMBEDDING_MODEL", "all-minilm"),
			Dimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
			CacheSize: getEnvAsInt64("EMBEDDING_CACHE_SIZE", 1024),
			OllamaURL: getEnv("OLLAMA_URL", "http://localhost:11434"),
		},
		Feedback: FeedbackConfig{
			Provider: strings.ToLower(getEnv("FEEDBACK_PROVIDER", "ollama")),
			URL:      getEnv("FEEDBACK_URL", "http://localhost:11434/api/generate"),
			Model:    getEnv("FEEDBACK_MODEL", "mistral"),
			Timeout:  getEnvAsDuration("FEEDBACK_TIMEOUT", "60s"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Storage: StorageConfig{
			UploadPath:     getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			MaxRequestSize: getEnvAsInt64("MAX_REQUEST_SIZE", 104857600),
		},
		Ranking: RankingConfig{
			TopK:         getEnvAsInt("TOP_K", 5),
			IndexBackend: strings.ToLower(getEnv("INDEX_BACKEND", IndexBackendMemory)),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),
		},
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case ModeBatch, ModeIncremental:
	default:
		return fmt.Errorf("invalid RANKER_MODE %q: want %q or %q", c.Server.Mode, ModeBatch, ModeIncremental)
	}

	switch c.Ranking.IndexBackend {
	case IndexBackendMemory, IndexBackendQdrant:
	default:
		return fmt.Errorf("invalid INDEX_BACKEND %q: want %q or %q", c.Ranking.IndexBackend, IndexBackendMemory, IndexBackendQdrant)
	}

	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.Embedding.Dimension)
	}
	if c.Ranking.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.Ranking.TopK)
	}
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.Worker.Concurrency)
	}
	// Credentials are allowed, which rules out the wildcard origin.
	if len(c.Server.AllowedOrigins) == 0 || slices.Contains(c.Server.AllowedOrigins, "*") {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins, got %v", c.Server.AllowedOrigins)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	var values []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
