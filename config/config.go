package config

import (
	"os"
	"strconv"
	"time"
)

// Pipeline holds the tunables of the flashcard generation pipeline. All
// values come from the environment with sensible defaults; the .env file is
// loaded in main before Load is called.
type Pipeline struct {
	ChunkSize     int           // max chunk length in runes
	ChunkLookback int           // window for snapping a cut to a paragraph break
	Concurrency   int           // chunks in flight at once
	MaxRetries    int           // extra attempts per chunk on retryable errors
	RetryBackoff  time.Duration // sleep between attempts
	DedupOverlap  float64       // token-overlap threshold for near-duplicates
	JobTimeout    time.Duration // end-to-end budget for one /process-file request

	GeminiAPIKey   string
	GeminiModel    string
	BackendTimeout time.Duration // per model call
}

func Load() Pipeline {
	return Pipeline{
		ChunkSize:     envInt("CHUNK_SIZE", 3000),
		ChunkLookback: envInt("CHUNK_LOOKBACK", 400),
		Concurrency:   envInt("GEN_CONCURRENCY", 4),
		MaxRetries:    envInt("GEN_MAX_RETRIES", 2),
		RetryBackoff:  envDuration("GEN_RETRY_BACKOFF", time.Second),
		DedupOverlap:  envFloat("DEDUP_OVERLAP", 0.8),
		JobTimeout:    envDuration("JOB_TIMEOUT", 5*time.Minute),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envStr("GEMINI_MODEL", "gemini-2.0-flash"),
		BackendTimeout: envDuration("BACKEND_TIMEOUT", 60*time.Second),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
