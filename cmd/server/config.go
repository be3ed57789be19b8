package main

import (
	"os"
	"strconv"
	"time"
)

type config struct {
	ListenAddr      string
	DBPath          string
	Archive         bool
	QualityWindow   int
	HistoryLimit    int
	DefaultName     string
	PresetsPath     string
	ShutdownTimeout time.Duration
}

func loadConfig() config {
	return config{
		ListenAddr:      getenv("SENSES_LISTEN_ADDR", ":8080"),
		DBPath:          getenv("SENSES_DB_PATH", "senses.db"),
		Archive:         getenvBool("SENSES_ARCHIVE", false),
		QualityWindow:   getenvInt("SENSES_QUALITY_WINDOW", 0),
		HistoryLimit:    getenvInt("SENSES_HISTORY_LIMIT", 10),
		DefaultName:     getenv("SENSES_DEFAULT_NAME", "SensoryAI"),
		PresetsPath:     os.Getenv("SENSES_PRESETS"),
		ShutdownTimeout: getenvDuration("SENSES_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
