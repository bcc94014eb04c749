package config

import (
	"os"
	"strconv"
)

// Env holds host settings read from the environment.
// They serve as defaults for command-line flags.
type Env struct {
	DBPath   string
	LogLevel string
	HTTPAddr string
	SSHAddr  string
	HostKey  string
	Player   string
	TickMS   int
}

// LoadEnv reads MAZE_* variables, falling back to built-in defaults.
func LoadEnv() Env {
	return Env{
		DBPath:   getEnv("MAZE_DB", "~/.maze/scores.db"),
		LogLevel: getEnv("MAZE_LOG_LEVEL", "info"),
		HTTPAddr: getEnv("MAZE_HTTP_ADDR", ":8080"),
		SSHAddr:  getEnv("MAZE_SSH_ADDR", ":23234"),
		HostKey:  getEnv("MAZE_HOST_KEY", ".ssh/maze_ed25519"),
		Player:   getEnv("MAZE_PLAYER", getEnv("USER", "player")),
		TickMS:   getEnvInt("MAZE_TICK_MS", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
