package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
)

// DefaultDataPath returns the path to the data directory.
// It uses the LODGED_DATA_PATH environment variable if set, otherwise it
// defaults to "data" in the current working directory.
func DefaultDataPath() string {
	dp := os.Getenv("LODGED_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory, which won't be created until the config is in use.
func DefaultConfig() *Config {
	dataPath := DefaultDataPath()

	return &Config{
		Name:     "Lodged",
		DataPath: dataPath,
		HTTP: HTTPConfig{
			ListenAddr: ":23240",
			PublicURL:  "http://localhost:23240",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:23241",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: "2006-01-02 15:04:05",
		},
		DB: DBConfig{
			Driver:       "sqlite",
			DataSource:   filepath.Join(dataPath, "lodged.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
			QueryTimeout: "10s",
		},
		Auth: AuthConfig{
			SessionTTL: "12h",
			LinkSecret: randomSecret(),
			LinkTTL:    "15m",
		},
		Cache: CacheConfig{
			Size:     1024,
			TTL:      "30s",
			ScopeTTL: "5m",
		},
		Jobs: JobsConfig{
			SessionSweep: "@every 10m",
		},
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
