// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers an optional YAML file and env vars on top.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DataDir is the root of the flat-file stores. Session CSVs live in
	// <data_dir>/sessions, synced rounds in <data_dir>/garmin_rounds.
	DataDir string `koanf:"data_dir"`

	// BasisMetric names the metric column feeding the consistency index.
	// Falls back to smash when the loaded data lacks the column.
	BasisMetric string `koanf:"basis_metric"`

	// MaxUploadBytes bounds a single session file upload.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// JobQueueSize bounds the in-memory background job queue.
	JobQueueSize int `koanf:"job_queue_size"`

	// SeenRoundsSize sets the size of the synced-round dedupe cache.
	SeenRoundsSize int `koanf:"seen_rounds_size"`

	// GarminBaseURL points at the activity-tracker API.
	GarminBaseURL string `koanf:"garmin_base_url"`

	// GarminToken is the pre-acquired OAuth bearer token for the tracker.
	GarminToken string `koanf:"garmin_token"`

	// GarminSyncLimit caps how many recent activities a sync examines.
	GarminSyncLimit int `koanf:"garmin_sync_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		DataDir:         "data",
		BasisMetric:     "carry",
		MaxUploadBytes:  8 << 20,
		JobQueueSize:    16,
		SeenRoundsSize:  10_000,
		GarminBaseURL:   "https://connectapi.garmin.com",
		GarminSyncLimit: 10,
	}
}
