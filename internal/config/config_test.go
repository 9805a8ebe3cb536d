package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/fairway/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// clearConfigEnv strips every variable the loader reads so tests start
// from a clean slate regardless of the invoking shell.
func clearConfigEnv() {
	vars := []string{
		"FAIRWAY_CONFIG",
		"FAIRWAY_LOG_LEVEL",
		"FAIRWAY_ADDR",
		"FAIRWAY_DATA_DIR",
		"FAIRWAY_BASIS_METRIC",
		"FAIRWAY_MAX_UPLOAD_BYTES",
		"FAIRWAY_JOB_QUEUE_SIZE",
		"FAIRWAY_SEEN_ROUNDS_SIZE",
		"FAIRWAY_GARMIN_BASE_URL",
		"FAIRWAY_GARMIN_TOKEN",
		"FAIRWAY_GARMIN_SYNC_LIMIT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		clearConfigEnv()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.Addr, ShouldEqual, ":8090")
				So(cfg.DataDir, ShouldEqual, "data")
				So(cfg.BasisMetric, ShouldEqual, "carry")
				So(cfg.MaxUploadBytes, ShouldEqual, int64(8<<20))
				So(cfg.JobQueueSize, ShouldEqual, 16)
				So(cfg.SeenRoundsSize, ShouldEqual, 10_000)
				So(cfg.GarminSyncLimit, ShouldEqual, 10)
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		clearConfigEnv()
		os.Setenv("FAIRWAY_ADDR", ":9191")
		os.Setenv("FAIRWAY_BASIS_METRIC", "total")
		os.Setenv("FAIRWAY_GARMIN_TOKEN", "test-token")
		defer clearConfigEnv()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9191")
				So(cfg.BasisMetric, ShouldEqual, "total")
				So(cfg.GarminToken, ShouldEqual, "test-token")
				// Untouched keys keep their defaults.
				So(cfg.DataDir, ShouldEqual, "data")
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		clearConfigEnv()
		dir := t.TempDir()
		path := dir + "/config.yaml"
		yaml := "addr: \":7070\"\nbasis_metric: smash\ndata_dir: /tmp/fairway\n"
		So(os.WriteFile(path, []byte(yaml), 0o644), ShouldBeNil)
		os.Setenv("FAIRWAY_CONFIG", path)
		defer clearConfigEnv()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.BasisMetric, ShouldEqual, "smash")
				So(cfg.DataDir, ShouldEqual, "/tmp/fairway")
			})
		})

		Convey("When an env var also overrides a file key", func() {
			os.Setenv("FAIRWAY_ADDR", ":6060")

			cfg, err := config.Load(context.Background())

			Convey("Then env wins over file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.BasisMetric, ShouldEqual, "smash")
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		clearConfigEnv()
		defer clearConfigEnv()

		Convey("When the basis metric is unknown", func() {
			os.Setenv("FAIRWAY_BASIS_METRIC", "vibes")

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid-config sentinel", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When the listen address is empty", func() {
			os.Setenv("FAIRWAY_ADDR", "")

			_, err := config.Load(context.Background())

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When the config file does not exist", func() {
			os.Setenv("FAIRWAY_CONFIG", "/nonexistent/config.yaml")

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}
