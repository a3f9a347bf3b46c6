package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/pitchlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PageSize, convey.ShouldEqual, 1000)
				convey.So(cfg.BreakThresholdMS, convey.ShouldEqual, 3_600_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITCHLENS_ADDR", ":8080")
			_ = os.Setenv("PITCHLENS_PAGE_SIZE", "250")
			_ = os.Setenv("PITCHLENS_BREAK_THRESHOLD_MS", "1800000")
			_ = os.Setenv("PITCHLENS_CORNER_SHOT_RATIO", "0.25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PageSize, convey.ShouldEqual, 250)
				convey.So(cfg.BreakThresholdMS, convey.ShouldEqual, 1_800_000)
				convey.So(cfg.CornerShotRatio, convey.ShouldEqual, 0.25)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
page_size: 500
zone_low: 30
zone_high: 70
timezone: "Local"
`)
			_ = os.Setenv("PITCHLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PageSize, convey.ShouldEqual, 500)
				convey.So(cfg.ZoneLow, convey.ShouldEqual, 30)
				convey.So(cfg.ZoneHigh, convey.ShouldEqual, 70)
				convey.So(cfg.Timezone, convey.ShouldEqual, "Local")
				convey.So(cfg.LaneLow, convey.ShouldEqual, 33.3)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
page_size: 500
`)
			_ = os.Setenv("PITCHLENS_CONFIG", tmpFile)
			_ = os.Setenv("PITCHLENS_PAGE_SIZE", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PageSize, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("PITCHLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PITCHLENS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PITCHLENS_PAGE_SIZE", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the layered values fail validation", func() {
			_ = os.Setenv("PITCHLENS_PAGE_SIZE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pitchlens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, v := range []string{
		"PITCHLENS_CONFIG",
		"PITCHLENS_ADDR",
		"PITCHLENS_PAGE_SIZE",
		"PITCHLENS_BREAK_THRESHOLD_MS",
		"PITCHLENS_CORNER_SHOT_RATIO",
	} {
		_ = os.Unsetenv(v)
	}
}
