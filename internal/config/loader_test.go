package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkarlsen/songrank/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		os.Unsetenv("SONGRANK_CONFIG")
		os.Unsetenv("SONGRANK_ADDR")
		os.Unsetenv("SONGRANK_DB_PATH")
		os.Unsetenv("SONGRANK_MAX_LIST_LIMIT")

		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.DBPath, ShouldEqual, "songrank.db")
			So(cfg.MaxListLimit, ShouldEqual, 1000)
			So(cfg.LogLevel, ShouldEqual, "info")
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		os.Unsetenv("SONGRANK_CONFIG")
		t.Setenv("SONGRANK_ADDR", ":7070")
		t.Setenv("SONGRANK_DB_PATH", "/tmp/ledger.db")
		t.Setenv("SONGRANK_LOG_LEVEL", "debug")

		cfg, err := config.Load(context.Background())

		Convey("Then env values take precedence over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.DBPath, ShouldEqual, "/tmp/ledger.db")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "songrank.yaml")
		yaml := "addr: \":6060\"\nmax_list_limit: 250\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("SONGRANK_CONFIG", path)
		os.Unsetenv("SONGRANK_ADDR")

		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.MaxListLimit, ShouldEqual, 250)
			So(cfg.DBPath, ShouldEqual, "songrank.db")
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("SONGRANK_ADDR", ":5050")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("SONGRANK_CONFIG", "/nonexistent/songrank.yaml")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with ErrLoadConfig", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an invalid max_list_limit", t, func() {
		os.Unsetenv("SONGRANK_CONFIG")
		t.Setenv("SONGRANK_MAX_LIST_LIMIT", "0")

		_, err := config.Load(context.Background())

		Convey("Then loading fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
