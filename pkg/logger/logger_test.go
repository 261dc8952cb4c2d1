package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkarlsen/songrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndGet(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			// Must not panic.
			l.Info(context.Background(), "hello", logger.String("k", "v"))
		})

		Convey("And Named returns a grouped logger", func() {
			l := logger.Named("store")
			So(l, ShouldNotBeNil)
			l.Debug(context.Background(), "grouped")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Valid levels parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Unknown levels are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Field constructors set key and value", t, func() {
		So(logger.String("a", "b").Key, ShouldEqual, "a")
		So(logger.Int("n", 3).Value, ShouldEqual, 3)
		So(logger.Int64("id", 9).Value, ShouldEqual, int64(9))
		So(logger.Float64("r", 1.5).Value, ShouldEqual, 1.5)
		So(logger.Error(errors.New("x")).Key, ShouldEqual, "error")
	})
}
