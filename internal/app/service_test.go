package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkarlsen/songrank/internal/adapters/repository"
	service "github.com/mkarlsen/songrank/internal/app"
	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	opts = append([]service.Option{
		service.WithDBPath(filepath.Join(t.TempDir(), "ledger.db")),
	}, opts...)
	svc := service.New(opts...)
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithDBPath("custom.db"),
			service.WithListLimit(500),
			service.WithBusyTimeout(2000),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newService(t)

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				So(svc.GetStats().Started, ShouldBeTrue)
			})

			Convey("And starting again should be idempotent", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newService(t)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats().Started, ShouldBeFalse)
			})

			Convey("And stopping again should be a no-op", func() {
				svc.Stop()
			})
		})
	})
}

func TestService_Ledger(t *testing.T) {
	ctx := context.Background()

	seed := []model.SeedSong{
		{ID: 1, Path: "a.mp3", Title: "one", Extension: "mp3", StartingRating: 100},
		{ID: 2, Path: "b.mp3", Title: "two", Extension: "mp3", StartingRating: 200},
		{ID: 3, Path: "c.mp3", Title: "three", Extension: "mp3", StartingRating: 150},
	}

	Convey("Given a started service", t, func() {
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When seeding a roster", func() {
			So(svc.SeedRoster(ctx, seed), ShouldBeNil)

			Convey("Then songs and baseline stats are listable", func() {
				songs, err := svc.Songs(ctx)
				So(err, ShouldBeNil)
				So(len(songs), ShouldEqual, 3)

				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(len(stats), ShouldEqual, 3)
			})

			Convey("And seeding over it conflicts", func() {
				err := svc.SeedRoster(ctx, seed)
				So(errors.Is(err, repository.ErrRosterExists), ShouldBeTrue)
			})

			Convey("When recording a match", func() {
				id, err := svc.RecordMatch(ctx, model.MatchCommand{
					WinnerID: 2, LoserID: 1, WinnerRating: 210, LoserRating: 90,
				})
				So(err, ShouldBeNil)
				So(id, ShouldEqual, 1)

				Convey("Then the match list and stats grow", func() {
					matches, err := svc.Matches(ctx)
					So(err, ShouldBeNil)
					So(len(matches), ShouldEqual, 1)

					stats, err := svc.Stats(ctx)
					So(err, ShouldBeNil)
					So(len(stats), ShouldEqual, 6)
				})

				Convey("And GetStats reflects the ledger", func() {
					stats := svc.GetStats()
					So(stats.RosterSize, ShouldEqual, 3)
					So(stats.MaxMatchIndex, ShouldEqual, 1)
				})
			})

			Convey("When recording a match with an unknown song", func() {
				_, err := svc.RecordMatch(ctx, model.MatchCommand{
					WinnerID: 99, LoserID: 1, WinnerRating: 10, LoserRating: 5,
				})

				Convey("Then it fails with ErrUnknownSong", func() {
					So(errors.Is(err, repository.ErrUnknownSong), ShouldBeTrue)
				})
			})

			Convey("When resetting", func() {
				So(svc.Reset(ctx), ShouldBeNil)

				Convey("Then the ledger is empty", func() {
					songs, err := svc.Songs(ctx)
					So(err, ShouldBeNil)
					So(songs, ShouldBeEmpty)
				})
			})
		})

		Convey("Then ping succeeds", func() {
			So(svc.Ping(ctx), ShouldBeNil)
		})
	})
}
