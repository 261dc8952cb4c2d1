package ranking_test

import (
	"testing"

	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func rowFor(rows []model.StatRow, songID int64) model.StatRow {
	for _, row := range rows {
		if row.SongID == songID {
			return row
		}
	}
	return model.StatRow{}
}

func TestSeedSnapshot(t *testing.T) {
	Convey("Given seed songs with mixed starting ratings", t, func() {
		songs := []model.SeedSong{
			{ID: 1, Title: "one", StartingRating: 100},
			{ID: 2, Title: "two", StartingRating: 200},
			{ID: 3, Title: "three", StartingRating: 150},
		}

		rows := ranking.SeedSnapshot(songs)

		Convey("Then rank 1 is the lowest starting rating", func() {
			So(len(rows), ShouldEqual, 3)
			So(rowFor(rows, 1).Rank, ShouldEqual, 1)
			So(rowFor(rows, 3).Rank, ShouldEqual, 2)
			So(rowFor(rows, 2).Rank, ShouldEqual, 3)
		})

		Convey("And every row sits at snapshot 0", func() {
			for _, row := range rows {
				So(row.MatchIndex, ShouldEqual, 0)
			}
		})

		Convey("And the input slice is left untouched", func() {
			So(songs[0].ID, ShouldEqual, 1)
			So(songs[1].ID, ShouldEqual, 2)
		})
	})

	Convey("Given tied starting ratings", t, func() {
		songs := []model.SeedSong{
			{ID: 9, StartingRating: 50},
			{ID: 4, StartingRating: 50},
		}

		rows := ranking.SeedSnapshot(songs)

		Convey("Then input order decides the tie", func() {
			So(rowFor(rows, 9).Rank, ShouldEqual, 1)
			So(rowFor(rows, 4).Rank, ShouldEqual, 2)
		})
	})

	Convey("Given no songs", t, func() {
		So(ranking.SeedSnapshot(nil), ShouldBeEmpty)
	})
}

func TestNext(t *testing.T) {
	Convey("Given the seeded scenario {1:100, 2:200, 3:150}", t, func() {
		prev := ranking.SeedSnapshot([]model.SeedSong{
			{ID: 1, StartingRating: 100},
			{ID: 2, StartingRating: 200},
			{ID: 3, StartingRating: 150},
		})

		Convey("When match (winner=2, loser=1, 210, 90) produces snapshot 1", func() {
			rows := ranking.Next(prev, 1, model.MatchCommand{
				WinnerID: 2, LoserID: 1, WinnerRating: 210, LoserRating: 90,
			})

			Convey("Then ranks follow rating descending", func() {
				So(rowFor(rows, 2).Rank, ShouldEqual, 1)
				So(rowFor(rows, 2).Rating, ShouldEqual, 210.0)
				So(rowFor(rows, 3).Rank, ShouldEqual, 2)
				So(rowFor(rows, 3).Rating, ShouldEqual, 150.0)
				So(rowFor(rows, 1).Rank, ShouldEqual, 3)
				So(rowFor(rows, 1).Rating, ShouldEqual, 90.0)
			})

			Convey("And all rows carry the new snapshot index", func() {
				for _, row := range rows {
					So(row.MatchIndex, ShouldEqual, 1)
				}
			})

			Convey("When match (winner=3, loser=2, 220, 205) produces snapshot 2", func() {
				rows2 := ranking.Next(rows, 2, model.MatchCommand{
					WinnerID: 3, LoserID: 2, WinnerRating: 220, LoserRating: 205,
				})

				So(rowFor(rows2, 3).Rank, ShouldEqual, 1)
				So(rowFor(rows2, 3).Rating, ShouldEqual, 220.0)
				So(rowFor(rows2, 2).Rank, ShouldEqual, 2)
				So(rowFor(rows2, 2).Rating, ShouldEqual, 205.0)
				So(rowFor(rows2, 1).Rank, ShouldEqual, 3)
				So(rowFor(rows2, 1).Rating, ShouldEqual, 90.0)
			})
		})

		Convey("When a match only touches two songs", func() {
			rows := ranking.Next(prev, 1, model.MatchCommand{
				WinnerID: 2, LoserID: 1, WinnerRating: 210, LoserRating: 90,
			})

			Convey("Then non-participants keep their rating", func() {
				So(rowFor(rows, 3).Rating, ShouldEqual, 150.0)
			})
		})
	})

	Convey("Given tied ratings across different songs", t, func() {
		prev := []model.StatRow{
			{MatchIndex: 0, SongID: 5, Rating: 100, Rank: 1},
			{MatchIndex: 0, SongID: 2, Rating: 100, Rank: 2},
			{MatchIndex: 0, SongID: 8, Rating: 50, Rank: 3},
		}

		rows := ranking.Next(prev, 1, model.MatchCommand{
			WinnerID: 8, LoserID: 5, WinnerRating: 100, LoserRating: 100,
		})

		Convey("Then the id ascending tie-break yields a strict order", func() {
			So(rowFor(rows, 2).Rank, ShouldEqual, 1)
			So(rowFor(rows, 5).Rank, ShouldEqual, 2)
			So(rowFor(rows, 8).Rank, ShouldEqual, 3)
		})
	})

	Convey("Given a winner id equal to the loser id", t, func() {
		prev := []model.StatRow{
			{MatchIndex: 0, SongID: 1, Rating: 100, Rank: 1},
		}

		rows := ranking.Next(prev, 1, model.MatchCommand{
			WinnerID: 1, LoserID: 1, WinnerRating: 120, LoserRating: 80,
		})

		Convey("Then the winner rating takes precedence", func() {
			So(rowFor(rows, 1).Rating, ShouldEqual, 120.0)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given unsorted rows", t, func() {
		rows := []model.StatRow{
			{SongID: 3, Rating: 10},
			{SongID: 1, Rating: 30},
			{SongID: 2, Rating: 20},
		}

		ranking.Rank(rows)

		Convey("Then rows are sorted and densely ranked 1..K", func() {
			So(rows[0].SongID, ShouldEqual, 1)
			So(rows[0].Rank, ShouldEqual, 1)
			So(rows[1].SongID, ShouldEqual, 2)
			So(rows[1].Rank, ShouldEqual, 2)
			So(rows[2].SongID, ShouldEqual, 3)
			So(rows[2].Rank, ShouldEqual, 3)
		})
	})
}
