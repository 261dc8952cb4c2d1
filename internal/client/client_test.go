package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkarlsen/songrank/internal/client"
	"github.com/mkarlsen/songrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient_Reads(t *testing.T) {
	Convey("Given a server with ledger data", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/song/all", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode([]model.Song{
				{ID: 1, Path: "a.mp3", Title: "one", Extension: "mp3"},
			})
		})
		mux.HandleFunc("/api/match/all", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode([]model.Match{
				{ID: 1, WinnerID: 2, LoserID: 1},
			})
		})
		mux.HandleFunc("/api/songstats/all", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode([]model.StatRow{
				{ID: 1, MatchIndex: 0, SongID: 1, Rating: 100, Rank: 1},
			})
		})
		mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := client.New(srv.URL)
		ctx := context.Background()

		Convey("Then songs decode into the model types", func() {
			songs, err := c.Songs(ctx)
			So(err, ShouldBeNil)
			So(len(songs), ShouldEqual, 1)
			So(songs[0].Title, ShouldEqual, "one")
		})

		Convey("And matches decode into the model types", func() {
			matches, err := c.Matches(ctx)
			So(err, ShouldBeNil)
			So(matches[0].WinnerID, ShouldEqual, 2)
		})

		Convey("And stat rows decode into the model types", func() {
			stats, err := c.Stats(ctx)
			So(err, ShouldBeNil)
			So(stats[0].Rank, ShouldEqual, 1)
		})

		Convey("And the health probe succeeds", func() {
			So(c.Health(ctx), ShouldBeNil)
		})
	})
}

func TestClient_Writes(t *testing.T) {
	Convey("Given a server accepting writes", t, func() {
		var seedBody []model.SeedSong
		var matchBody map[string]any
		var resetCalled bool

		mux := http.NewServeMux()
		mux.HandleFunc("/api/song/all", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&seedBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(client.Ack{OK: true})
		})
		mux.HandleFunc("/api/match/one", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&matchBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(client.Ack{OK: true, ID: 7})
		})
		mux.HandleFunc("/api/delete/all", func(w http.ResponseWriter, r *http.Request) {
			resetCalled = r.Method == http.MethodPost
			_ = json.NewEncoder(w).Encode(client.Ack{OK: true})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := client.New(srv.URL)
		ctx := context.Background()

		Convey("When seeding a roster", func() {
			err := c.SeedRoster(ctx, []model.SeedSong{
				{ID: 1, Path: "a.mp3", Title: "one", Extension: "mp3", StartingRating: 100},
			})

			Convey("Then the payload reaches the server", func() {
				So(err, ShouldBeNil)
				So(len(seedBody), ShouldEqual, 1)
				So(seedBody[0].StartingRating, ShouldEqual, 100.0)
			})
		})

		Convey("When recording a match", func() {
			id, err := c.RecordMatch(ctx, model.MatchCommand{
				WinnerID: 2, LoserID: 1, WinnerRating: 210, LoserRating: 90,
			})

			Convey("Then the wire field names match the API schema", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, 7)
				So(matchBody["winning_song"], ShouldEqual, 2)
				So(matchBody["losing_song_rating"], ShouldEqual, 90)
			})
		})

		Convey("When resetting the ledger", func() {
			So(c.Reset(ctx), ShouldBeNil)
			So(resetCalled, ShouldBeTrue)
		})
	})
}

func TestClient_Errors(t *testing.T) {
	Convey("Given a server returning errors", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/match/one", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown song id: 99"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := client.New(srv.URL)

		Convey("When a write is rejected", func() {
			_, err := c.RecordMatch(context.Background(), model.MatchCommand{
				WinnerID: 99, LoserID: 1, WinnerRating: 10, LoserRating: 5,
			})

			Convey("Then the status error carries the server message", func() {
				So(err, ShouldNotBeNil)
				var serr *client.StatusError
				So(err, ShouldHaveSameTypeAs, serr)
				So(err.Error(), ShouldContainSubstring, "status 422")
				So(err.Error(), ShouldContainSubstring, "unknown song id")
			})
		})

		Convey("When the server is unreachable", func() {
			dead := client.New("http://127.0.0.1:1")
			err := dead.Health(context.Background())

			Convey("Then the request error is wrapped", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
