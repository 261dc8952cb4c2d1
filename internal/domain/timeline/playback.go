package timeline

import (
	"sort"
	"strconv"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// Phase is the display state alternated while stepping through history.
type Phase int

const (
	// PhaseReorder shows the list already re-sorted to the current
	// snapshot's order.
	PhaseReorder Phase = iota
	// PhaseStats shows the deltas produced by the current match before
	// the list visually reorders.
	PhaseStats
)

func (p Phase) String() string {
	if p == PhaseStats {
		return "STATS"
	}
	return "REORDER"
}

// RowKind distinguishes the participants of the displayed match.
type RowKind int

const (
	RowNeutral RowKind = iota
	RowWinner
	RowLoser
)

// Row is one rendered line of the playback list.
type Row struct {
	Song        model.Song
	Rating      float64
	Rank        int64
	RatingDelta float64
	RankDelta   int64
	Kind        RowKind
}

// Playback is the two-phase navigation state machine over a View.
// Forward and Back implement the stepwise transitions; Jump bypasses
// them. The zero index is the pre-match baseline.
type Playback struct {
	view  *View
	index int64
	phase Phase
	order []int64
}

// NewPlayback starts playback at the baseline snapshot in the reorder
// phase.
func NewPlayback(view *View) (*Playback, error) {
	p := &Playback{view: view, index: 0, phase: PhaseReorder}
	if err := p.resort(0); err != nil {
		return nil, err
	}
	return p, nil
}

// Index returns the currently displayed snapshot index.
func (p *Playback) Index() int64 { return p.index }

// Phase returns the current display phase.
func (p *Playback) Phase() Phase { return p.phase }

// MaxIndex returns the highest navigable snapshot index.
func (p *Playback) MaxIndex() int64 { return p.view.MaxIndex }

// Forward advances the playback one step. From the reorder phase it
// moves to the next snapshot's stats; from the stats phase it stays on
// the snapshot and re-sorts into its order. A failed transition leaves
// the playback state untouched.
func (p *Playback) Forward() error {
	switch p.phase {
	case PhaseReorder:
		if p.index < p.view.MaxIndex {
			p.index++
			p.phase = PhaseStats
		}
	case PhaseStats:
		if err := p.resort(p.index); err != nil {
			return err
		}
		p.phase = PhaseReorder
	}
	return nil
}

// Back rewinds the playback one step, mirroring Forward.
func (p *Playback) Back() error {
	switch p.phase {
	case PhaseReorder:
		p.phase = PhaseStats
	case PhaseStats:
		if p.index > 0 {
			if err := p.resort(p.index - 1); err != nil {
				return err
			}
			p.index--
			p.phase = PhaseReorder
		}
	}
	return nil
}

// Jump moves directly to the given snapshot index, clamped to the valid
// range, and enters the reorder phase.
func (p *Playback) Jump(index int64) error {
	if index < 0 {
		index = 0
	}
	if index > p.view.MaxIndex {
		index = p.view.MaxIndex
	}
	if err := p.resort(index); err != nil {
		return err
	}
	p.index = index
	p.phase = PhaseReorder
	return nil
}

// resort orders the song ids by the given snapshot's rating descending,
// id ascending.
func (p *Playback) resort(index int64) error {
	ids := make([]int64, 0, len(p.view.Songs))
	for id := range p.view.Songs {
		ids = append(ids, id)
	}
	ratings := make(map[int64]float64, len(ids))
	for _, id := range ids {
		s, err := p.view.stat(index, id)
		if err != nil {
			return err
		}
		ratings[id] = s.Rating
	}
	sort.Slice(ids, func(i, j int) bool {
		if ratings[ids[i]] != ratings[ids[j]] {
			return ratings[ids[i]] > ratings[ids[j]]
		}
		return ids[i] < ids[j]
	})
	p.order = ids
	return nil
}

// Rows renders the current playback state in display order. Deltas are
// nonzero only in the stats phase past the baseline; the winner and
// loser of the displayed match are marked whenever the index is past
// the baseline.
func (p *Playback) Rows() ([]Row, error) {
	var result Result
	if p.index > 0 {
		r, ok := p.view.Results[p.index]
		if !ok {
			return nil, &InvariantError{Missing: "match result " + strconv.FormatInt(p.index, 10)}
		}
		result = r
	}

	rows := make([]Row, 0, len(p.order))
	for _, id := range p.order {
		song, ok := p.view.Songs[id]
		if !ok {
			return nil, &InvariantError{Missing: "song " + strconv.FormatInt(id, 10)}
		}
		cur, err := p.view.stat(p.index, id)
		if err != nil {
			return nil, err
		}

		row := Row{Song: song, Rating: cur.Rating, Rank: cur.Rank}
		if p.phase == PhaseStats && p.index > 0 {
			prev, err := p.view.stat(p.index-1, id)
			if err != nil {
				return nil, err
			}
			row.RatingDelta = cur.Rating - prev.Rating
			row.RankDelta = prev.Rank - cur.Rank
		}
		if p.index > 0 {
			switch id {
			case result.WinnerID:
				row.Kind = RowWinner
			case result.LoserID:
				row.Kind = RowLoser
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
