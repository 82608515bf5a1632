package pattern

import (
	"strings"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// FileBand groups board files into queenside/center/kingside thirds, the
// grouping detectors use to reason about pawn majorities (spec §4.5
// helper: "pawn counts by file-band per color").
type FileBand int

const (
	Queenside FileBand = iota // a,b,c
	Center                    // d,e
	Kingside                  // f,g,h
)

func bandOf(file int) FileBand {
	switch {
	case file <= 2:
		return Queenside
	case file <= 4:
		return Center
	default:
		return Kingside
	}
}

// PawnCounts tallies a color's pawns in each file band.
type PawnCounts struct {
	Queenside int
	Center    int
	Kingside  int
}

// CountPawnsByBand counts fen's pawns of the given color across the three
// file bands.
func CountPawnsByBand(fen string, color chessmodel.Color) (PawnCounts, error) {
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		return PawnCounts{}, err
	}
	var counts PawnCounts
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			p := pos.Board.At(engine.Square{File: file, Rank: rank})
			if !p.Present || p.Type != engine.Pawn || p.Color != color {
				continue
			}
			switch bandOf(file) {
			case Queenside:
				counts.Queenside++
			case Center:
				counts.Center++
			case Kingside:
				counts.Kingside++
			}
		}
	}
	return counts, nil
}

// Material tallies piece-type counts for one color, used to recognize
// characteristic endgame material (spec §4.5 helper: "presence of
// characteristic piece material, e.g. K+R+P vs K+R").
type Material struct {
	Pawns, Knights, Bishops, Rooks, Queens int
}

// MaterialFor computes both sides' material from a FEN.
func MaterialFor(fen string) (white, black Material, err error) {
	pos, perr := engine.ParseFEN(fen)
	if perr != nil {
		return Material{}, Material{}, perr
	}
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			p := pos.Board.At(engine.Square{File: file, Rank: rank})
			if !p.Present {
				continue
			}
			m := &white
			if p.Color == chessmodel.Black {
				m = &black
			}
			switch p.Type {
			case engine.Pawn:
				m.Pawns++
			case engine.Knight:
				m.Knights++
			case engine.Bishop:
				m.Bishops++
			case engine.Rook:
				m.Rooks++
			case engine.Queen:
				m.Queens++
			}
		}
	}
	return white, black, nil
}

// IsRookPawnVsRook reports whether side has exactly one rook and at least
// one pawn while the opponent has exactly one rook and no pawns — the
// K+R+P vs K+R shape the Lucena/Philidor detectors key off.
func IsRookPawnVsRook(side, opponent Material) bool {
	return side.Rooks == 1 && side.Pawns >= 1 && side.Knights == 0 && side.Bishops == 0 && side.Queens == 0 &&
		opponent.Rooks == 1 && opponent.Pawns == 0 && opponent.Knights == 0 && opponent.Bishops == 0 && opponent.Queens == 0
}

// HasSacrificeOn reports whether any move in moves is a capture landing on
// square (e.g. "h7"/"h2"), the shape the Greek Gift detector looks for.
func HasSacrificeOn(moves []pgn.Move, square string) bool {
	for _, m := range moves {
		if m.IsCapture && strings.HasSuffix(strings.TrimRight(m.SAN, "+#!?"), square) {
			return true
		}
	}
	return false
}
