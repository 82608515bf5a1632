// Package fenstate wraps the chess engine with the running per-game
// metadata (halfmove clock, fullmove number) the engine itself does not
// track move-by-move (spec §4.4). The PGN parser owns one State per game
// and folds each SAN token through it to stamp fen_before/fen_after.
package fenstate

import (
	"fmt"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
)

// State is a FEN-equivalent snapshot threaded through a game's moves.
type State struct {
	Position engine.Position
}

// InitialState returns the standard starting position.
func InitialState() State {
	return State{Position: engine.InitialPosition()}
}

// Apply resolves san against the current state and returns the resulting
// state. The halfmove clock resets on a pawn move or a capture, else
// increments; the fullmove number increments only after Black's move
// (spec §4.4).
func (s State) Apply(san string) (State, engine.ApplyResult, error) {
	pos := s.Position
	res, err := engine.ApplySAN(pos.Board, san, pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	if err != nil {
		return State{}, engine.ApplyResult{}, fmt.Errorf("fenstate: %w", err)
	}

	half := pos.HalfmoveClock + 1
	if res.Captured || res.IsPawnMove {
		half = 0
	}

	full := pos.FullmoveNumber
	nextSide := chessmodel.SideWhite
	if pos.SideToMove == chessmodel.SideWhite {
		nextSide = chessmodel.SideBlack
	} else {
		full++
	}

	next := State{Position: engine.Position{
		Board:          res.Board,
		SideToMove:     nextSide,
		CastlingRights: res.CastlingRights,
		EnPassant:      res.EnPassant,
		HalfmoveClock:  half,
		FullmoveNumber: full,
	}}
	return next, res, nil
}

// FEN emits the canonical six-field FEN for the current state.
func (s State) FEN() string {
	return s.Position.FEN()
}

// SideToMove reports whose turn it is in the current state.
func (s State) SideToMove() chessmodel.SideToMove {
	return s.Position.SideToMove
}
