// Package pgn implements the PGN boundary-detection state machine, header
// extraction, movetext tokenizer, and FEN stamping described in spec
// §4.3. It produces a finite, single-pass sequence of ParsedGame values
// from a file's contents.
package pgn

import "github.com/HendrikReh/chessbuddy/internal/chessmodel"

// Move is one stamped ply: the resolved SAN token plus the board state on
// either side of it and any annotations attached to it.
type Move struct {
	Ply            int
	SAN            string
	SideToMove     chessmodel.SideToMove
	FENBefore      string
	FENAfter       string
	IsCapture      bool
	IsCheck        bool
	IsMate         bool
	CommentsBefore []string
	CommentsAfter  []string
	Variations     []string
	NAGs           []string
}

// ParsedGame is one fully tokenized and FEN-stamped game, ready for the
// ingestion orchestrator.
type ParsedGame struct {
	Index     int
	Header    chessmodel.Header
	Moves     []Move
	SourcePGN string
}
