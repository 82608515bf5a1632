// Package engine implements the immutable chess board, the bidirectional
// FEN codec, and the SAN move applier (spec §4.2). The engine never
// validates legality (pins, moving into check) — it resolves SAN tokens
// against board geometry only, trusting curated PGN input.
package engine

import "github.com/HendrikReh/chessbuddy/internal/chessmodel"

// PieceType is a chess piece kind, independent of color.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a colored occupant of a square, or the empty value when
// Present is false.
type Piece struct {
	Present bool
	Type    PieceType
	Color   chessmodel.Color
}

// Square is a board coordinate; File 0 is the a-file, Rank 0 is rank 1.
type Square struct {
	File int
	Rank int
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// Board is a fixed 8x8 grid. It is a value type: every mutator returns a
// new Board and the receiver is left untouched, so callers never share
// mutable board state.
type Board struct {
	squares [8][8]Piece
}

// At returns the occupant of sq (Piece{} / Present=false when empty).
func (b Board) At(sq Square) Piece {
	return b.squares[sq.File][sq.Rank]
}

// With returns a new Board with sq set to p.
func (b Board) With(sq Square, p Piece) Board {
	nb := b
	nb.squares[sq.File][sq.Rank] = p
	return nb
}

// Cleared returns a new Board with sq emptied.
func (b Board) Cleared(sq Square) Board {
	return b.With(sq, Piece{})
}

// Equal reports structural equality between two boards.
func (b Board) Equal(other Board) bool {
	return b.squares == other.squares
}

// InitialBoard is the standard chess starting array.
func InitialBoard() Board {
	var b Board
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.squares[file][0] = Piece{Present: true, Type: backRank[file], Color: chessmodel.White}
		b.squares[file][1] = Piece{Present: true, Type: Pawn, Color: chessmodel.White}
		b.squares[file][6] = Piece{Present: true, Type: Pawn, Color: chessmodel.Black}
		b.squares[file][7] = Piece{Present: true, Type: backRank[file], Color: chessmodel.Black}
	}
	return b
}

// PieceLetter returns the FEN/SAN letter for a piece type, uppercase
// (caller lowercases for black).
func PieceLetter(t PieceType) byte {
	switch t {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return '?'
	}
}

// PieceTypeFromLetter parses an uppercase piece letter ('N','B','R','Q','K').
// Pawns have no letter in SAN and are handled by callers separately.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	switch c {
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

// squareFromAlgebraic parses "e4" style notation.
func squareFromAlgebraic(s string) (Square, bool) {
	if len(s) != 2 {
		return Square{}, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	sq := Square{File: file, Rank: rank}
	return sq, sq.Valid()
}

// algebraic renders a Square as "e4" style notation.
func (s Square) algebraic() string {
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// String renders a square in algebraic notation.
func (s Square) String() string { return s.algebraic() }
