package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// Position is a full FEN-equivalent snapshot: board plus the five
// trailing FEN fields (spec §4.2).
type Position struct {
	Board           Board
	SideToMove      chessmodel.SideToMove
	CastlingRights  string // subset of "KQkq", or "" meaning none
	EnPassant       chessmodel.Option[Square]
	HalfmoveClock   int
	FullmoveNumber  int
}

// ParseFEN parses a full six-field FEN string. Serialization and parsing
// are total inverses for syntactically valid input (spec property 1).
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("fen: expected 6 fields, got %d in %q", len(fields), fen)
	}
	board, err := parsePlacement(fields[0])
	if err != nil {
		return Position{}, fmt.Errorf("fen: %w", err)
	}

	var side chessmodel.SideToMove
	switch fields[1] {
	case "w":
		side = chessmodel.SideWhite
	case "b":
		side = chessmodel.SideBlack
	default:
		return Position{}, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	castling := fields[2]
	if castling == "-" {
		castling = ""
	} else if !isValidCastling(castling) {
		return Position{}, fmt.Errorf("fen: invalid castling rights %q", fields[2])
	}

	var ep chessmodel.Option[Square]
	if fields[3] == "-" {
		ep = chessmodel.None[Square]()
	} else {
		sq, ok := squareFromAlgebraic(fields[3])
		if !ok {
			return Position{}, fmt.Errorf("fen: invalid en-passant square %q", fields[3])
		}
		ep = chessmodel.Some(sq)
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return Position{}, fmt.Errorf("fen: invalid halfmove clock %q", fields[4])
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return Position{}, fmt.Errorf("fen: invalid fullmove number %q", fields[5])
	}

	return Position{
		Board:          board,
		SideToMove:     side,
		CastlingRights: castling,
		EnPassant:      ep,
		HalfmoveClock:  half,
		FullmoveNumber: full,
	}, nil
}

func isValidCastling(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch c {
		case 'K', 'Q', 'k', 'q':
		default:
			return false
		}
	}
	return true
}

func parsePlacement(field string) (Board, error) {
	var b Board
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // ranks[0] is rank 8
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			color := chessmodel.White
			letter := byte(c)
			if c >= 'a' && c <= 'z' {
				color = chessmodel.Black
				letter = byte(c - 32)
			}
			pt, ok := PieceTypeFromLetter(letter)
			if letter == 'P' {
				pt, ok = Pawn, true
			}
			if !ok {
				return b, fmt.Errorf("invalid piece letter %q", c)
			}
			if file > 7 {
				return b, fmt.Errorf("rank %d overflows 8 files", 8-i)
			}
			b = b.With(Square{File: file, Rank: rank}, Piece{Present: true, Type: pt, Color: color})
			file++
		}
		if file != 8 {
			return b, fmt.Errorf("rank %d has %d files, want 8", 8-i, file)
		}
	}
	return b, nil
}

// FEN serializes the position to its canonical six-field string.
func (p Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board.At(Square{File: file, Rank: rank})
			if !piece.Present {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := PieceLetter(piece.Type)
			if piece.Color == chessmodel.Black {
				letter = letter + 32
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == chessmodel.SideBlack {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	if p.CastlingRights == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.CastlingRights)
	}

	sb.WriteByte(' ')
	if sq, ok := p.EnPassant.Get(); ok {
		sb.WriteString(sq.algebraic())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// InitialPosition is the standard starting position.
func InitialPosition() Position {
	return Position{
		Board:          InitialBoard(),
		SideToMove:     chessmodel.SideWhite,
		CastlingRights: "KQkq",
		EnPassant:      chessmodel.None[Square](),
		HalfmoveClock:  0,
		FullmoveNumber: 1,
	}
}
