package engine

import (
	"fmt"
	"regexp"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

var (
	pieceMoveRe = regexp.MustCompile(`^([KQRBN])([a-h])?([1-8])?(x)?([a-h][1-8])$`)
	pawnMoveRe  = regexp.MustCompile(`^([a-h])?(x)?([a-h][1-8])(?:=([QRBN]))?$`)
)

// ApplyResult is the outcome of applying one SAN token to a board (spec
// §4.2 SAN applier).
type ApplyResult struct {
	Board          Board
	Captured       bool
	CapturedType   PieceType
	IsPawnMove     bool
	CastlingRights string
	EnPassant      chessmodel.Option[Square]
	IsCheck        bool
	IsMate         bool
}

// ApplySAN resolves one SAN move token against board and returns the
// resulting board and metadata. It does not validate legality (pins,
// moving into check); it fails only on syntactic SAN errors or when no
// piece of the declared type can reach the destination given simple
// board geometry.
func ApplySAN(board Board, san string, side chessmodel.SideToMove, castlingRights string, enPassant chessmodel.Option[Square]) (ApplyResult, error) {
	core, isCheck, isMate := stripAnnotations(san)
	if core == "" {
		return ApplyResult{}, fmt.Errorf("san: empty move")
	}

	color := chessmodel.White
	if side == chessmodel.SideBlack {
		color = chessmodel.Black
	}

	if core == "O-O-O" || core == "0-0-0" {
		res, err := applyCastle(board, color, castlingRights, false)
		res.IsCheck, res.IsMate = isCheck, isMate
		return res, err
	}
	if core == "O-O" || core == "0-0" {
		res, err := applyCastle(board, color, castlingRights, true)
		res.IsCheck, res.IsMate = isCheck, isMate
		return res, err
	}

	if m := pieceMoveRe.FindStringSubmatch(core); m != nil {
		res, err := applyPieceMove(board, color, castlingRights, m)
		res.IsCheck, res.IsMate = isCheck, isMate
		return res, err
	}

	if m := pawnMoveRe.FindStringSubmatch(core); m != nil {
		res, err := applyPawnMove(board, color, side, castlingRights, enPassant, m)
		res.IsCheck, res.IsMate = isCheck, isMate
		return res, err
	}

	return ApplyResult{}, fmt.Errorf("san: unrecognized move token %q", san)
}

// stripAnnotations removes trailing check/mate/evaluation glyphs and
// reports whether a check or mate suffix was present (spec: "+"/"#" are
// stripped before piece resolution; mate sets a flag for the caller but
// does not alter board logic).
func stripAnnotations(san string) (core string, isCheck, isMate bool) {
	core = san
	for len(core) > 0 {
		switch core[len(core)-1] {
		case '#':
			isMate = true
			core = core[:len(core)-1]
		case '+':
			isCheck = true
			core = core[:len(core)-1]
		case '!', '?':
			core = core[:len(core)-1]
		default:
			return core, isCheck, isMate
		}
	}
	return core, isCheck, isMate
}

func applyCastle(board Board, color chessmodel.Color, rights string, kingside bool) (ApplyResult, error) {
	rank := 0
	if color == chessmodel.Black {
		rank = 7
	}
	kingFrom := Square{File: 4, Rank: rank}
	king := board.At(kingFrom)
	if !king.Present || king.Type != King || king.Color != color {
		return ApplyResult{}, fmt.Errorf("san: castling with no king on %s", kingFrom)
	}

	var kingTo, rookFrom, rookTo Square
	if kingside {
		kingTo = Square{File: 6, Rank: rank}
		rookFrom = Square{File: 7, Rank: rank}
		rookTo = Square{File: 5, Rank: rank}
	} else {
		kingTo = Square{File: 2, Rank: rank}
		rookFrom = Square{File: 0, Rank: rank}
		rookTo = Square{File: 3, Rank: rank}
	}
	rook := board.At(rookFrom)
	if !rook.Present || rook.Type != Rook || rook.Color != color {
		return ApplyResult{}, fmt.Errorf("san: castling with no rook on %s", rookFrom)
	}

	nb := board.Cleared(kingFrom).Cleared(rookFrom)
	nb = nb.With(kingTo, king).With(rookTo, rook)

	newRights := rights
	if color == chessmodel.White {
		newRights = removeChars(newRights, "KQ")
	} else {
		newRights = removeChars(newRights, "kq")
	}

	return ApplyResult{
		Board:          nb,
		CastlingRights: newRights,
		EnPassant:      chessmodel.None[Square](),
	}, nil
}

func applyPieceMove(board Board, color chessmodel.Color, rights string, m []string) (ApplyResult, error) {
	pt, _ := PieceTypeFromLetter(m[1][0])
	disambigFile := m[2]
	disambigRank := m[3]
	destSq, ok := squareFromAlgebraic(m[5])
	if !ok {
		return ApplyResult{}, fmt.Errorf("san: invalid destination square %q", m[5])
	}

	candidates := candidateSources(board, pt, color, destSq)
	candidates = filterByDisambiguator(candidates, disambigFile, disambigRank)
	if len(candidates) == 0 {
		return ApplyResult{}, fmt.Errorf("san: no %c can reach %s", m[1][0], destSq)
	}
	if len(candidates) > 1 {
		return ApplyResult{}, fmt.Errorf("san: ambiguous move to %s, multiple %c candidates", destSq, m[1][0])
	}
	source := candidates[0]
	piece := board.At(source)

	target := board.At(destSq)
	captured := target.Present
	capturedType := target.Type

	nb := board.Cleared(source).With(destSq, piece)

	newRights := rights
	if pt == King {
		if color == chessmodel.White {
			newRights = removeChars(newRights, "KQ")
		} else {
			newRights = removeChars(newRights, "kq")
		}
	}
	if pt == Rook {
		newRights = clearRightsForRookOrigin(newRights, source)
	}
	if captured {
		newRights = clearRightsForRookOrigin(newRights, destSq)
	}

	return ApplyResult{
		Board:          nb,
		Captured:       captured,
		CapturedType:   capturedType,
		CastlingRights: newRights,
		EnPassant:      chessmodel.None[Square](),
	}, nil
}

func applyPawnMove(board Board, color chessmodel.Color, side chessmodel.SideToMove, rights string, enPassant chessmodel.Option[Square], m []string) (ApplyResult, error) {
	disambigFile := m[1]
	isCapture := m[2] == "x"
	destSq, ok := squareFromAlgebraic(m[3])
	if !ok {
		return ApplyResult{}, fmt.Errorf("san: invalid destination square %q", m[3])
	}
	promo := m[4]

	dir := 1
	startRank := 1
	if side == chessmodel.SideBlack {
		dir = -1
		startRank = 6
	}

	var source Square
	var sourceFound bool
	var enPassantCapture bool
	var epVictim Square

	if isCapture {
		if disambigFile == "" {
			return ApplyResult{}, fmt.Errorf("san: pawn capture %q missing source file", m[0])
		}
		source = Square{File: int(disambigFile[0] - 'a'), Rank: destSq.Rank - dir}
		sourceFound = true
		if !source.Valid() {
			return ApplyResult{}, fmt.Errorf("san: pawn capture source %s off board", source)
		}
		p := board.At(source)
		if !p.Present || p.Type != Pawn || p.Color != color {
			return ApplyResult{}, fmt.Errorf("san: no pawn on %s to capture with", source)
		}
		if target := board.At(destSq); target.Present {
			// ordinary capture
		} else if ep, ok := enPassant.Get(); ok && ep == destSq {
			enPassantCapture = true
			epVictim = Square{File: destSq.File, Rank: source.Rank}
			victim := board.At(epVictim)
			if !victim.Present || victim.Type != Pawn || victim.Color == color {
				return ApplyResult{}, fmt.Errorf("san: en-passant capture on %s has no victim pawn", destSq)
			}
		} else {
			return ApplyResult{}, fmt.Errorf("san: pawn capture %q has no captured piece and no en-passant target", m[0])
		}
	} else {
		single := Square{File: destSq.File, Rank: destSq.Rank - dir}
		if single.Valid() && !board.At(destSq).Present {
			if p := board.At(single); p.Present && p.Type == Pawn && p.Color == color {
				source, sourceFound = single, true
			}
		}
		if !sourceFound {
			double := Square{File: destSq.File, Rank: destSq.Rank - 2*dir}
			if single.Rank == startRank+dir && double.Valid() && double.Rank == startRank && !board.At(destSq).Present {
				if p := board.At(double); p.Present && p.Type == Pawn && p.Color == color &&
					!board.At(single).Present {
					source, sourceFound = double, true
				}
			}
		}
		if !sourceFound {
			return ApplyResult{}, fmt.Errorf("san: no pawn can push to %s", destSq)
		}
	}

	piece := board.At(source)
	finalType := Pawn
	if promo != "" {
		finalType, _ = PieceTypeFromLetter(promo[0])
	}

	var captured bool
	var capturedType PieceType
	nb := board.Cleared(source)
	if isCapture {
		if enPassantCapture {
			captured = true
			capturedType = Pawn
			nb = nb.Cleared(epVictim)
		} else if target := board.At(destSq); target.Present {
			captured = true
			capturedType = target.Type
		}
	}
	nb = nb.With(destSq, Piece{Present: true, Type: finalType, Color: piece.Color})

	newRights := rights
	if captured && !enPassantCapture {
		newRights = clearRightsForRookOrigin(newRights, destSq)
	}

	isDoublePush := !isCapture && abs(destSq.Rank-source.Rank) == 2
	ep := chessmodel.None[Square]()
	if isDoublePush {
		ep = chessmodel.Some(Square{File: destSq.File, Rank: (destSq.Rank + source.Rank) / 2})
	}

	return ApplyResult{
		Board:          nb,
		Captured:       captured,
		CapturedType:   capturedType,
		IsPawnMove:     true,
		CastlingRights: newRights,
		EnPassant:      ep,
	}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// candidateSources returns every square holding a pt/color piece that can
// geometrically reach dest, ignoring whose turn it is to move and
// ignoring check/pin legality.
func candidateSources(board Board, pt PieceType, color chessmodel.Color, dest Square) []Square {
	switch pt {
	case Knight:
		return knightCandidates(board, color, dest)
	case King:
		return kingCandidates(board, color, dest)
	case Rook:
		return rayCandidates(board, color, Rook, dest, rookDirections[:])
	case Bishop:
		return rayCandidates(board, color, Bishop, dest, bishopDirections[:])
	case Queen:
		return rayCandidates(board, color, Queen, dest, queenDirections[:])
	default:
		return nil
	}
}

var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

func knightCandidates(board Board, color chessmodel.Color, dest Square) []Square {
	var out []Square
	for _, off := range knightOffsets {
		src := Square{File: dest.File + off[0], Rank: dest.Rank + off[1]}
		if !src.Valid() {
			continue
		}
		if p := board.At(src); p.Present && p.Type == Knight && p.Color == color {
			out = append(out, src)
		}
	}
	return out
}

func kingCandidates(board Board, color chessmodel.Color, dest Square) []Square {
	var out []Square
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			src := Square{File: dest.File + dx, Rank: dest.Rank + dy}
			if !src.Valid() {
				continue
			}
			if p := board.At(src); p.Present && p.Type == King && p.Color == color {
				out = append(out, src)
			}
		}
	}
	return out
}

var rookDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var queenDirections = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func rayCandidates(board Board, color chessmodel.Color, pt PieceType, dest Square, dirs [][2]int) []Square {
	var out []Square
	for _, dir := range dirs {
		if sq, ok := firstOccupant(board, dest, dir[0], dir[1]); ok {
			if p := board.At(sq); p.Present && p.Type == pt && p.Color == color {
				out = append(out, sq)
			}
		}
	}
	return out
}

// firstOccupant walks from `from` in direction (dx,dy), excluding `from`
// itself, and returns the first occupied square encountered.
func firstOccupant(board Board, from Square, dx, dy int) (Square, bool) {
	cur := Square{File: from.File + dx, Rank: from.Rank + dy}
	for cur.Valid() {
		if board.At(cur).Present {
			return cur, true
		}
		cur = Square{File: cur.File + dx, Rank: cur.Rank + dy}
	}
	return Square{}, false
}

func filterByDisambiguator(candidates []Square, file, rank string) []Square {
	if file == "" && rank == "" {
		return candidates
	}
	var out []Square
	for _, sq := range candidates {
		if file != "" && byte('a'+sq.File) != file[0] {
			continue
		}
		if rank != "" && byte('1'+sq.Rank) != rank[0] {
			continue
		}
		out = append(out, sq)
	}
	return out
}

func removeChars(s, chars string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		skip := false
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// clearRightsForRookOrigin clears the castling-rights bit owned by
// whichever corner square sq is, used both when a rook moves away from
// its origin and when a rook is captured on its origin square.
func clearRightsForRookOrigin(rights string, sq Square) string {
	switch sq {
	case Square{File: 0, Rank: 0}:
		return removeChars(rights, "Q")
	case Square{File: 7, Rank: 0}:
		return removeChars(rights, "K")
	case Square{File: 0, Rank: 7}:
		return removeChars(rights, "q")
	case Square{File: 7, Rank: 7}:
		return removeChars(rights, "k")
	default:
		return rights
	}
}
