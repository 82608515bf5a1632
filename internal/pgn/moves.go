package pgn

import (
	"strings"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/fenstate"
)

// buildMoves walks the tokenized movetext, attaching comments, variations,
// and NAGs to the previous move (or queuing them for the next one when no
// previous move exists yet), and folds each SAN token through a fresh
// fenstate.State to stamp fen_before/fen_after (spec §4.3 Move extraction,
// §4.3 FEN stamping).
func buildMoves(tokens []token, gameIndex int) ([]Move, error) {
	var moves []Move
	var pendingComments []string
	var pendingVariations []string
	var pendingNAGs []string

	st := fenstate.InitialState()
	ply := 0

	attachPending := func(m *Move) {
		if len(pendingComments) > 0 {
			m.CommentsBefore = pendingComments
			pendingComments = nil
		}
		if len(pendingVariations) > 0 {
			m.Variations = append(m.Variations, pendingVariations...)
			pendingVariations = nil
		}
		if len(pendingNAGs) > 0 {
			m.NAGs = append(m.NAGs, pendingNAGs...)
			pendingNAGs = nil
		}
	}

	for _, tok := range tokens {
		switch tok.typ {
		case tokenMoveNumber, tokenResult:
			continue

		case tokenComment:
			text := strings.TrimSpace(tok.value)
			if text == "" {
				continue
			}
			if len(moves) > 0 {
				last := &moves[len(moves)-1]
				last.CommentsAfter = append(last.CommentsAfter, text)
			} else {
				pendingComments = append(pendingComments, text)
			}

		case tokenVariation:
			if len(moves) > 0 {
				last := &moves[len(moves)-1]
				last.Variations = append(last.Variations, tok.value)
			} else {
				pendingVariations = append(pendingVariations, tok.value)
			}

		case tokenNAG:
			if len(moves) > 0 {
				last := &moves[len(moves)-1]
				last.NAGs = append(last.NAGs, tok.value)
			} else {
				pendingNAGs = append(pendingNAGs, tok.value)
			}

		case tokenMove:
			ply++
			fenBefore := st.FEN()
			side := st.SideToMove()

			next, res, err := st.Apply(tok.value)
			if err != nil {
				return nil, &chesserr.ParseError{
					GameIndex: gameIndex,
					Reason:    "invalid move",
					Err:       &chesserr.InvalidMoveError{Ply: ply, SAN: tok.value, Reason: err.Error()},
				}
			}
			st = next

			m := Move{
				Ply:        ply,
				SAN:        tok.value,
				SideToMove: side,
				FENBefore:  fenBefore,
				FENAfter:   st.FEN(),
				IsCapture:  res.Captured,
				IsCheck:    res.IsCheck,
				IsMate:     res.IsMate,
			}
			attachPending(&m)
			moves = append(moves, m)
		}
	}

	return moves, nil
}
