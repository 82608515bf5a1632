package pgn

import (
	"context"
	"io"
	"strings"
)

// Parser produces a finite, single-pass sequence of ParsedGame values
// (spec §4.3). It is not restartable; construct a new one per file.
type Parser struct {
	blocks []string
	pos    int
}

// NewParser reads all of r, sanitizes it, and partitions it into per-game
// text blocks using the in_headers/in_moves boundary state machine. Move
// resolution and FEN stamping happen lazily, on each call to Next.
func NewParser(r io.Reader) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := sanitizeUTF8(data)
	return &Parser{blocks: splitGameBlocks(text)}, nil
}

// Next returns the next parsed game, or ok=false once the source is
// exhausted. A malformed game (missing header, unresolvable SAN) is
// reported as an error but does not stop iteration; the caller decides
// whether to keep calling Next.
func (p *Parser) Next(ctx context.Context) (ParsedGame, bool, error) {
	if ctx.Err() != nil {
		return ParsedGame{}, false, ctx.Err()
	}
	if p.pos >= len(p.blocks) {
		return ParsedGame{}, false, nil
	}
	block := p.blocks[p.pos]
	idx := p.pos
	p.pos++

	game, err := parseGameBlock(block, idx)
	if err != nil {
		return ParsedGame{}, true, err
	}
	return game, true, nil
}

// splitGameBlocks partitions raw PGN text into per-game blocks. A header
// line observed while in_moves is true starts a new block; blank lines do
// not change state (spec §4.3 Boundary detection).
func splitGameBlocks(text string) []string {
	lines := strings.Split(text, "\n")

	var blocks []string
	var current []string
	inMoves := false

	flush := func() {
		joined := strings.Join(current, "\n")
		if strings.TrimSpace(joined) != "" {
			blocks = append(blocks, joined)
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			current = append(current, line)
			continue
		}
		isHeader := strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
		if isHeader && inMoves {
			flush()
			inMoves = false
		}
		if !isHeader {
			inMoves = true
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// parseGameBlock splits one game's raw text into headers and movetext,
// resolves the header map, tokenizes the movetext, and folds each SAN
// token through a fresh fenstate.State to stamp fen_before/fen_after.
func parseGameBlock(block string, index int) (ParsedGame, error) {
	rawLines, movetext := splitHeadersAndMovetext(block)

	raw := newRawHeaders()
	for _, line := range rawLines {
		if tag, value, ok := headerLine(line); ok {
			raw.set(tag, value)
		}
	}

	header, err := buildHeader(raw, index)
	if err != nil {
		return ParsedGame{}, err
	}

	moves, err := buildMoves(tokenizeMovetext(movetext), index)
	if err != nil {
		return ParsedGame{}, err
	}

	return ParsedGame{
		Index:     index,
		Header:    header,
		Moves:     moves,
		SourcePGN: block,
	}, nil
}

// splitHeadersAndMovetext separates the leading "[Tag \"Value\"]" lines
// from the remaining movetext.
func splitHeadersAndMovetext(block string) (headerLines []string, movetext string) {
	lines := strings.Split(block, "\n")
	movetextStart := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			headerLines = append(headerLines, line)
			movetextStart = i + 1
			continue
		}
		if trimmed == "" && movetextStart == i {
			movetextStart = i + 1
			continue
		}
		break
	}
	return headerLines, strings.Join(lines[movetextStart:], "\n")
}
