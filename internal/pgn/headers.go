package pgn

import (
	"strconv"
	"strings"
	"time"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/chesserr"
)

// headerLine parses a "[Tag "Value"]" line. ok is false for any other
// line (blank lines and movetext both fall through here).
func headerLine(line string) (tag, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", "", false
	}
	content := trimmed[1 : len(trimmed)-1]
	idx := strings.Index(content, " ")
	if idx < 0 {
		return "", "", false
	}
	tag = content[:idx]
	value = strings.TrimSpace(content[idx+1:])
	value = strings.Trim(value, `"`)
	return tag, value, true
}

// rawHeaders is a case-insensitive tag -> value map built while the
// boundary state machine is in_headers (spec §4.3 Header extraction).
type rawHeaders map[string]string

func newRawHeaders() rawHeaders { return make(rawHeaders) }

func (h rawHeaders) set(tag, value string) { h[strings.ToLower(tag)] = value }

func (h rawHeaders) get(tag string) (string, bool) {
	v, ok := h[strings.ToLower(tag)]
	return v, ok
}

// buildHeader resolves the raw tag map into a chessmodel.Header,
// enforcing the required White/Black tags (spec §4.3).
func buildHeader(raw rawHeaders, gameIndex int) (chessmodel.Header, error) {
	white, ok := raw.get("White")
	if !ok || white == "" {
		return chessmodel.Header{}, &chesserr.ParseError{GameIndex: gameIndex, Reason: "missing required header White"}
	}
	black, ok := raw.get("Black")
	if !ok || black == "" {
		return chessmodel.Header{}, &chesserr.ParseError{GameIndex: gameIndex, Reason: "missing required header Black"}
	}

	h := chessmodel.Header{
		White:       white,
		Black:       black,
		Event:       optionalString(raw, "Event"),
		Site:        optionalString(raw, "Site"),
		Round:       optionalString(raw, "Round"),
		ECO:         optionalString(raw, "ECO"),
		Opening:     optionalString(raw, "Opening"),
		Termination: optionalString(raw, "Termination"),
		WhiteFideID: optionalString(raw, "WhiteFideId"),
		BlackFideID: optionalString(raw, "BlackFideId"),
		Result:      chessmodel.ResultUnknown,
	}

	if v, ok := raw.get("Result"); ok && v != "" {
		h.Result = chessmodel.Result(v)
	}
	if v, ok := raw.get("WhiteElo"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			h.WhiteElo = chessmodel.Some(n)
		}
	}
	if v, ok := raw.get("BlackElo"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			h.BlackElo = chessmodel.Some(n)
		}
	}
	if v, ok := raw.get("Date"); ok && v != "" && v != "?" && !strings.Contains(v, "?") {
		if t, err := time.Parse("2006.01.02", v); err == nil {
			h.GameDate = chessmodel.Some(t)
		}
	}

	return h, nil
}

func optionalString(raw rawHeaders, tag string) chessmodel.Option[string] {
	v, ok := raw.get(tag)
	if !ok || v == "" || v == "?" {
		return chessmodel.None[string]()
	}
	return chessmodel.Some(v)
}
