package pgn

import (
	"strings"
	"unicode"
)

// tokenType classifies one lexical unit of PGN movetext (grounded on the
// tree-shaped movetext tokenizer pattern: headers are split off first,
// then the remaining text is scanned token by token).
type tokenType int

const (
	tokenMove tokenType = iota
	tokenMoveNumber
	tokenVariation
	tokenComment
	tokenNAG
	tokenResult
)

type token struct {
	typ   tokenType
	value string
}

var resultTokens = map[string]bool{
	"1-0":     true,
	"0-1":     true,
	"1/2-1/2": true,
	"*":       true,
}

var nagSymbols = map[string]bool{
	"!": true, "?": true, "!!": true, "??": true, "!?": true, "?!": true,
}

// tokenizeMovetext splits PGN movetext into structured tokens: moves,
// move numbers, comments, variation markers, NAGs, and the result.
func tokenizeMovetext(movetext string) []token {
	var tokens []token
	runes := []rune(movetext)
	n := len(runes)
	i := 0

	for i < n {
		ch := runes[i]

		if unicode.IsSpace(ch) {
			i++
			continue
		}

		if ch == '{' {
			i++
			start := i
			for i < n && runes[i] != '}' {
				i++
			}
			tokens = append(tokens, token{typ: tokenComment, value: string(runes[start:i])})
			if i < n {
				i++
			}
			continue
		}

		if ch == ';' {
			for i < n && runes[i] != '\n' {
				i++
			}
			continue
		}

		if ch == '(' {
			i++ // skip opening '('
			start := i
			depth := 1
			for i < n && depth > 0 {
				switch runes[i] {
				case '(':
					depth++
					i++
				case ')':
					depth--
					if depth > 0 {
						i++
					}
				default:
					i++
				}
			}
			tokens = append(tokens, token{typ: tokenVariation, value: strings.TrimSpace(string(runes[start:i]))})
			if i < n {
				i++ // skip closing ')'
			}
			continue
		}

		if ch == '$' {
			i++
			start := i
			for i < n && unicode.IsDigit(runes[i]) {
				i++
			}
			tokens = append(tokens, token{typ: tokenNAG, value: "$" + string(runes[start:i])})
			continue
		}

		start := i
		for i < n && !unicode.IsSpace(runes[i]) && runes[i] != '{' && runes[i] != '(' && runes[i] != ')' && runes[i] != ';' && runes[i] != '$' {
			i++
		}
		word := string(runes[start:i])
		if word == "" {
			continue
		}

		if resultTokens[word] {
			tokens = append(tokens, token{typ: tokenResult, value: word})
			continue
		}
		if nagSymbols[word] {
			tokens = append(tokens, token{typ: tokenNAG, value: word})
			continue
		}
		if isMoveNumber(word) {
			tokens = append(tokens, token{typ: tokenMoveNumber, value: word})
			continue
		}

		clean, nag := stripTrailingNAG(word)
		if clean != "" {
			tokens = append(tokens, token{typ: tokenMove, value: clean})
			if nag != "" {
				tokens = append(tokens, token{typ: tokenNAG, value: nag})
			}
		}
	}

	return tokens
}

func isMoveNumber(word string) bool {
	if len(word) == 0 || !unicode.IsDigit(rune(word[0])) {
		return false
	}
	i := 0
	for i < len(word) && unicode.IsDigit(rune(word[i])) {
		i++
	}
	if i >= len(word) {
		return false
	}
	for ; i < len(word); i++ {
		if word[i] != '.' {
			return false
		}
	}
	return true
}

func stripTrailingNAG(move string) (string, string) {
	suffixes := []string{"!!", "??", "!?", "?!", "!", "?"}
	for _, s := range suffixes {
		if strings.HasSuffix(move, s) {
			return move[:len(move)-len(s)], s
		}
	}
	return move, ""
}
