package parser

import (
	"github.com/crusty-lang/crusty/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	AllowEmpty    bool
	AllowTrailing bool
}

type delimitedResult[T any] struct {
	Items    []T
	Trailing bool
}

// parseDelimited parses `item (sep item)* sep? closing` with the cursor just
// past the opening token, and consumes the closing token. Missing elements
// and separators are recorded as failures by the terminal checks and by
// parseItem; the list itself adds no message of its own.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	var result delimitedResult[T]

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		invariant("parseDelimited requires a closing token")
	}

	if cfg.AllowEmpty && p.accept(cfg.Closing) {
		return result, true
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		if p.accept(cfg.Separator) {
			if cfg.AllowTrailing && p.accept(cfg.Closing) {
				result.Trailing = true
				return result, true
			}
			continue
		}

		if p.accept(cfg.Closing) {
			return result, true
		}
		return result, false
	}
}
