package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

type spanSetter interface {
	SetSpan(lexer.Span)
}

// setSpan overrides the span of a node built elsewhere, as a grouping does
// for the expression it encloses.
func setSpan(node ast.Node, span lexer.Span) {
	setter, ok := node.(spanSetter)
	if !ok {
		invariant("node %T cannot carry a widened span", node)
	}
	setter.SetSpan(span)
}

func isBindingKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.VAR, lexer.CONST:
		return true
	default:
		return false
	}
}

func isLoopKeyword(tt lexer.TokenType) bool {
	return tt == lexer.WHILE || tt == lexer.FOR
}
