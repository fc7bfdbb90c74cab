package ldlfparse

import (
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// identFold canonicalizes atom identifiers so that "A" and "a" name the same
// alphabet symbol, matching the teacher's use of golang.org/x/text for text
// normalization elsewhere in the pack.
var identFold = cases.Fold()

// lexer scans a formula's surface syntax into Tokens.
type lexer struct {
	input []rune
	pos   int // 0-based rune offset
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

// tokenize scans the entire input and returns the Token stream, terminated
// by a TokenEOF, or a syntax error for an unrecognized character.
func tokenize(input string) ([]Token, error) {
	l := newLexer(input)
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == TokenEOF {
			return out, nil
		}
	}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) next() (Token, error) {
	for {
		c, ok := l.peek()
		if !ok {
			return Token{Kind: TokenEOF, Pos: l.pos + 1}, nil
		}
		if unicode.IsSpace(c) {
			l.pos++
			continue
		}
		break
	}

	start := l.pos
	c, _ := l.peek()

	single := map[rune]TokenKind{
		'(': TokenLParen,
		')': TokenRParen,
		'<': TokenLAngle,
		'>': TokenRAngle,
		'[': TokenLBracket,
		']': TokenRBracket,
		'!': TokenBang,
		'&': TokenAmp,
		'|': TokenPipe,
		';': TokenSemi,
		'+': TokenPlus,
		'*': TokenStar,
		'?': TokenQuestion,
	}
	if kind, ok := single[c]; ok {
		l.pos++
		return Token{Kind: kind, Lexeme: string(c), Pos: start + 1}, nil
	}

	if isIdentStart(c) {
		for {
			c, ok := l.peek()
			if !ok || !isIdentPart(c) {
				break
			}
			l.pos++
		}
		text := string(l.input[start:l.pos])
		folded := identFold.String(text)
		switch folded {
		case "true":
			return Token{Kind: TokenTrue, Lexeme: text, Pos: start + 1}, nil
		case "false":
			return Token{Kind: TokenFalse, Lexeme: text, Pos: start + 1}, nil
		default:
			return Token{Kind: TokenIdent, Lexeme: folded, Pos: start + 1}, nil
		}
	}

	return Token{}, fmt.Errorf("ldlfparse: unexpected character %q at position %d", c, start+1)
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-'
}
