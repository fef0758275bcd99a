package spry

import (
	"strings"
	"unicode"
)

type lexer struct {
	src []rune
	pos Position

	ch rune
}

func newLexer(sourceName, sourceText string) *lexer {
	l := &lexer{src: []rune(sourceText), pos: newPosition(sourceName, sourceText)}
	if len(l.src) > 0 {
		l.ch = l.src[0]
	}
	return l
}

func (l *lexer) advance() {
	l.pos = l.pos.advance(l.ch)
	if l.pos.Index < len(l.src) {
		l.ch = l.src[l.pos.Index]
	} else {
		l.ch = 0
	}
}

// tokenize scans the whole input and fails at the first unrecognized character.
func tokenize(sourceName, sourceText string) ([]Token, error) {
	l := newLexer(sourceName, sourceText)
	var tokens []Token

	for l.ch != 0 {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case unicode.IsDigit(l.ch):
			tokens = append(tokens, l.readNumber())
		case isIdentifierStart(l.ch):
			tokens = append(tokens, l.readIdentifier())
		case l.ch == '"':
			tokens = append(tokens, l.readString())
		case l.ch == '+':
			tokens = append(tokens, l.makeSingle(tokenPlus))
		case l.ch == '-':
			tokens = append(tokens, l.makePair(tokenMinus, '>', tokenArrow))
		case l.ch == '*':
			tokens = append(tokens, l.makePair(tokenMul, '*', tokenPow))
		case l.ch == '/':
			tokens = append(tokens, l.makeSingle(tokenDiv))
		case l.ch == '(':
			tokens = append(tokens, l.makeSingle(tokenLParen))
		case l.ch == ')':
			tokens = append(tokens, l.makeSingle(tokenRParen))
		case l.ch == '[':
			tokens = append(tokens, l.makeSingle(tokenLSquare))
		case l.ch == ']':
			tokens = append(tokens, l.makeSingle(tokenRSquare))
		case l.ch == ',':
			tokens = append(tokens, l.makeSingle(tokenComma))
		case l.ch == '!':
			tokens = append(tokens, l.makePair(tokenBang, '=', tokenNE))
		case l.ch == '=':
			tokens = append(tokens, l.makePair(tokenEq, '=', tokenEE))
		case l.ch == '<':
			tokens = append(tokens, l.makePair(tokenLT, '=', tokenLTE))
		case l.ch == '>':
			tokens = append(tokens, l.makePair(tokenGT, '=', tokenGTE))
		case l.ch == '&':
			tok, err := l.readDoubled('&', tokenAnd)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case l.ch == '|':
			tok, err := l.readDoubled('|', tokenOr)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			start := l.pos
			ch := l.ch
			l.advance()
			return nil, &IllegalCharError{Char: ch, Start: start, End: l.pos}
		}
	}

	tokens = append(tokens, Token{Type: tokenEOF, PosStart: l.pos, PosEnd: l.pos})
	return tokens, nil
}

func (l *lexer) peek() rune {
	if l.pos.Index+1 < len(l.src) {
		return l.src[l.pos.Index+1]
	}
	return 0
}

func (l *lexer) makeSingle(tt TokenType) Token {
	start := l.pos
	l.advance()
	return Token{Type: tt, PosStart: start, PosEnd: l.pos}
}

// makePair consumes one character, upgrading to the two-character token when
// the next character matches.
func (l *lexer) makePair(single TokenType, next rune, double TokenType) Token {
	start := l.pos
	l.advance()
	if l.ch == next {
		l.advance()
		return Token{Type: double, PosStart: start, PosEnd: l.pos}
	}
	return Token{Type: single, PosStart: start, PosEnd: l.pos}
}

// readDoubled handles operators with no single-character form: && and ||.
func (l *lexer) readDoubled(next rune, tt TokenType) (Token, error) {
	start := l.pos
	ch := l.ch
	l.advance()
	if l.ch != next {
		return Token{}, &IllegalCharError{Char: ch, Start: start, End: l.pos}
	}
	l.advance()
	return Token{Type: tt, PosStart: start, PosEnd: l.pos}, nil
}

// readNumber consumes digits with at most one dot. A second dot ends the
// literal right there; the dot is left for the next scan pass.
func (l *lexer) readNumber() Token {
	start := l.pos
	var sb strings.Builder
	dots := 0

	for l.ch != 0 && (unicode.IsDigit(l.ch) || l.ch == '.') {
		if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		sb.WriteRune(l.ch)
		l.advance()
	}

	tt := tokenInt
	if dots > 0 {
		tt = tokenFloat
	}
	return Token{Type: tt, Literal: sb.String(), PosStart: start, PosEnd: l.pos}
}

func (l *lexer) readIdentifier() Token {
	start := l.pos
	var sb strings.Builder
	for l.ch != 0 && isIdentifierRune(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	literal := sb.String()
	return Token{Type: lookupIdent(literal), Literal: literal, PosStart: start, PosEnd: l.pos}
}

// readString consumes until an unescaped closing quote. An unterminated
// string runs to end of input and lexes as whatever was accumulated.
func (l *lexer) readString() Token {
	start := l.pos
	var sb strings.Builder
	l.advance()

	for l.ch != 0 && l.ch != '"' {
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
			default:
				sb.WriteRune(l.ch)
			}
			if l.ch != 0 {
				l.advance()
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '"' {
		l.advance()
	}
	return Token{Type: tokenString, Literal: sb.String(), PosStart: start, PosEnd: l.pos}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
