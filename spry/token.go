package spry

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	tokenInt     TokenType = "INT"
	tokenFloat   TokenType = "FLOAT"
	tokenString  TokenType = "STRING"
	tokenIdent   TokenType = "IDENTIFIER"
	tokenKeyword TokenType = "KEYWORD"

	tokenPlus  TokenType = "+"
	tokenMinus TokenType = "-"
	tokenMul   TokenType = "*"
	tokenDiv   TokenType = "/"
	tokenPow   TokenType = "**"
	tokenEq    TokenType = "="
	tokenEE    TokenType = "=="
	tokenNE    TokenType = "!="
	tokenLT    TokenType = "<"
	tokenGT    TokenType = ">"
	tokenLTE   TokenType = "<="
	tokenGTE   TokenType = ">="
	tokenAnd   TokenType = "&&"
	tokenOr    TokenType = "||"
	tokenBang  TokenType = "!"

	tokenComma   TokenType = ","
	tokenArrow   TokenType = "->"
	tokenLParen  TokenType = "("
	tokenRParen  TokenType = ")"
	tokenLSquare TokenType = "["
	tokenRSquare TokenType = "]"
)

var keywords = map[string]struct{}{
	"var":   {},
	"if":    {},
	"then":  {},
	"elif":  {},
	"else":  {},
	"for":   {},
	"to":    {},
	"step":  {},
	"while": {},
	"fun":   {},
}

func lookupIdent(ident string) TokenType {
	if _, ok := keywords[ident]; ok {
		return tokenKeyword
	}
	return tokenIdent
}

// Keywords returns the language's reserved words, for tooling such as
// autocompletion.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	return names
}

// Token captures lexical information for the parser. Every token carries the
// span of source characters it was read from.
type Token struct {
	Type    TokenType
	Literal string

	PosStart Position
	PosEnd   Position
}

func (t Token) isKeyword(word string) bool {
	return t.Type == tokenKeyword && t.Literal == word
}

// Position is a cursor into one source text. Tokens and AST nodes hold copies,
// so a captured position never changes under its holder.
type Position struct {
	Index int
	Row   int
	Col   int

	SourceName string
	SourceText string
}

func newPosition(sourceName, sourceText string) Position {
	return Position{Row: 1, SourceName: sourceName, SourceText: sourceText}
}

// advance returns the cursor moved past r. A newline starts a new row and
// resets the column.
func (p Position) advance(r rune) Position {
	p.Index++
	if r == '\n' {
		p.Row++
		p.Col = 0
	} else {
		p.Col++
	}
	return p
}
