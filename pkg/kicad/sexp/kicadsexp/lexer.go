package kicadsexp

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

// TokenType identifies the kind of a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

// Token is a single lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
}

// NewLexer creates a lexer reading from r
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	ch, err := l.skipBlank()
	if err != nil {
		if err == io.EOF {
			return Token{Type: TokenEOF}, nil
		}
		return Token{}, err
	}

	switch ch {
	case '(':
		return Token{Type: TokenLeftParen, Value: "("}, nil

	case ')':
		return Token{Type: TokenRightParen, Value: ")"}, nil

	case '"':
		return l.readString()

	default:
		return l.readSymbol(ch)
	}
}

// skipBlank consumes whitespace and # line comments and returns the first
// significant rune.
func (l *Lexer) skipBlank() (rune, error) {
	for {
		ch, _, err := l.reader.ReadRune()
		if err != nil {
			return 0, err
		}

		if unicode.IsSpace(ch) {
			continue
		}

		if ch == '#' {
			for {
				c, _, err := l.reader.ReadRune()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}

		return ch, nil
	}
}

// readString reads a quoted string; the opening quote is already consumed.
// Returns the string contents with quotes and escapes resolved.
func (l *Lexer) readString() (Token, error) {
	var result []rune
	for {
		ch, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return Token{}, fmt.Errorf("unexpected EOF in string")
			}
			return Token{}, err
		}

		if ch == '"' {
			// Doubled quote is an escaped quote
			next, _, err := l.reader.ReadRune()
			if err == nil && next == '"' {
				result = append(result, '"')
				continue
			}
			if err == nil {
				l.reader.UnreadRune()
			}
			break
		}

		if ch == '\\' {
			next, _, err := l.reader.ReadRune()
			if err != nil {
				return Token{}, fmt.Errorf("unexpected EOF after backslash")
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			default:
				// \\ and \" resolve to the character itself; unknown
				// escapes pass through
				result = append(result, next)
			}
			continue
		}

		result = append(result, ch)
	}

	return Token{Type: TokenString, Value: string(result)}, nil
}

// readSymbol reads an unquoted symbol (identifier or number) starting with
// the already-consumed rune first.
func (l *Lexer) readSymbol(first rune) (Token, error) {
	result := []rune{first}

	for {
		ch, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Token{}, err
		}

		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			l.reader.UnreadRune()
			break
		}

		result = append(result, ch)
	}

	return Token{Type: TokenSymbol, Value: string(result)}, nil
}
