package tinyc

import (
	"io"
	"strings"
)

type CharClass uint8
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=CharClass -trimprefix=Class
const (
	ClassSpace CharClass = iota
	ClassAlpha
	ClassDigit
	ClassOther
)

// Second bytes that may follow the key to form a two-byte operator:
// <= << >= >> != == && ||
var twoByteOperators = map[byte]string{
	'<': "=<",
	'>': "=>",
	'!': "=",
	'=': "=",
	'&': "&",
	'|': "|",
}

// Token is a single lexeme. An empty Value marks the end of input.
type Token struct {
	Class CharClass
	Value string
	Loc   *Location
}

func (t Token) IsEOF() bool {
	return t.Value == ""
}

func (t Token) String() string {
	if t.IsEOF() {
		return "end of input"
	}

	return "\"" + t.Value + "\""
}

// Tokenizer is the lexeme stream consumed by the Parser.
type Tokenizer interface {
	// Peek returns the next lexeme without consuming it.
	Peek() Token
	// Next consumes and returns the next lexeme.
	Next() Token
	Err() error
}

type Lexer struct {
	src *Source
	buf *Token
	out Token
}

func NewLexer(reader io.Reader) *Lexer {
	return NewLexerFromSource(NewSource(reader))
}

func NewLexerFromSource(src *Source) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) Peek() Token {
	if l.buf == nil {
		tok := l.scan()
		l.buf = &tok
	}

	return *l.buf
}

func (l *Lexer) Next() Token {
	tok := l.Peek()
	l.buf = nil

	return tok
}

func (l *Lexer) Err() error {
	return l.src.Err()
}

// Tokens drains the lexer.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token
	for tok := l.Next(); !tok.IsEOF(); tok = l.Next() {
		toks = append(toks, tok)
	}

	return toks, l.Err()
}

func Classify(c int) CharClass {
	switch {
	case c == ' ' || c == '\n' || c == '\r' || c == '\t':
		return ClassSpace
	case '0' <= c && c <= '9':
		return ClassDigit
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '_':
		return ClassAlpha
	default:
		return ClassOther
	}
}

func (l *Lexer) scan() Token {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	return l.out
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.src.Peek(); {
		case r == EOF:
			return l.emit(ClassSpace, "", l.src.Location())
		case Classify(r) == ClassSpace:
			l.src.Next()
		case Classify(r) == ClassDigit:
			return numberState
		case Classify(r) == ClassAlpha:
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	loc := l.src.Location()

	var num strings.Builder
	for Classify(l.src.Peek()) == ClassDigit {
		num.WriteByte(byte(l.src.Next()))
	}

	return l.emit(ClassDigit, num.String(), loc)
}

func identifierState(l *Lexer) stateFunc {
	loc := l.src.Location()

	var id strings.Builder
	for c := Classify(l.src.Peek()); c == ClassAlpha || c == ClassDigit; c = Classify(l.src.Peek()) {
		id.WriteByte(byte(l.src.Next()))
	}

	return l.emit(ClassAlpha, id.String(), loc)
}

func operatorState(l *Lexer) stateFunc {
	loc := l.src.Location()
	r := byte(l.src.Next())

	op := string(r)
	if seconds, ok := twoByteOperators[r]; ok {
		if next := l.src.Peek(); next != EOF && strings.IndexByte(seconds, byte(next)) >= 0 {
			op += string(byte(l.src.Next()))
		}
	}

	return l.emit(ClassOther, op, loc)
}

func (l *Lexer) emit(c CharClass, val string, loc Location) stateFunc {
	l.out = Token{
		Class: c,
		Value: val,
		Loc:   &loc,
	}

	return nil
}
