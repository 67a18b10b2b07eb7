package tinyc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.tinyc.dev/internal/test"
)

func lexemes(toks []Token) []string {
	var vals []string
	for _, t := range toks {
		vals = append(vals, t.Value)
	}

	return vals
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{
			"int main () {}",
			[]string{"int", "main", "(", ")", "{", "}"},
		},
		{
			"#include<iostream>",
			[]string{"#", "include", "<", "iostream", ">"},
		},
		{
			"a<=b>=c==d!=e&&f||g<<h>>i",
			[]string{"a", "<=", "b", ">=", "c", "==", "d", "!=", "e", "&&", "f", "||", "g", "<<", "h", ">>", "i"},
		},
		{
			"a<-1 !x =y &z |w",
			[]string{"a", "<", "-", "1", "!", "x", "=", "y", "&", "z", "|", "w"},
		},
		{
			"_foo1 12bar",
			[]string{"_foo1", "12", "bar"},
		},
		{
			"x[10][20]",
			[]string{"x", "[", "10", "]", "[", "20", "]"},
		},
		{
			" \t\r\n  ",
			nil,
		},
		{
			"@$",
			[]string{"@", "$"},
		},
		{
			"a<",
			[]string{"a", "<"},
		},
	}

	for _, c := range cases {
		l := NewLexer(strings.NewReader(c.data))

		toks, err := l.Tokens()
		require.NoError(t, err)
		assert.Equal(t, c.expect, lexemes(toks), c.data)
	}
}

func TestLexerClasses(t *testing.T) {
	l := NewLexer(strings.NewReader("abc 123 ; @"))

	toks, err := l.Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, ClassAlpha, toks[0].Class)
	assert.Equal(t, ClassDigit, toks[1].Class)
	assert.Equal(t, ClassOther, toks[2].Class)
	assert.Equal(t, ClassOther, toks[3].Class)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := NewLexer(strings.NewReader("cout << x"))

	assert.Equal(t, "cout", l.Peek().Value)
	assert.Equal(t, "cout", l.Peek().Value)
	assert.Equal(t, "cout", l.Next().Value)
	assert.Equal(t, "<<", l.Peek().Value)
	assert.Equal(t, "<<", l.Next().Value)
	assert.Equal(t, "x", l.Next().Value)
	assert.True(t, l.Peek().IsEOF())
	assert.True(t, l.Next().IsEOF())
}

func TestLexerLocations(t *testing.T) {
	l := NewLexer(strings.NewReader("int a;\n  a = 1;"))

	toks, err := l.Tokens()
	require.NoError(t, err)

	assert.Equal(t, &Location{Line: 1, Column: 1}, toks[0].Loc)
	assert.Equal(t, &Location{Line: 1, Column: 5}, toks[1].Loc)
	assert.Equal(t, &Location{Line: 2, Column: 3}, toks[3].Loc)
	assert.Equal(t, &Location{Line: 2, Column: 7}, toks[5].Loc)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassSpace, Classify(' '))
	assert.Equal(t, ClassSpace, Classify('\n'))
	assert.Equal(t, ClassDigit, Classify('7'))
	assert.Equal(t, ClassAlpha, Classify('_'))
	assert.Equal(t, ClassAlpha, Classify('Q'))
	assert.Equal(t, ClassOther, Classify('#'))
	assert.Equal(t, ClassOther, Classify(EOF))
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomLexemes(size)
		l := NewLexer(strings.NewReader(data))

		var err error
		b.StartTimer()

		benchResult, err = l.Tokens()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
