package test

import (
	"fmt"
	"math/rand"
	"strings"
)

var validLexemes = strings.Fields("int main ( ) { } [ ] , ; cin cout endl >> << <= >= == != && || = + - * / % ^ ! < > " +
	"if else for while return putchar x _tmp1 a2 0 7 42 1024 2147483647")

func GetRandomLexemes(size int) string {
	return GetRandomLexemesWithSep(size, " ")
}

func GetRandomLexemesWithSep(size int, sep string) string {
	var lexemes []string
	for len(lexemes) < size {
		lexemes = append(lexemes, validLexemes[rand.Intn(len(validLexemes))])
	}

	return strings.Join(lexemes, sep)
}

const header = "#include<iostream>\n#include<cstdio>\nusing namespace std;\n"

// Program wraps body in the mandatory header and a main function.
func Program(body string) string {
	return header + "int main(){" + body + "}\n"
}

// Input prefixes src with the integer feed the interpreter reads first.
func Input(feed []int32, src string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", len(feed))
	for _, v := range feed {
		fmt.Fprintf(&b, " %d", v)
	}

	b.WriteString("\n")
	b.WriteString(src)

	return b.String()
}
