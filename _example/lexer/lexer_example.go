package main

import (
	"fmt"
	"log"

	"github.com/xiam/sign/lexer"
)

func main() {
	input := `
fib : n ?
    n < 2 : n
    _ : fib (n - 1) + fib (n - 2)

# fib
`

	tokens, err := lexer.Tokenize([]byte(input))
	if err != nil {
		log.Fatal("lexer.Tokenize:", err)
	}

	for i, tok := range tokens {
		line, col := tok.Pos()
		lexeme := tok.Text()
		tt := tok.Type().String()

		fmt.Printf("token[%d] (type: %v, line: %d, col: %d, spaced: %v)\n\t-> %q\n\n", i, tt, line, col, tok.Spaced(), lexeme)
	}
}
