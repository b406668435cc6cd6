package main

import (
	"log"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/parser"
)

func main() {
	input := "@math\nsquare : x ? x ^ 2\n# total : [+] (square ~ 1 ~ 10)\n"

	root, err := parser.Parse([]byte(input))
	if err != nil {
		log.Fatal("parser.Parse:", err)
	}

	ast.Print(root)

	for _, w := range root.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, e := range root.Errors {
		log.Printf("error: %s", e)
	}
}
