package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/parser"
)

func printTree(node ast.Node) {
	printIndentedTree(node, 0)
}

func printIndentedTree(node ast.Node, indentationLevel int) {
	indent := strings.Repeat("  ", indentationLevel)
	if v, ok := node.(ast.Valuer); ok {
		fmt.Printf("%s<%s>%v</%s>\n", indent, node.Type(), v.Value(), node.Type())
		return
	}
	fmt.Printf("%s<%s>\n", indent, node.Type())
	for _, child := range ast.Children(node) {
		printIndentedTree(child, indentationLevel+1)
	}
	fmt.Printf("%s</%s>\n", indent, node.Type())
}

func main() {
	input := "greet : name ? [`Hello, `, name, `!`]\ngreet `world`\n"

	root, err := parser.Parse([]byte(input))
	if err != nil {
		log.Fatal("parser.Parse:", err)
	}

	printTree(root)
}
