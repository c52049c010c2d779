package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pylite-lang/pylite/pkg/ast"
	"github.com/pylite-lang/pylite/pkg/lexer"
)

// dumpTokens prints the token stream in the order the lexer produced
// it, one token per line; the END_OF_FILE marker is left out.
func dumpTokens(tokens []lexer.Token, w io.Writer) {
	fmt.Fprintln(w, "--- Tokens ---")
	for _, tok := range tokens {
		if tok.Type == lexer.TokenEOF {
			continue
		}
		fmt.Fprintf(w, "%s %q at line %d\n", tok.Type, tok.Lexeme, tok.Line)
	}
	fmt.Fprintln(w)
}

// printAST prints a node and its children as an indented outline.
func printAST(node ast.Node, indent int, w io.Writer) {
	indentStr := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		fmt.Fprintln(w, indentStr+"Program")
		for _, stmt := range n.Statements {
			printAST(stmt, indent+1, w)
		}
	case *ast.FunctionDeclaration:
		fmt.Fprintf(w, "%sFunctionDeclaration: %s(%s)\n",
			indentStr, n.Name, strings.Join(n.Parameters, ", "))
		printAST(n.Body, indent+1, w)
	case *ast.IfStatement:
		fmt.Fprintf(w, "%sIfStatement\n", indentStr)
		fmt.Fprintf(w, "%s  Condition:\n", indentStr)
		printAST(n.Condition, indent+2, w)
		fmt.Fprintf(w, "%s  Then:\n", indentStr)
		printAST(n.ThenBranch, indent+2, w)
		if n.ElseBranch != nil {
			fmt.Fprintf(w, "%s  Else:\n", indentStr)
			printAST(n.ElseBranch, indent+2, w)
		}
	case *ast.BlockStatement:
		fmt.Fprintf(w, "%sBlock\n", indentStr)
		for _, stmt := range n.Statements {
			printAST(stmt, indent+1, w)
		}
	case *ast.AssignStatement:
		fmt.Fprintf(w, "%sAssign: %s\n", indentStr, n.Name)
		printAST(n.Value, indent+1, w)
	case *ast.PrintStatement:
		fmt.Fprintf(w, "%sPrint\n", indentStr)
		for _, arg := range n.Arguments {
			printAST(arg, indent+1, w)
		}
	case *ast.ReturnStatement:
		fmt.Fprintf(w, "%sReturn\n", indentStr)
		printAST(n.Value, indent+1, w)
	case *ast.BinaryExpression:
		fmt.Fprintf(w, "%sBinaryOp: %s\n", indentStr, n.Op)
		printAST(n.Left, indent+1, w)
		printAST(n.Right, indent+1, w)
	case *ast.CallExpression:
		fmt.Fprintf(w, "%sCall: %s\n", indentStr, n.Name)
		for _, arg := range n.Arguments {
			printAST(arg, indent+1, w)
		}
	case *ast.IntLiteral:
		fmt.Fprintf(w, "%sInt: %d\n", indentStr, n.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(w, "%sString: %q\n", indentStr, n.Value)
	case *ast.Identifier:
		fmt.Fprintf(w, "%sIdentifier: %s\n", indentStr, n.Name)
	default:
		fmt.Fprintf(w, "%sNode: %T\n", indentStr, node)
	}
}
