package parser

import (
	"fmt"

	"github.com/pylite-lang/pylite/pkg/ast"
	"github.com/pylite-lang/pylite/pkg/lexer"
)

// Parser turns a token slice into a Program by recursive descent. The
// grammar is LL(2): every decision runs on one token of lookahead except
// telling an assignment apart from anything else starting with an
// identifier, which needs peekNext.
type Parser struct {
	tokens  []lexer.Token
	current int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{
		Statements: []ast.Statement{},
	}

	for !p.isAtEnd() {
		// Newlines between statements and dedents that closed an
		// already-parsed block carry no statement content.
		if p.match(lexer.TokenNewline) || p.match(lexer.TokenDedent) {
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	if p.match(lexer.TokenIf) {
		return p.ifStatement()
	}
	if p.match(lexer.TokenPrint) {
		return p.printStatement()
	}
	if p.check(lexer.TokenIdentifier) && p.checkNext(lexer.TokenAssign) {
		return p.assignStatement()
	}
	if p.match(lexer.TokenDef) {
		return p.functionDeclaration()
	}
	if p.match(lexer.TokenReturn) {
		return p.returnStatement()
	}

	return nil, fmt.Errorf("unexpected token %s at start of statement at line %d",
		p.peek().Type, p.peek().Line)
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	line := p.previous().Line

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.TokenColon, "expected ':' after if condition"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenNewline, "expected newline after ':'"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenIndent, "expected indented block after if"); err != nil {
		return nil, err
	}

	thenBranch, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenDedent, "expected dedent after if block"); err != nil {
		return nil, err
	}

	var elseBranch *ast.BlockStatement
	if p.match(lexer.TokenElse) {
		if _, err := p.consume(lexer.TokenColon, "expected ':' after else"); err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenNewline, "expected newline after ':'"); err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenIndent, "expected indented block after else"); err != nil {
			return nil, err
		}
		elseBranch, err = p.block()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenDedent, "expected dedent after else block"); err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
		Line:       line,
	}, nil
}

func (p *Parser) block() (*ast.BlockStatement, error) {
	line := p.peek().Line
	statements := []ast.Statement{}

	for !p.check(lexer.TokenDedent) && !p.isAtEnd() {
		if p.match(lexer.TokenNewline) {
			continue
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return &ast.BlockStatement{Statements: statements, Line: line}, nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	line := p.previous().Line

	if _, err := p.consume(lexer.TokenLeftParen, "expected '(' after 'print'"); err != nil {
		return nil, err
	}

	arguments := []ast.Expression{}
	if !p.check(lexer.TokenRightParen) {
		for {
			expr, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, expr)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(lexer.TokenRightParen, "expected ')' after print arguments"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenNewline, "expected newline after print statement"); err != nil {
		return nil, err
	}

	return &ast.PrintStatement{Arguments: arguments, Line: line}, nil
}

func (p *Parser) assignStatement() (ast.Statement, error) {
	name, err := p.consume(lexer.TokenIdentifier, "expected identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenAssign, "expected '=' after identifier"); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenNewline, "expected newline after assignment"); err != nil {
		return nil, err
	}

	return &ast.AssignStatement{
		Name:  name.Lexeme,
		Value: value,
		Line:  name.Line,
	}, nil
}

func (p *Parser) functionDeclaration() (ast.Statement, error) {
	line := p.previous().Line

	name, err := p.consume(lexer.TokenIdentifier, "expected function name after 'def'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenLeftParen, "expected '(' after function name"); err != nil {
		return nil, err
	}

	parameters := []string{}
	if !p.check(lexer.TokenRightParen) {
		for {
			param, err := p.consume(lexer.TokenIdentifier, "expected parameter name")
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, param.Lexeme)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(lexer.TokenRightParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenColon, "expected ':' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenNewline, "expected newline after ':'"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenIndent, "expected indented function body"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenDedent, "expected dedent after function body"); err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Name:       name.Lexeme,
		Parameters: parameters,
		Body:       body,
		Line:       line,
	}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	line := p.previous().Line

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenNewline, "expected newline after return statement"); err != nil {
		return nil, err
	}

	return &ast.ReturnStatement{Value: value, Line: line}, nil
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if !p.check(tokenType) {
		return lexer.Token{}, fmt.Errorf("%s at line %d, found %s",
			message, p.peek().Line, p.peek().Type)
	}
	return p.advance(), nil
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.TokenEOF
	}
	return p.peek().Type == tokenType
}

func (p *Parser) checkNext(tokenType lexer.TokenType) bool {
	return p.peekNext().Type == tokenType
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokenEOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() lexer.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}
