package parser

import (
	"fmt"
	"strconv"

	"github.com/pylite-lang/pylite/pkg/ast"
	"github.com/pylite-lang/pylite/pkg/lexer"
)

// Expression parsing is precedence climbing: one method per level, each
// left-associative. Low to high: equality, comparison, additive,
// multiplicative, primary.

func (p *Parser) expression() (ast.Expression, error) {
	return p.equality()
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenEqualEqual, lexer.TokenBangEqual) {
		op := ast.Op(p.previous().Lexeme[0])
		opLine := p.previous().Line

		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{
			Left:  expr,
			Op:    op,
			Right: right,
			Line:  opLine,
		}
	}

	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.addition()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual) {
		op := ast.Op(p.previous().Lexeme[0])
		opLine := p.previous().Line

		right, err := p.addition()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{
			Left:  expr,
			Op:    op,
			Right: right,
			Line:  opLine,
		}
	}

	return expr, nil
}

func (p *Parser) addition() (ast.Expression, error) {
	expr, err := p.multiplication()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenPlus, lexer.TokenMinus) {
		op := ast.Op(p.previous().Lexeme[0])
		opLine := p.previous().Line

		right, err := p.multiplication()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{
			Left:  expr,
			Op:    op,
			Right: right,
			Line:  opLine,
		}
	}

	return expr, nil
}

func (p *Parser) multiplication() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenMultiply, lexer.TokenDivide, lexer.TokenModulus) {
		op := ast.Op(p.previous().Lexeme[0])
		opLine := p.previous().Line

		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{
			Left:  expr,
			Op:    op,
			Right: right,
			Line:  opLine,
		}
	}

	return expr, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	if p.match(lexer.TokenNumber) {
		value, err := strconv.ParseInt(p.previous().Lexeme, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at line %d",
				p.previous().Lexeme, p.previous().Line)
		}
		return &ast.IntLiteral{Value: value, Line: p.previous().Line}, nil
	}

	if p.match(lexer.TokenString) {
		return &ast.StringLiteral{
			Value: p.previous().Lexeme,
			Line:  p.previous().Line,
		}, nil
	}

	if p.match(lexer.TokenIdentifier) {
		name := p.previous()
		if p.check(lexer.TokenLeftParen) {
			return p.finishCall(name)
		}
		return &ast.Identifier{Name: name.Lexeme, Line: name.Line}, nil
	}

	return nil, fmt.Errorf("expected expression at line %d, found %s",
		p.peek().Line, p.peek().Type)
}

func (p *Parser) finishCall(name lexer.Token) (ast.Expression, error) {
	if _, err := p.consume(lexer.TokenLeftParen, "expected '(' after function name"); err != nil {
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

	if _, err := p.consume(lexer.TokenRightParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}

	return &ast.CallExpression{
		Name:      name.Lexeme,
		Arguments: arguments,
		Line:      name.Line,
	}, nil
}
