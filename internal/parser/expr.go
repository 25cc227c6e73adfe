package parser

import (
	"strings"

	"gpex/internal/ast"
)

func (p *Parser) parseExpr(c *cursor) (ast.Expr, *ParseError) {
	return parseAny(c, p.parseIntLiteral, p.parseIdentRef)
}

func (p *Parser) parseIntLiteral(c *cursor) (ast.Expr, *ParseError) {
	span, text, err := c.match(&intPattern)
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Kind:   ast.ExprIntLiteral,
		Node:   c.ids.Next(),
		Span:   span,
		Scope:  c.scopePath(),
		Digits: strings.ReplaceAll(text, "_", ""),
	}, nil
}

// parseIdentRef parses a name in expression position. The id is taken
// after the name so it sorts after every definition that precedes it.
func (p *Parser) parseIdentRef(c *cursor) (ast.Expr, *ParseError) {
	span, text, err := c.match(&identPattern)
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Kind:  ast.ExprIdent,
		Node:  c.ids.Next(),
		Span:  span,
		Scope: c.scopePath(),
		Name:  p.strs.Intern(text),
	}, nil
}
