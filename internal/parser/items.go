package parser

import (
	"gpex/internal/ast"
	"gpex/internal/source"
)

// parsedItem is a top-level item that has not been allocated yet.
// Allocation happens only once the whole item parsed, so backtracking
// never leaves orphan nodes in the arenas.
type parsedItem struct {
	kind  ast.ItemKind
	span  source.Span
	imp   ast.ImportItem
	vr    ast.VarItem
	cn    ast.ConstItem
	value ast.Expr
}

func (p *Parser) parseItem(c *cursor) (parsedItem, *ParseError) {
	return parseAny(c, p.parseImport, p.parseVar, p.parseConst)
}

func (p *Parser) parseImport(c *cursor) (parsedItem, *ParseError) {
	var imp ast.ImportItem
	pubSpan, hasPub := optional(c, symbolFn(symPub))
	kw, err := c.symbol(symImport)
	if err != nil {
		return parsedItem{}, err
	}
	imp.Public, imp.PubSpan, imp.KeywordSpan = hasPub, pubSpan, kw
	start := kw
	if hasPub {
		start = pubSpan
	}

	parents, _, err := parseMany(c, 0, p.parseParentSegment, p.parseDot)
	if err != nil {
		return parsedItem{}, err
	}
	if len(parents) > 0 {
		if _, err := c.symbol(symDot); err != nil {
			return parsedItem{}, err
		}
	}
	names, deferred, err := parseMany(c, 1, p.parseNameSegment, p.parseDot)
	if err != nil {
		return parsedItem{}, err
	}
	semi, err := c.symbol(symSemi)
	if err != nil {
		return parsedItem{}, merge(deferred, err)
	}
	imp.Segments = append(parents, names...)
	imp.Node = c.ids.Next()

	return parsedItem{kind: ast.ItemImport, span: start.Cover(semi), imp: imp}, nil
}

func (p *Parser) parseParentSegment(c *cursor) (ast.ImportSegment, *ParseError) {
	span, err := c.symbol(symTilde)
	if err != nil {
		return ast.ImportSegment{}, err
	}
	return ast.ImportSegment{Kind: ast.SegmentParent, Span: span}, nil
}

func (p *Parser) parseNameSegment(c *cursor) (ast.ImportSegment, *ParseError) {
	span, text, err := c.match(&identPattern)
	if err != nil {
		return ast.ImportSegment{}, err
	}
	return ast.ImportSegment{Kind: ast.SegmentName, Name: p.strs.Intern(text), Span: span}, nil
}

func (p *Parser) parseDot(c *cursor) (struct{}, *ParseError) {
	_, err := c.symbol(symDot)
	return struct{}{}, err
}

func (p *Parser) parseVar(c *cursor) (parsedItem, *ParseError) {
	pubSpan, hasPub := optional(c, symbolFn(symPub))
	return defineScope(c, func(c *cursor, id ast.NodeID) (parsedItem, *ParseError) {
		kw, err := c.symbol(symVar)
		if err != nil {
			return parsedItem{}, err
		}
		nameSpan, name, value, end, err := p.parseBinding(c)
		if err != nil {
			return parsedItem{}, err
		}
		start := kw
		if hasPub {
			start = pubSpan
		}
		return parsedItem{
			kind: ast.ItemVar,
			span: start.Cover(end),
			vr: ast.VarItem{
				Node:        id,
				Scope:       c.scopePath(),
				Public:      hasPub,
				PubSpan:     pubSpan,
				KeywordSpan: kw,
				Name:        p.strs.Intern(name),
				NameSpan:    nameSpan,
			},
			value: value,
		}, nil
	})
}

func (p *Parser) parseConst(c *cursor) (parsedItem, *ParseError) {
	return defineScope(c, func(c *cursor, id ast.NodeID) (parsedItem, *ParseError) {
		kw, err := c.symbol(symConst)
		if err != nil {
			return parsedItem{}, err
		}
		nameSpan, name, value, end, err := p.parseBinding(c)
		if err != nil {
			return parsedItem{}, err
		}
		return parsedItem{
			kind: ast.ItemConst,
			span: kw.Cover(end),
			cn: ast.ConstItem{
				Node:        id,
				Scope:       c.scopePath(),
				KeywordSpan: kw,
				Name:        p.strs.Intern(name),
				NameSpan:    nameSpan,
			},
			value: value,
		}, nil
	})
}

// parseBinding parses `name = expr ;` shared by var and const.
func (p *Parser) parseBinding(c *cursor) (nameSpan source.Span, name string, value ast.Expr, end source.Span, err *ParseError) {
	nameSpan, name, err = c.match(&identPattern)
	if err != nil {
		return
	}
	if _, err = c.symbol(symAssign); err != nil {
		return
	}
	if value, err = p.parseExpr(c); err != nil {
		return
	}
	end, err = c.symbol(symSemi)
	return
}

func symbolFn(text string) parseFn[source.Span] {
	return func(c *cursor) (source.Span, *ParseError) {
		return c.symbol(text)
	}
}
