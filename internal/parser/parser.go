package parser

import (
	"gpex/internal/ast"
	"gpex/internal/diag"
	"gpex/internal/source"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	File  source.FileID
	Items []ast.ItemID
	// Err is the syntax error that stopped the module, if any.
	Err *ParseError
}

// Parser — состояние парсера на один файл.
type Parser struct {
	arenas *ast.Builder
	strs   *source.Interner
	opts   Options
}

// ParseFile parses one module. Items parsed before a syntax error are kept;
// the error itself is reported once and returned in Result.Err.
// ids is shared across files so node ids grow in file order.
func ParseFile(fs *source.FileSet, file source.FileID, arenas *ast.Builder, ids *Counter, opts Options) Result {
	p := Parser{arenas: arenas, strs: arenas.Strings, opts: opts}
	c := &cursor{
		src:  fs.Get(file).Content,
		file: file,
		ids:  ids,
	}
	arenas.Module(file)

	parsed, deferred, err := parseMany(c, 0, p.parseItem, nil)
	if err == nil {
		err = deferred
	}

	res := Result{File: file, Items: make([]ast.ItemID, 0, len(parsed))}
	for _, item := range parsed {
		id := p.allocate(file, item)
		arenas.PushItem(file, id)
		res.Items = append(res.Items, id)
	}
	if err != nil {
		res.Err = err
		if opts.Reporter != nil {
			err.Report(opts.Reporter)
		}
	}
	return res
}

func (p *Parser) allocate(file source.FileID, item parsedItem) ast.ItemID {
	switch item.kind {
	case ast.ItemImport:
		return p.arenas.Items.NewImport(file, item.span, item.imp)
	case ast.ItemVar:
		item.vr.Value = p.arenas.Exprs.New(item.value)
		return p.arenas.Items.NewVar(file, item.span, item.vr)
	case ast.ItemConst:
		item.cn.Value = p.arenas.Exprs.New(item.value)
		return p.arenas.Items.NewConst(file, item.span, item.cn)
	}
	panic("parser: unknown item kind")
}

// ParseExpr parses a single expression; used by tests and tooling.
func ParseExpr(src []byte, file source.FileID, strs *source.Interner, ids *Counter) (ast.Expr, *ParseError) {
	p := Parser{strs: strs}
	c := &cursor{src: src, file: file, ids: ids}
	return p.parseExpr(c)
}
