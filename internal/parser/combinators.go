package parser

import "gpex/internal/ast"

type parseFn[T any] func(c *cursor) (T, *ParseError)

// parseAny tries each alternative from the same starting state and returns
// the first success. When all fail, the furthest-reaching errors are merged.
func parseAny[T any](c *cursor, alternatives ...parseFn[T]) (T, *ParseError) {
	var (
		zero   T
		merged *ParseError
	)
	start := c.save()
	for _, alt := range alternatives {
		value, err := alt(c)
		if err == nil {
			return value, nil
		}
		c.restore(start)
		merged = merge(merged, err)
	}
	return zero, merged
}

// parseMany parses item (sep item)* until input ends or a parse fails.
// Fewer than minCount items is fatal (err). Otherwise the stopping error
// is handed back as deferred; callers surface it only when they cannot
// continue from the current position.
func parseMany[T any](c *cursor, minCount int, item parseFn[T], sep parseFn[struct{}]) (items []T, deferred, err *ParseError) {
	for index := 0; ; index++ {
		c.skipTrivia()
		if c.eof() && index >= minCount {
			return items, nil, nil
		}
		before := c.save()
		if index > 0 && sep != nil {
			if _, sepErr := sep(c); sepErr != nil {
				c.restore(before)
				return items, sepErr, nil
			}
		}
		value, itemErr := item(c)
		if itemErr != nil {
			c.restore(before)
			if index < minCount {
				return items, nil, itemErr
			}
			return items, itemErr, nil
		}
		items = append(items, value)
	}
}

// defineScope allocates a node id, pushes it as the innermost scope for
// the duration of f and pops it afterwards, even when f fails.
func defineScope[T any](c *cursor, f func(c *cursor, id ast.NodeID) (T, *ParseError)) (T, *ParseError) {
	id := c.ids.Next()
	c.scope = append(c.scope, id)
	defer func() { c.scope = c.scope[:len(c.scope)-1] }()
	return f(c, id)
}

// optional runs p and rewinds when it fails.
func optional[T any](c *cursor, p parseFn[T]) (T, bool) {
	start := c.save()
	value, err := p(c)
	if err != nil {
		c.restore(start)
		return value, false
	}
	return value, true
}
