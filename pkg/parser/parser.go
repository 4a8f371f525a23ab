// Package parser implements a Pratt (operator-precedence) parser that turns
// a JMESPath token stream into an ast.Node tree.
package parser

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/perbu/jmespath/pkg/ast"
	"github.com/perbu/jmespath/pkg/lexer"
)

// bindingPowers is the left-binding-power table driving the Pratt loop.
// Token kinds absent from this map default to 0 and act as expression
// terminators (they are never consumed by led).
var bindingPowers = map[lexer.TokenType]int{
	lexer.PIPE:     1,
	lexer.OR:       2,
	lexer.AND:      3,
	lexer.EQ:       5,
	lexer.NE:       5,
	lexer.LT:       5,
	lexer.LTE:      5,
	lexer.GT:       5,
	lexer.GTE:      5,
	lexer.FLATTEN:  9,
	lexer.STAR:     20,
	lexer.FILTER:   21,
	lexer.DOT:      40,
	lexer.LBRACKET: 55,
	lexer.LPAREN:   60,
}

func lbp(tt lexer.TokenType) int { return bindingPowers[tt] }

// Parser holds the full token stream for one parse and a cursor into it.
type Parser struct {
	expression string
	tokens     []lexer.Token
	idx        int
}

// Parse tokenizes and parses expr into an AST, or returns a *Error
// anchored to the offending offset. Lexical errors are returned as *Error
// too, carrying the lexer's message and offset.
func Parse(expr string) (ast.Node, error) {
	tokens, err := lexer.TokenizeAll(expr)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, &Error{Message: lexErr.Message, Offset: lexErr.Position.Offset, Expression: expr}
		}
		return nil, err
	}
	p := &Parser{expression: expr, tokens: tokens}
	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if p.current() != lexer.EOF {
		return nil, p.errorf("unexpected trailing token %s", p.currentToken())
	}
	return node, nil
}

func (p *Parser) current() lexer.TokenType   { return p.tokens[p.idx].Type }
func (p *Parser) currentToken() lexer.Token  { return p.tokens[p.idx] }
func (p *Parser) peekType(n int) lexer.TokenType {
	i := p.idx + n
	if i >= len(p.tokens) {
		return lexer.EOF
	}
	return p.tokens[i].Type
}
func (p *Parser) advance() { p.idx++ }

func (p *Parser) match(tt lexer.TokenType) (lexer.Token, error) {
	if p.current() != tt {
		return lexer.Token{}, p.errorf("expected %s, got %s", tt, p.current())
	}
	tok := p.currentToken()
	p.advance()
	return tok, nil
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return &Error{
		Message:    fmt.Sprintf(format, args...),
		Offset:     p.currentToken().Start.Offset,
		Expression: p.expression,
	}
}

func (p *Parser) parseExpression(rbp int) (ast.Node, error) {
	leftTok := p.currentToken()
	p.advance()
	left, err := p.nud(leftTok)
	if err != nil {
		return nil, err
	}
	for rbp < lbp(p.current()) {
		opTok := p.currentToken()
		p.advance()
		left, err = p.led(opTok, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// nud ("null denotation") parses tok as the start of a new expression, with
// no left-hand context.
func (p *Parser) nud(tok lexer.Token) (ast.Node, error) {
	off := tok.Start.Offset
	switch tok.Type {
	case lexer.IDENTIFIER:
		return &ast.Field{BaseNode: ast.BaseNode{Off: off}, Name: tok.Value}, nil
	case lexer.QUOTED_IDENT:
		if p.current() == lexer.LPAREN {
			return nil, p.errorf("a quoted identifier cannot be used as a function name")
		}
		return &ast.Field{BaseNode: ast.BaseNode{Off: off}, Name: tok.Value}, nil
	case lexer.STRING:
		return &ast.Literal{BaseNode: ast.BaseNode{Off: off}, Value: tok.Value}, nil
	case lexer.LITERAL:
		v, err := decodeLiteral(tok.Value)
		if err != nil {
			return nil, &Error{Message: "invalid JSON literal: " + err.Error(), Offset: off, Expression: p.expression}
		}
		return &ast.Literal{BaseNode: ast.BaseNode{Off: off}, Value: v}, nil
	case lexer.AT:
		return &ast.Identity{BaseNode: ast.BaseNode{Off: off}}, nil
	case lexer.NOT:
		expr, err := p.parseExpression(45)
		if err != nil {
			return nil, err
		}
		return &ast.Not{BaseNode: ast.BaseNode{Off: off}, Expr: expr}, nil
	case lexer.AMPERSAND:
		expr, err := p.parseExpression(lbp(lexer.PIPE))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionReference{BaseNode: ast.BaseNode{Off: off}, Expr: expr}, nil
	case lexer.LPAREN:
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.match(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LBRACE:
		return p.parseMultiSelectHash(off)
	case lexer.STAR:
		left := &ast.ObjectValues{BaseNode: ast.BaseNode{Off: off}, Expr: &ast.Identity{BaseNode: ast.BaseNode{Off: off}}}
		right, err := p.parseProjectionRHS(lbp(lexer.STAR))
		if err != nil {
			return nil, err
		}
		return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.FLATTEN:
		left := &ast.Flatten{BaseNode: ast.BaseNode{Off: off}, Expr: &ast.Identity{BaseNode: ast.BaseNode{Off: off}}}
		right, err := p.parseProjectionRHS(lbp(lexer.FLATTEN))
		if err != nil {
			return nil, err
		}
		return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.FILTER:
		return p.parseFilter(off, &ast.Identity{BaseNode: ast.BaseNode{Off: off}})
	case lexer.LBRACKET:
		switch p.current() {
		case lexer.NUMBER, lexer.COLON:
			right, err := p.parseIndexExpression()
			if err != nil {
				return nil, err
			}
			return p.projectIfSlice(off, &ast.Identity{BaseNode: ast.BaseNode{Off: off}}, right)
		case lexer.STAR:
			if p.peekType(1) == lexer.RBRACKET {
				p.advance() // consume '*'
				p.advance() // consume ']'
				right, err := p.parseProjectionRHS(lbp(lexer.STAR))
				if err != nil {
					return nil, err
				}
				return &ast.Projection{
					BaseNode: ast.BaseNode{Off: off},
					Left:     &ast.Identity{BaseNode: ast.BaseNode{Off: off}},
					Right:    right,
				}, nil
			}
			return p.parseMultiSelectList(off)
		default:
			return p.parseMultiSelectList(off)
		}
	case lexer.EOF:
		return nil, &Error{Message: "incomplete expression", Offset: off, Expression: p.expression}
	default:
		return nil, &Error{Message: "unexpected token " + tok.Type.String(), Offset: off, Expression: p.expression}
	}
}

// led ("left denotation") continues parsing given the already-parsed left
// node and the infix token that triggered this call.
func (p *Parser) led(tok lexer.Token, left ast.Node) (ast.Node, error) {
	off := tok.Start.Offset
	switch tok.Type {
	case lexer.DOT:
		if p.current() == lexer.STAR {
			p.advance()
			right, err := p.parseProjectionRHS(lbp(lexer.DOT))
			if err != nil {
				return nil, err
			}
			return &ast.Projection{
				BaseNode: ast.BaseNode{Off: off},
				Left:     &ast.ObjectValues{BaseNode: ast.BaseNode{Off: off}, Expr: left},
				Right:    right,
			}, nil
		}
		right, err := p.parseDotRHS(lbp(lexer.DOT))
		if err != nil {
			return nil, err
		}
		return &ast.Subexpr{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.PIPE:
		right, err := p.parseExpression(lbp(lexer.PIPE))
		if err != nil {
			return nil, err
		}
		return &ast.Pipe{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.OR:
		right, err := p.parseExpression(lbp(lexer.OR))
		if err != nil {
			return nil, err
		}
		return &ast.Or{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.AND:
		right, err := p.parseExpression(lbp(lexer.AND))
		if err != nil {
			return nil, err
		}
		return &ast.And{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
	case lexer.EQ, lexer.NE, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE:
		right, err := p.parseExpression(lbp(tok.Type))
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{BaseNode: ast.BaseNode{Off: off}, Op: compareOp(tok.Type), Left: left, Right: right}, nil
	case lexer.FLATTEN:
		flattened := &ast.Flatten{BaseNode: ast.BaseNode{Off: off}, Expr: left}
		right, err := p.parseProjectionRHS(lbp(lexer.FLATTEN))
		if err != nil {
			return nil, err
		}
		return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: flattened, Right: right}, nil
	case lexer.FILTER:
		return p.parseFilter(off, left)
	case lexer.LPAREN:
		field, ok := left.(*ast.Field)
		if !ok {
			return nil, &Error{Message: "function calls may only follow an identifier", Offset: off, Expression: p.expression}
		}
		var args []ast.Node
		for p.current() != lexer.RPAREN {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current() == lexer.COMMA {
				p.advance()
			}
		}
		if _, err := p.match(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.FunctionCall{BaseNode: ast.BaseNode{Off: field.Offset()}, Name: field.Name, Args: args}, nil
	case lexer.LBRACKET:
		switch p.current() {
		case lexer.NUMBER, lexer.COLON:
			right, err := p.parseIndexExpression()
			if err != nil {
				return nil, err
			}
			return p.projectIfSlice(off, left, right)
		case lexer.STAR:
			if _, err := p.match(lexer.STAR); err != nil {
				return nil, err
			}
			if _, err := p.match(lexer.RBRACKET); err != nil {
				return nil, err
			}
			right, err := p.parseProjectionRHS(lbp(lexer.STAR))
			if err != nil {
				return nil, err
			}
			return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}, nil
		default:
			return nil, &Error{Message: "expected number, ':', or '*' after '['", Offset: off, Expression: p.expression}
		}
	default:
		return nil, &Error{Message: "unexpected token " + tok.Type.String(), Offset: off, Expression: p.expression}
	}
}

func compareOp(tt lexer.TokenType) ast.CompareOp {
	switch tt {
	case lexer.EQ:
		return ast.CompareEQ
	case lexer.NE:
		return ast.CompareNE
	case lexer.LT:
		return ast.CompareLT
	case lexer.LTE:
		return ast.CompareLTE
	case lexer.GT:
		return ast.CompareGT
	default:
		return ast.CompareGTE
	}
}

// parseIndexExpression parses the content of a `[...]` once it is known to
// begin with a number or colon, i.e. an Index or a Slice.
func (p *Parser) parseIndexExpression() (ast.Node, error) {
	if p.current() == lexer.COLON || p.peekType(1) == lexer.COLON {
		return p.parseSliceExpression()
	}
	tok, err := p.match(lexer.NUMBER)
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.Atoi(tok.Value)
	if convErr != nil {
		return nil, &Error{Message: "invalid index", Offset: tok.Start.Offset, Expression: p.expression}
	}
	node := &ast.Index{BaseNode: ast.BaseNode{Off: tok.Start.Offset}, Value: n}
	if _, err := p.match(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseSliceExpression() (ast.Node, error) {
	off := p.currentToken().Start.Offset
	var parts [3]*int
	part := 0
	for p.current() != lexer.RBRACKET && part < 3 {
		switch p.current() {
		case lexer.COLON:
			part++
			p.advance()
		case lexer.NUMBER:
			tok := p.currentToken()
			n, err := strconv.Atoi(tok.Value)
			if err != nil {
				return nil, &Error{Message: "invalid slice bound", Offset: tok.Start.Offset, Expression: p.expression}
			}
			parts[part] = &n
			p.advance()
		default:
			return nil, p.errorf("expected ':' or a number inside a slice expression, got %s", p.current())
		}
	}
	if _, err := p.match(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.Slice{BaseNode: ast.BaseNode{Off: off}, Start: parts[0], Stop: parts[1], Step: parts[2]}, nil
}

// projectIfSlice wraps left/right in an Index subexpression, promoting it to
// a Projection when right turned out to be a Slice (slicing always projects).
func (p *Parser) projectIfSlice(off int, left, right ast.Node) (ast.Node, error) {
	indexExpr := &ast.Subexpr{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: right}
	if _, ok := right.(*ast.Slice); !ok {
		return indexExpr, nil
	}
	rhs, err := p.parseProjectionRHS(lbp(lexer.STAR))
	if err != nil {
		return nil, err
	}
	return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: indexExpr, Right: rhs}, nil
}

// parseFilter parses the `?cond]` tail of a `[?cond]` filter-projection,
// given the already-consumed `[?` and the node it applies to.
func (p *Parser) parseFilter(off int, left ast.Node) (ast.Node, error) {
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(lexer.RBRACKET); err != nil {
		return nil, err
	}
	var then ast.Node
	if p.current() == lexer.FLATTEN {
		then = &ast.Identity{BaseNode: ast.BaseNode{Off: off}}
	} else {
		then, err = p.parseProjectionRHS(lbp(lexer.FILTER))
		if err != nil {
			return nil, err
		}
	}
	condition := &ast.Condition{BaseNode: ast.BaseNode{Off: off}, Cond: cond, Then: then}
	return &ast.Projection{BaseNode: ast.BaseNode{Off: off}, Left: left, Right: condition}, nil
}

// parseDotRHS parses what follows a `.`: an identifier/quoted-identifier
// chain, a star (led's DOT case handles `left.*` itself; a star reaching
// here from a projection's RHS starts a nested object projection), a
// multi-select list, or a multi-select hash.
func (p *Parser) parseDotRHS(rbp int) (ast.Node, error) {
	switch p.current() {
	case lexer.IDENTIFIER, lexer.QUOTED_IDENT, lexer.STAR:
		return p.parseExpression(rbp)
	case lexer.LBRACKET:
		off := p.currentToken().Start.Offset
		p.advance()
		return p.parseMultiSelectList(off)
	case lexer.LBRACE:
		off := p.currentToken().Start.Offset
		p.advance()
		return p.parseMultiSelectHash(off)
	default:
		return nil, p.errorf("expected identifier, '[', or '{' after '.', got %s", p.current())
	}
}

// parseProjectionRHS parses the right-hand side of a projection-creating
// construct. Any token whose binding power is below the "projection stop"
// threshold (10) ends the projection's RHS with an implicit Identity,
// leaving that token for the enclosing parseExpression loop to consume.
func (p *Parser) parseProjectionRHS(rbp int) (ast.Node, error) {
	off := p.currentToken().Start.Offset
	switch {
	case lbp(p.current()) < 10:
		return &ast.Identity{BaseNode: ast.BaseNode{Off: off}}, nil
	case p.current() == lexer.LBRACKET, p.current() == lexer.FILTER:
		return p.parseExpression(rbp)
	case p.current() == lexer.DOT:
		p.advance()
		return p.parseDotRHS(rbp)
	default:
		return nil, p.errorf("unexpected token %s in projection", p.current())
	}
}

// parseMultiSelectList parses the `[expr, expr, ...]` form, having already
// consumed the opening '[' (off is its offset).
func (p *Parser) parseMultiSelectList(off int) (ast.Node, error) {
	var items []ast.Node
	for {
		item, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.current() == lexer.RBRACKET {
			break
		}
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if _, err := p.match(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.MultiList{BaseNode: ast.BaseNode{Off: off}, Items: items}, nil
}

// parseMultiSelectHash parses the `{key: expr, ...}` form, having already
// consumed the opening '{' (off is its offset).
func (p *Parser) parseMultiSelectHash(off int) (ast.Node, error) {
	seen := make(map[string]bool)
	var pairs []ast.MultiHashPair
	for {
		var keyTok lexer.Token
		var err error
		switch p.current() {
		case lexer.IDENTIFIER, lexer.QUOTED_IDENT:
			keyTok = p.currentToken()
			p.advance()
		default:
			return nil, p.errorf("expected a key name in multi-select hash, got %s", p.current())
		}
		if seen[keyTok.Value] {
			return nil, &Error{Message: "duplicate key \"" + keyTok.Value + "\" in multi-select hash", Offset: keyTok.Start.Offset, Expression: p.expression}
		}
		seen[keyTok.Value] = true
		if _, err = p.match(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.MultiHashPair{Key: keyTok.Value, Value: value})
		switch p.current() {
		case lexer.COMMA:
			p.advance()
		case lexer.RBRACE:
			p.advance()
			return &ast.MultiHash{BaseNode: ast.BaseNode{Off: off}, Pairs: pairs}, nil
		default:
			return nil, p.errorf("expected ',' or '}' in multi-select hash, got %s", p.current())
		}
	}
}

func decodeLiteral(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
