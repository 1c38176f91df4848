package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avrtools/megasim/pkg/token"
)

// cursor walks a token slice. Unlike a plain index, it understands the
// handful of lookahead/skip operations the grammar needs.
type cursor struct {
	toks []token.Token
	pos  int
}

func (c *cursor) end() bool {
	return c.pos >= len(c.toks)
}

func (c *cursor) current() token.Token {
	if c.end() {
		return token.Token{Kind: token.EndOfLine}
	}
	return c.toks[c.pos]
}

func (c *cursor) peek(n int) (token.Token, bool) {
	i := c.pos + n
	if i >= len(c.toks) {
		return token.Token{}, false
	}
	return c.toks[i], true
}

func (c *cursor) advance() {
	if !c.end() {
		c.pos++
	}
}

// skipWhile advances past any run of tokens whose Kind is in kinds.
func (c *cursor) skipWhile(kinds ...token.Kind) {
	for !c.end() && kindIn(c.current().Kind, kinds) {
		c.advance()
	}
}

// skipUntil advances until a token whose Kind is in kinds, or end of input.
func (c *cursor) skipUntil(kinds ...token.Kind) {
	for !c.end() && !kindIn(c.current().Kind, kinds) {
		c.advance()
	}
}

func kindIn(k token.Kind, kinds []token.Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// Parse builds the statement list for a token stream, prepended with an
// implicit Cseg directive (spec §4.2).
func Parse(toks []token.Token) []Statement {
	stmts := []Statement{DirectiveStatement{Directive{Kind: DirCseg}}}

	c := &cursor{toks: toks}
	for !c.end() {
		if c.current().Kind == token.Space || c.current().Kind == token.EndOfLine {
			c.advance()
			continue
		}

		stmts = append(stmts, parseLine(c)...)

		if !c.end() && c.current().Kind != token.EndOfLine {
			panic(fmt.Sprintf("failed to parse full line, current token: %v", c.current().Kind))
		}
	}

	return stmts
}

func parseLine(c *cursor) []Statement {
	var stmts []Statement

	if c.current().Kind == token.Dot {
		if next, ok := c.peek(1); ok && next.Kind == token.Word {
			stmts = append(stmts, parseDirective(c))
		}
	}

	if c.current().Kind == token.Word {
		if next, ok := c.peek(1); ok && (next.Kind == token.Space || next.Kind == token.EndOfLine) {
			stmts = append(stmts, parseInstruction(c))
		}
	}

	if c.current().Kind == token.Word {
		if next, ok := c.peek(1); ok && next.Kind == token.Colon {
			stmts = append(stmts, parseLabel(c))
		}
	}

	// Discard whatever is left on the line — this swallows ';' comments.
	c.skipUntil(token.EndOfLine)

	return stmts
}

var fillerTokens = []token.Kind{token.Space, token.Equals}

func parseDirective(c *cursor) Statement {
	c.advance() // consume '.'
	name := c.current().Text
	c.advance()

	switch name {
	case "equ":
		c.skipWhile(fillerTokens...)
		symName := c.current().Text
		c.advance()
		c.skipWhile(fillerTokens...)
		expr := parseExpression(c)
		return DirectiveStatement{Directive{Kind: DirEqu, Name: symName, Expr: expr}}

	case "def":
		c.skipWhile(fillerTokens...)
		symName := c.current().Text
		c.advance()
		c.skipWhile(fillerTokens...)
		reg := c.current().Text
		c.advance()
		return DirectiveStatement{Directive{Kind: DirDef, Name: symName, Register: reg}}

	case "org":
		c.skipWhile(fillerTokens...)
		expr := parseExpression(c)
		return DirectiveStatement{Directive{Kind: DirOrg, Expr: expr}}

	case "cseg":
		return DirectiveStatement{Directive{Kind: DirCseg}}
	case "dseg":
		return DirectiveStatement{Directive{Kind: DirDseg}}
	case "eseg":
		return DirectiveStatement{Directive{Kind: DirEseg}}

	default:
		panic(fmt.Sprintf("unknown directive: .%s", name))
	}
}

func parseInstruction(c *cursor) Statement {
	mnemonic := c.current().Text
	c.advance()

	var operands []Expression
	for {
		c.skipWhile(token.Space)
		if c.end() || c.current().Kind == token.EndOfLine || c.current().Kind == token.Semicolon {
			break
		}

		operands = append(operands, parseExpression(c))
		c.skipWhile(token.Space)

		if !c.end() && c.current().Kind == token.Comma {
			c.advance()
		} else {
			break
		}
	}

	return Instruction{Mnemonic: mnemonic, Operands: operands}
}

func parseLabel(c *cursor) Statement {
	name := c.current().Text
	c.advance() // word
	c.advance() // colon
	return Label{Name: name}
}

var decimalInt = func(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseExpression(c *cursor) Expression {
	c.skipWhile(token.Space)

	var expr Expression

	switch c.current().Kind {
	case token.LeftParen:
		c.advance()
		inner := parseExpression(c)
		c.skipWhile(token.Space)
		if c.current().Kind != token.RightParen {
			panic(fmt.Sprintf("expected ')', found %v", c.current().Kind))
		}
		c.advance()
		expr = inner

	case token.Word:
		val := c.current().Text
		c.advance()

		switch {
		case val == "high" || val == "low":
			fn := High
			if val == "low" {
				fn = Low
			}
			c.skipWhile(token.Space)
			if c.current().Kind != token.LeftParen {
				panic(fmt.Sprintf("assembler function %s expects '('", val))
			}
			c.advance()
			arg := parseExpression(c)
			c.skipWhile(token.Space)
			if c.current().Kind != token.RightParen {
				panic(fmt.Sprintf("assembler function %s expects ')'", val))
			}
			c.advance()
			expr = FunctionCall{Fn: fn, Arg: arg}

		case strings.HasPrefix(val, "0x"):
			n, err := strconv.ParseInt(val[2:], 16, 64)
			if err != nil {
				n = 0
			}
			expr = Integer(n)

		default:
			if n, ok := decimalInt(val); ok {
				expr = Integer(n)
			} else {
				expr = Identifier(val)
			}
		}

	default:
		panic(fmt.Sprintf("unexpected token in expression: %v", c.current().Kind))
	}

	c.skipWhile(token.Space)
	if !c.end() && c.current().Kind == token.Less {
		if next, ok := c.peek(1); ok && next.Kind == token.Less {
			c.advance()
			c.advance()
			right := parseExpression(c)
			expr = BinaryOp{Op: ShiftLeft, Left: expr, Right: right}
		}
	}

	return expr
}
