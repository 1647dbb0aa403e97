// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/util/source"
	"github.com/consensys/go-algebra/pkg/util/source/lex"
)

// MaxDepth is the default bound on how deeply expressions may be nested.
const MaxDepth = 10000

// Parse a given string into an expression tree.  Any error returned is a
// *source.SyntaxError identifying the offending text.
func Parse(input string) (ast.Node, error) {
	node, err := ParseFile(source.NewSourceFile("expr", []byte(input)), MaxDepth)
	//
	if err != nil {
		return nil, err
	}
	//
	return node, nil
}

// MustParse parses a given string into an expression tree, and panics if this
// fails.  This is intended for fixed expressions known to be well-formed.
func MustParse(input string) ast.Node {
	node, err := Parse(input)
	//
	if err != nil {
		panic(fmt.Sprintf("invalid expression %q: %s", input, err.Error()))
	}
	//
	return node
}

// ParseFile parses the contents of a given source file into an expression
// tree, where expressions nested more deeply than a given bound are rejected.
func ParseFile(srcfile *source.File, maxDepth uint) (ast.Node, *source.SyntaxError) {
	lexer := lex.NewLexer(srcfile.Contents(), rules...).Discard(WHITESPACE)
	// Lex as many tokens as possible
	tokens := lexer.Collect()
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		return nil, srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
	}
	//
	parser := &Parser{srcfile, tokens, 0, 0, maxDepth}
	// Parse expression
	node, err := parser.parseExpr()
	// Check all parsed
	if err == nil && !parser.Done() {
		return nil, parser.syntaxError(parser.lookahead(), "unexpected token")
	} else if err != nil {
		return nil, err
	}
	//
	return node, nil
}

// Parser provides a recursive descent parser for arithmetic expressions.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Current nesting depth
	depth    uint
	maxDepth uint
}

// Done determines whether or not the parser has parsed all the available
// tokens.
func (p *Parser) Done() bool {
	return p.index+1 >= len(p.tokens)
}

func (p *Parser) parseExpr() (ast.Node, *source.SyntaxError) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	//
	defer p.leave()
	//
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() (ast.Node, *source.SyntaxError) {
	return p.parseLeftAssociative(ADDITIVE, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Node, *source.SyntaxError) {
	return p.parseLeftAssociative(MULTIPLICATIVE, p.parseImplicit)
}

// Parse a chain of left-associative binary operators drawn from a given set.
func (p *Parser) parseLeftAssociative(operators []uint, operand func() (ast.Node, *source.SyntaxError)) (
	ast.Node, *source.SyntaxError) {
	lhs, err := operand()
	//
	for err == nil && p.follows(operators...) {
		var (
			token = p.expect(p.lookahead().Kind)
			rhs   ast.Node
		)
		//
		if rhs, err = operand(); err == nil {
			lhs = ast.NewOperator(binaryFunctions[token.Kind], lhs, rhs)
		}
	}
	//
	return lhs, err
}

// Parse an implicit multiplication, such as "2 x" or "2 (x + 1)".
func (p *Parser) parseImplicit() (ast.Node, *source.SyntaxError) {
	lhs, err := p.parseUnary()
	//
	for err == nil && p.follows(IMPLICIT...) {
		var rhs ast.Node
		//
		if rhs, err = p.parseUnary(); err == nil {
			lhs = ast.NewImplicit(lhs, rhs)
		}
	}
	//
	return lhs, err
}

func (p *Parser) parseUnary() (ast.Node, *source.SyntaxError) {
	var fn string
	//
	if err := p.enter(); err != nil {
		return nil, err
	}
	//
	defer p.leave()
	//
	switch {
	case p.match(SUB):
		fn = "unaryMinus"
	case p.match(ADD):
		fn = "unaryPlus"
	default:
		return p.parsePow()
	}
	//
	arg, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	return ast.NewOperator(fn, arg), nil
}

// Parse an exponentiation, which is right associative and whose exponent may
// itself be negated (e.g. "x ^ -2").
func (p *Parser) parsePow() (ast.Node, *source.SyntaxError) {
	base, err := p.parsePostfix()
	//
	if err != nil || !p.match(POW) {
		return base, err
	}
	//
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	return ast.NewOperator("pow", base, exponent), nil
}

func (p *Parser) parsePostfix() (ast.Node, *source.SyntaxError) {
	node, err := p.parsePrimary()
	//
	for err == nil && p.follows(LSQUARE) {
		var dimensions []ast.Node
		//
		p.expect(LSQUARE)
		//
		if dimensions, err = p.parseList(RSQUARE); err == nil {
			node = ast.NewAccessor(node, dimensions...)
		}
	}
	//
	return node, err
}

func (p *Parser) parsePrimary() (ast.Node, *source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case NUMBER:
		return p.parseNumber()
	case STRING:
		p.expect(STRING)
		text := p.string(token)
		//
		return ast.NewConstant(ast.String(text[1 : len(text)-1])), nil
	case IDENTIFIER:
		return p.parseIdentifier()
	case LBRACE:
		return p.parseBracketed()
	case LSQUARE:
		p.expect(LSQUARE)
		//
		items, err := p.parseList(RSQUARE)
		if err != nil {
			return nil, err
		}
		//
		return ast.NewArray(items...), nil
	case LCURLY:
		return p.parseObject()
	case END_OF:
		return nil, p.syntaxError(token, "unexpected end of expression")
	}
	//
	return nil, p.syntaxError(token, "unknown expression")
}

func (p *Parser) parseNumber() (ast.Node, *source.SyntaxError) {
	var (
		token  = p.expect(NUMBER)
		text   = p.string(token)
		number big.Rat
	)
	//
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	//
	if _, ok := number.SetString(text); !ok {
		return nil, p.syntaxError(token, "invalid number")
	}
	//
	return ast.NewConstant(ast.NewRational(&number)), nil
}

func (p *Parser) parseIdentifier() (ast.Node, *source.SyntaxError) {
	var (
		token = p.expect(IDENTIFIER)
		name  = p.string(token)
	)
	//
	switch {
	case name == "true" || name == "false":
		return ast.NewConstant(ast.Boolean(name == "true")), nil
	case p.match(LBRACE):
		args, err := p.parseList(RBRACE)
		if err != nil {
			return nil, err
		}
		//
		return ast.NewFunction(name, args...), nil
	}
	//
	return ast.NewSymbol(name), nil
}

func (p *Parser) parseBracketed() (ast.Node, *source.SyntaxError) {
	p.expect(LBRACE)
	//
	node, err := p.parseExpr()
	//
	if err != nil {
		return nil, err
	} else if !p.match(RBRACE) {
		return nil, p.syntaxError(p.lookahead(), "expected ')'")
	}
	//
	return ast.NewParenthesis(node), nil
}

func (p *Parser) parseObject() (ast.Node, *source.SyntaxError) {
	var (
		keys   []string
		values []ast.Node
	)
	//
	p.expect(LCURLY)
	//
	for !p.match(RCURLY) {
		if len(keys) != 0 && !p.match(COMMA) {
			return nil, p.syntaxError(p.lookahead(), "expected ',' or '}'")
		}
		//
		token := p.lookahead()
		key := p.string(token)
		//
		switch token.Kind {
		case STRING:
			key = key[1 : len(key)-1]
		case IDENTIFIER:
		default:
			return nil, p.syntaxError(token, "expected property name")
		}
		//
		p.expect(token.Kind)
		//
		if slices.Contains(keys, key) {
			return nil, p.syntaxError(token, "duplicate property")
		} else if !p.match(COLON) {
			return nil, p.syntaxError(p.lookahead(), "expected ':'")
		}
		//
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		keys = append(keys, key)
		values = append(values, value)
	}
	//
	return ast.NewObject(keys, values), nil
}

// Parse a comma-separated list of zero or more expressions, terminated by a
// given token.  The opening token is assumed to have been consumed already.
func (p *Parser) parseList(terminator uint) ([]ast.Node, *source.SyntaxError) {
	var items []ast.Node
	//
	if p.match(terminator) {
		return items, nil
	}
	//
	for {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		items = append(items, item)
		//
		switch {
		case p.match(terminator):
			return items, nil
		case !p.match(COMMA):
			return nil, p.syntaxError(p.lookahead(), "expected ',' or closing bracket")
		}
	}
}

func (p *Parser) enter() *source.SyntaxError {
	p.depth++
	//
	if p.depth > p.maxDepth {
		return p.syntaxError(p.lookahead(), "expression nested too deeply")
	}
	//
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxError(token lex.Token, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(token.Span, msg)
}
