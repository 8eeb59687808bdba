package renderer

import (
	"fmt"
	"strings"

	"github.com/appforge/appforge/internal/errors"
)

// The template grammar:
//
//	{{name}}                     variable substitution
//	{{#each name}} ... {{/each}} iteration, with {{this}} and @last bound
//	{{#if name}} ... {{/if}}     conditional
//	{{#unless name}}...{{/unless}} inverted conditional
//
// Parsing is two passes: a left-to-right scan into a flat token stream, then
// a stack-based pass matching block open/close tags into a tree. Unmatched
// tags are a structural error; a template never renders partially.

const (
	tagOpen  = "{{"
	tagClose = "}}"
)

// tokenKind classifies a scanned token
type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVariable
	tokenBlockOpen  // #each, #if, #unless
	tokenBlockClose // /each, /if, /unless
)

// blockKind identifies which directive a block token belongs to
type blockKind string

const (
	blockEach   blockKind = "each"
	blockIf     blockKind = "if"
	blockUnless blockKind = "unless"
)

type token struct {
	kind  tokenKind
	text  string    // literal text or variable/argument name
	block blockKind // set for block open/close tokens
}

// Node is one element of the parsed template tree.
type Node interface{ node() }

// LiteralNode is raw text passed through unchanged.
type LiteralNode struct {
	Text string
}

// VariableNode substitutes a context value, or empty string when missing.
type VariableNode struct {
	Name string
}

// EachNode runs its body once per element of a sequence value.
type EachNode struct {
	Name string
	Body []Node
}

// IfNode renders its body only when the named value is truthy.
type IfNode struct {
	Name string
	Body []Node
}

// UnlessNode renders its body only when the named value is falsy.
type UnlessNode struct {
	Name string
	Body []Node
}

func (LiteralNode) node()  {}
func (VariableNode) node() {}
func (EachNode) node()     {}
func (IfNode) node()       {}
func (UnlessNode) node()   {}

// Template is a parsed, reusable template body.
type Template struct {
	nodes []Node
}

// Parse scans and parses a template body into a tree. It returns a
// structural error for unmatched or misnested block directives.
func Parse(src string) (*Template, error) {
	tokens := scan(src)
	nodes, err := buildTree(tokens)
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes}, nil
}

// scan splits the source into a flat token stream in one pass. Malformed
// tags (no closing braces) are treated as literal text.
func scan(src string) []token {
	var tokens []token

	for len(src) > 0 {
		open := strings.Index(src, tagOpen)
		if open < 0 {
			tokens = append(tokens, token{kind: tokenText, text: src})
			break
		}
		end := strings.Index(src[open:], tagClose)
		if end < 0 {
			tokens = append(tokens, token{kind: tokenText, text: src})
			break
		}

		if open > 0 {
			tokens = append(tokens, token{kind: tokenText, text: src[:open]})
		}

		inner := strings.TrimSpace(src[open+len(tagOpen) : open+end])
		tokens = append(tokens, classify(inner))
		src = src[open+end+len(tagClose):]
	}

	return tokens
}

// classify turns the inside of a {{...}} tag into a token.
func classify(inner string) token {
	switch {
	case strings.HasPrefix(inner, "#each"):
		return token{kind: tokenBlockOpen, block: blockEach, text: argOf(inner, "#each")}
	case strings.HasPrefix(inner, "#if"):
		return token{kind: tokenBlockOpen, block: blockIf, text: argOf(inner, "#if")}
	case strings.HasPrefix(inner, "#unless"):
		return token{kind: tokenBlockOpen, block: blockUnless, text: argOf(inner, "#unless")}
	case inner == "/each":
		return token{kind: tokenBlockClose, block: blockEach}
	case inner == "/if":
		return token{kind: tokenBlockClose, block: blockIf}
	case inner == "/unless":
		return token{kind: tokenBlockClose, block: blockUnless}
	default:
		return token{kind: tokenVariable, text: inner}
	}
}

func argOf(inner, directive string) string {
	return strings.TrimSpace(strings.TrimPrefix(inner, directive))
}

// frame is one open block on the parse stack
type frame struct {
	block blockKind
	name  string
	nodes []Node
}

// buildTree matches block open/close tokens into a tree using an explicit
// stack. The bottom frame collects top-level nodes.
func buildTree(tokens []token) ([]Node, error) {
	stack := []*frame{{}}

	top := func() *frame { return stack[len(stack)-1] }

	for _, tok := range tokens {
		switch tok.kind {
		case tokenText:
			top().nodes = append(top().nodes, LiteralNode{Text: tok.text})

		case tokenVariable:
			top().nodes = append(top().nodes, VariableNode{Name: tok.text})

		case tokenBlockOpen:
			stack = append(stack, &frame{block: tok.block, name: tok.text})

		case tokenBlockClose:
			if len(stack) == 1 {
				return nil, errors.TemplateStructureError(
					fmt.Sprintf("unmatched closing tag {{/%s}}", tok.block))
			}
			closed := top()
			if closed.block != tok.block {
				return nil, errors.TemplateStructureError(
					fmt.Sprintf("mismatched block: {{#%s %s}} closed by {{/%s}}",
						closed.block, closed.name, tok.block))
			}
			stack = stack[:len(stack)-1]
			top().nodes = append(top().nodes, closeBlock(closed))
		}
	}

	if len(stack) > 1 {
		open := top()
		return nil, errors.TemplateStructureError(
			fmt.Sprintf("unclosed block {{#%s %s}}", open.block, open.name))
	}

	return stack[0].nodes, nil
}

func closeBlock(f *frame) Node {
	switch f.block {
	case blockEach:
		return EachNode{Name: f.name, Body: f.nodes}
	case blockIf:
		return IfNode{Name: f.name, Body: f.nodes}
	default:
		return UnlessNode{Name: f.name, Body: f.nodes}
	}
}
