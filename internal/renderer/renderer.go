// Package renderer implements the minimal template language used by guidance
// templates: variable substitution, iteration with last-element detection,
// and conditional blocks, evaluated against a flat substitution map.
// Rendering is total with respect to the context: a missing variable becomes
// an empty string and a missing sequence iterates zero times. Only a
// structurally broken template fails.
package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// Renderer evaluates parsed templates against substitution maps
type Renderer struct{}

// NewRenderer creates a new renderer instance
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render parses and evaluates a template body in one call.
func (r *Renderer) Render(src string, vars map[string]interface{}) (string, error) {
	tmpl, err := Parse(src)
	if err != nil {
		return "", err
	}
	return r.Execute(tmpl, vars), nil
}

// Execute evaluates an already-parsed template. Evaluation never fails;
// every context lookup has a defined fallback.
func (r *Renderer) Execute(tmpl *Template, vars map[string]interface{}) string {
	var sb strings.Builder
	eval := &evaluator{vars: vars}
	eval.walk(&sb, tmpl.nodes)
	return sb.String()
}

// iterScope binds {{this}} and @last inside one #each iteration
type iterScope struct {
	this interface{}
	last bool
}

// evaluator walks the tree with a scope stack for nested iteration.
// Named lookups always resolve against the root substitution map; only
// "this" and "@last" read the scope stack.
type evaluator struct {
	vars   map[string]interface{}
	scopes []iterScope
}

func (e *evaluator) walk(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch node := n.(type) {
		case LiteralNode:
			sb.WriteString(node.Text)

		case VariableNode:
			sb.WriteString(stringify(e.resolve(node.Name)))

		case EachNode:
			items := sequence(e.resolve(node.Name))
			for i, item := range items {
				e.scopes = append(e.scopes, iterScope{this: item, last: i == len(items)-1})
				e.walk(sb, node.Body)
				e.scopes = e.scopes[:len(e.scopes)-1]
			}

		case IfNode:
			if truthy(e.resolve(node.Name)) {
				e.walk(sb, node.Body)
			}

		case UnlessNode:
			if !truthy(e.resolve(node.Name)) {
				e.walk(sb, node.Body)
			}
		}
	}
}

// resolve looks up a name, honoring the iteration scope for "this" and
// "@last". Unknown names resolve to nil.
func (e *evaluator) resolve(name string) interface{} {
	switch name {
	case "this":
		if len(e.scopes) > 0 {
			return e.scopes[len(e.scopes)-1].this
		}
		return nil
	case "@last":
		if len(e.scopes) > 0 {
			return e.scopes[len(e.scopes)-1].last
		}
		return nil
	default:
		return e.vars[name]
	}
}

// sequence coerces a value into an iterable slice; anything else iterates
// zero times.
func sequence(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items
	default:
		return nil
	}
}

// truthy reports whether a value enables an #if block
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// stringify converts a context value for substitution
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ScanVariables returns the distinct variable names referenced by a body,
// in first-reference order. Block arguments count as references; the
// iteration bindings "this" and "@last" do not.
func ScanVariables(src string) []string {
	seen := make(map[string]bool)
	var names []string

	record := func(name string) {
		if name == "" || name == "this" || name == "@last" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, tok := range scan(src) {
		switch tok.kind {
		case tokenVariable, tokenBlockOpen:
			record(tok.text)
		}
	}

	return names
}
