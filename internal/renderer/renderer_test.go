package renderer

import (
	"strings"
	"testing"
)

func render(t *testing.T, src string, vars map[string]interface{}) string {
	t.Helper()
	r := NewRenderer()
	out, err := r.Render(src, vars)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return out
}

func TestLiteralPassThrough(t *testing.T) {
	src := "# Heading\n\nPlain text with {braces} and a { single one."
	out := render(t, src, nil)
	if out != src {
		t.Errorf("expected literal text unchanged, got %q", out)
	}
}

func TestVariableSubstitution(t *testing.T) {
	tests := []struct {
		name string
		src  string
		vars map[string]interface{}
		want string
	}{
		{
			name: "string value",
			src:  "Hello {{project_name}}!",
			vars: map[string]interface{}{"project_name": "shoply"},
			want: "Hello shoply!",
		},
		{
			name: "missing value becomes empty string",
			src:  "before [{{nope}}] after",
			vars: map[string]interface{}{},
			want: "before [] after",
		},
		{
			name: "boolean value",
			src:  "flag={{enabled}}",
			vars: map[string]interface{}{"enabled": true},
			want: "flag=true",
		},
		{
			name: "sequence joins with comma-space",
			src:  "{{tech_stack}}",
			vars: map[string]interface{}{"tech_stack": []string{"next.js", "postgres"}},
			want: "next.js, postgres",
		},
		{
			name: "whitespace inside tag",
			src:  "{{  project_name  }}",
			vars: map[string]interface{}{"project_name": "shoply"},
			want: "shoply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.src, tt.vars)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEachWithLastSeparator(t *testing.T) {
	src := "{{#each detected_features}}{{this}}{{#unless @last}}, {{/unless}}{{/each}}"
	out := render(t, src, map[string]interface{}{
		"detected_features": []string{"auth", "payment"},
	})
	if out != "auth, payment" {
		t.Errorf("expected %q, got %q", "auth, payment", out)
	}
}

func TestEachSingleElementHasNoSeparator(t *testing.T) {
	src := "{{#each items}}{{this}}{{#unless @last}}, {{/unless}}{{/each}}"
	out := render(t, src, map[string]interface{}{"items": []string{"only"}})
	if out != "only" {
		t.Errorf("expected %q, got %q", "only", out)
	}
}

func TestEachMissingOrNonSequence(t *testing.T) {
	src := "[{{#each items}}x{{/each}}]"

	if out := render(t, src, map[string]interface{}{}); out != "[]" {
		t.Errorf("missing sequence: expected zero iterations, got %q", out)
	}
	if out := render(t, src, map[string]interface{}{"items": "not a list"}); out != "[]" {
		t.Errorf("non-sequence: expected zero iterations, got %q", out)
	}
}

func TestNestedEachScopes(t *testing.T) {
	src := "{{#each outer}}{{#each inner}}{{this}}{{#unless @last}}-{{/unless}}{{/each}};{{/each}}"
	out := render(t, src, map[string]interface{}{
		"outer": []string{"a", "b"},
		"inner": []string{"1", "2"},
	})
	if out != "1-2;1-2;" {
		t.Errorf("expected %q, got %q", "1-2;1-2;", out)
	}
}

func TestNamedLookupDoesNotInheritThis(t *testing.T) {
	// A plain name inside #each resolves against the root map, not the
	// element bound to this.
	src := "{{#each items}}{{label}}{{/each}}"
	out := render(t, src, map[string]interface{}{
		"items": []string{"x", "y"},
		"label": "L",
	})
	if out != "LL" {
		t.Errorf("expected %q, got %q", "LL", out)
	}
}

func TestIfBlock(t *testing.T) {
	src := "start{{#if has_payment_feature}} PAYMENT{{/if}} end"

	out := render(t, src, map[string]interface{}{"has_payment_feature": true})
	if !strings.Contains(out, "PAYMENT") {
		t.Errorf("expected block text present when flag true, got %q", out)
	}

	for _, vars := range []map[string]interface{}{
		{"has_payment_feature": false},
		{},
	} {
		out := render(t, src, vars)
		if strings.Contains(out, "PAYMENT") {
			t.Errorf("expected block text absent for vars %v, got %q", vars, out)
		}
	}
}

func TestIfTruthiness(t *testing.T) {
	src := "{{#if v}}yes{{/if}}"
	tests := []struct {
		value interface{}
		want  string
	}{
		{true, "yes"},
		{false, ""},
		{"text", "yes"},
		{"", ""},
		{[]string{"a"}, "yes"},
		{[]string{}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		out := render(t, src, map[string]interface{}{"v": tt.value})
		if out != tt.want {
			t.Errorf("value %#v: expected %q, got %q", tt.value, tt.want, out)
		}
	}
}

func TestUnlessBlock(t *testing.T) {
	src := "{{#unless ready}}not yet{{/unless}}"

	if out := render(t, src, map[string]interface{}{"ready": true}); out != "" {
		t.Errorf("expected empty output when cond true, got %q", out)
	}
	if out := render(t, src, map[string]interface{}{}); out != "not yet" {
		t.Errorf("expected body when cond missing, got %q", out)
	}
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed each", "{{#each items}}{{this}}"},
		{"unmatched close", "text {{/if}} more"},
		{"mismatched nesting", "{{#if a}}{{#each b}}{{/if}}{{/each}}"},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Render(tt.src, nil); err == nil {
				t.Errorf("expected structural error for %q", tt.src)
			}
		})
	}
}

func TestMalformedTagIsLiteral(t *testing.T) {
	src := "dangling {{open brace"
	out := render(t, src, nil)
	if out != src {
		t.Errorf("expected malformed tag passed through, got %q", out)
	}
}

func TestScanVariables(t *testing.T) {
	src := "{{project_name}} {{#each tech_stack}}{{this}}{{#unless @last}},{{/unless}}{{/each}} {{#if has_auth_feature}}{{project_name}}{{/if}}"
	got := ScanVariables(src)
	want := []string{"project_name", "tech_stack", "has_auth_feature"}
	if len(got) != len(want) {
		t.Fatalf("expected %d variables, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected variable %q at %d, got %q", want[i], i, got[i])
		}
	}
}
