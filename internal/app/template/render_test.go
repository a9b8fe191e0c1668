package template

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MistByteX/predictor/internal/domain"
)

func TestRenderStringSingleVar(t *testing.T) {
	out, unresolved := RenderString("Hello {name}", map[string]string{"name": "Ada"})
	if out != "Hello Ada" {
		t.Fatalf("expected replaced string, got %q", out)
	}
	if len(unresolved) != 0 {
		t.Fatalf("expected nothing unresolved, got %v", unresolved)
	}
}

func TestRenderStringMultipleVars(t *testing.T) {
	out, _ := RenderString("{greet}, {name}! {greet}", map[string]string{
		"greet": "Hi",
		"name":  "Sam",
	})
	if out != "Hi, Sam! Hi" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringUnicodeNames(t *testing.T) {
	out, _ := RenderString("事件：{事件}", map[string]string{"事件": "发布会"})
	if out != "事件：发布会" {
		t.Fatalf("expected unicode placeholder replaced, got %q", out)
	}
}

func TestRenderStringMissingVarLeftVerbatim(t *testing.T) {
	out, unresolved := RenderString("Hello {name} and {name}, {other}", map[string]string{})
	if out != "Hello {name} and {name}, {other}" {
		t.Fatalf("expected verbatim output, got %q", out)
	}
	if !reflect.DeepEqual(unresolved, []string{"name", "other"}) {
		t.Fatalf("expected unresolved [name other], got %v", unresolved)
	}
}

func TestRenderStringIgnoresNonPlaceholders(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```\n{ spaced } {} {{x}} trailing {"
	out, unresolved := RenderString(in, map[string]string{"x": "X"})
	want := in
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
	if len(unresolved) != 0 {
		t.Fatalf("expected nothing unresolved, got %v", unresolved)
	}
}

func TestRenderStringDoubleBracesAreLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a {{x}} b {x}", "a {{x}} b V"},
		{"{{ x }} and {{x}}{x}", "{{ x }} and {{x}}V"},
		{"open {{x and {x}", "open {{x and V"},
	}
	for _, c := range cases {
		out, unresolved := RenderString(c.in, map[string]string{"x": "V"})
		if out != c.want {
			t.Errorf("RenderString(%q) = %q, want %q", c.in, out, c.want)
		}
		if len(unresolved) != 0 {
			t.Errorf("RenderString(%q) unresolved %v", c.in, unresolved)
		}
	}
	if got := Placeholders("{{skip}} {keep}"); !reflect.DeepEqual(got, []string{"keep"}) {
		t.Fatalf("Placeholders = %v", got)
	}
}

func TestRenderStringPreservesBytesOutsidePlaceholders(t *testing.T) {
	body := "# 预测：{event}\n\n> 时间范围：**{horizon}**\n\n- 背景：{context}\n\n```\ncode {not a var}\n```\n"
	vars := map[string]string{"event": "新品发布", "horizon": "三个月", "context": "竞品较多"}

	out, unresolved := RenderString(body, vars)
	if len(unresolved) != 0 {
		t.Fatalf("expected all placeholders resolved, got %v", unresolved)
	}

	// Substituting by plain string replacement of each exact placeholder must agree.
	want := body
	for k, v := range vars {
		want = strings.ReplaceAll(want, "{"+k+"}", v)
	}
	if out != want {
		t.Fatalf("expected byte-identical output outside spans:\n got %q\nwant %q", out, want)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{b} {a} {b} {c.d} {e-f}")
	if !reflect.DeepEqual(got, []string{"b", "a", "c.d", "e-f"}) {
		t.Fatalf("unexpected placeholders: %v", got)
	}
	if got := Placeholders(""); len(got) != 0 {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestFillTolerantLeavesUnknown(t *testing.T) {
	tpl := domain.Template{Name: "t", Body: "A {x} B {y}"}
	out, err := Fill(tpl, domain.Vars{"x": "1"}, "", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A 1 B {y}" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFillStrictRejectsUnknown(t *testing.T) {
	tpl := domain.Template{Name: "t", Path: "/tpl/t.md", Body: "A {x} B {y}"}
	_, err := Fill(tpl, domain.Vars{"x": "1"}, "", Options{Strict: true})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindTemplate) {
		t.Fatalf("expected template error, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnresolvedVars) {
		t.Fatalf("expected ErrUnresolvedVars in chain")
	}
	if !strings.Contains(err.Error(), "y") {
		t.Fatalf("expected unresolved name in message, got %v", err)
	}
}

func TestFillUsesDefaults(t *testing.T) {
	tpl := domain.Template{
		Name: "t",
		Body: "{event} within {horizon}",
		Variables: []domain.VariableSpec{
			{Name: "horizon", Default: "a year"},
		},
	}
	out, err := Fill(tpl, domain.Vars{"event": "launch"}, "", Options{Strict: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "launch within a year" {
		t.Fatalf("unexpected output %q", out)
	}

	out, _ = Fill(tpl, domain.Vars{"event": "launch", "horizon": "a week"}, "", Options{})
	if out != "launch within a week" {
		t.Fatalf("expected supplied value to override default, got %q", out)
	}
}

func TestFillAppendsDivination(t *testing.T) {
	tpl := domain.Template{Name: "t", Body: "Question: {q}\n"}
	out, err := Fill(tpl, domain.Vars{"q": "will it rain"}, "## 梅花易数\n- 主卦：乾\n", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Question: will it rain\n\n## 梅花易数\n- 主卦：乾\n"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}
