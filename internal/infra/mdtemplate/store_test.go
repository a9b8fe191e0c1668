package mdtemplate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MistByteX/predictor/internal/domain"
)

const forecastTemplate = `---
description: 事件走势预测
system: 你是一名谨慎的分析师。
variables:
  - name: event
    description: 要预测的事件
    required: true
  - name: horizon
    default: 三个月
---

# 预测

事件：{event}
时间范围：{horizon}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestGet_ParsesFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "forecast.md"), forecastTemplate)

	tpl, err := NewStore(dir).Get("forecast")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	if tpl.Name != "forecast" {
		t.Fatalf("name=%q", tpl.Name)
	}
	if tpl.Description != "事件走势预测" {
		t.Fatalf("description=%q", tpl.Description)
	}
	if tpl.System != "你是一名谨慎的分析师。" {
		t.Fatalf("system=%q", tpl.System)
	}
	if len(tpl.Variables) != 2 || !tpl.Variables[0].Required {
		t.Fatalf("unexpected variables: %+v", tpl.Variables)
	}
	if got := tpl.Defaults()["horizon"]; got != "三个月" {
		t.Fatalf("default horizon=%q", got)
	}

	want := "# 预测\n\n事件：{event}\n时间范围：{horizon}\n"
	if tpl.Body != want {
		t.Fatalf("body mismatch:\nwant=%q\ngot=%q", want, tpl.Body)
	}
}

func TestGet_PlainMarkdownKeepsWholeBody(t *testing.T) {
	dir := t.TempDir()
	content := "# 标题\n\n---\n\n分隔线不是 front matter：{x}\n"
	writeFile(t, filepath.Join(dir, "plain.md"), content)

	tpl, err := NewStore(dir).Get("plain")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if tpl.Body != content {
		t.Fatalf("body mismatch: %q", tpl.Body)
	}
	if tpl.Description != "" || len(tpl.Variables) != 0 {
		t.Fatalf("expected no front matter, got %+v", tpl)
	}
}

func TestGet_UnterminatedFenceIsBody(t *testing.T) {
	dir := t.TempDir()
	content := "---\nnot closed\n"
	writeFile(t, filepath.Join(dir, "open.md"), content)

	tpl, err := NewStore(dir).Get("open")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if tpl.Body != content {
		t.Fatalf("body=%q", tpl.Body)
	}
}

func TestGet_ByPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "elsewhere", "custom.md")
	writeFile(t, p, "hello {who}")

	tpl, err := NewStore(t.TempDir()).Get(p)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if tpl.Name != "custom" || tpl.Body != "hello {who}" {
		t.Fatalf("unexpected template: %+v", tpl)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewStore(t.TempDir()).Get("missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestGet_InvalidFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.md"), "---\nvariables:\n  - description: no name\n---\nbody\n")

	_, err := NewStore(dir).Get("bad")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}

func TestList_SortedWithDescriptions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zeta.md"), "z")
	writeFile(t, filepath.Join(dir, "forecast.md"), forecastTemplate)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	if err := os.MkdirAll(filepath.Join(dir, "sub.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	refs, err := NewStore(dir).List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %+v", refs)
	}
	if refs[0].Name != "forecast" || refs[1].Name != "zeta" {
		t.Fatalf("unexpected order: %+v", refs)
	}
	if refs[0].Description != "事件走势预测" {
		t.Fatalf("description=%q", refs[0].Description)
	}
}

func TestList_MissingDir(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestCreate_WritesAndRefusesOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	s := NewStore(dir)

	path, err := s.Create("weekly", "本周：{topic}\n", false)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if path != filepath.Join(dir, "weekly.md") {
		t.Fatalf("path=%s", path)
	}

	if _, err := s.Create("weekly", "other", false); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got: %v", err)
	}

	if _, err := s.Create("weekly", "replaced {topic}", true); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	tpl, err := s.Get("weekly")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if tpl.Body != "replaced {topic}" {
		t.Fatalf("body=%q", tpl.Body)
	}
}

func TestCreate_RejectsBadNamesAndFrontMatter(t *testing.T) {
	s := NewStore(t.TempDir())

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		if _, err := s.Create(name, "x", false); !domain.IsKind(err, domain.KindValidation) {
			t.Fatalf("name %q: expected KindValidation, got: %v", name, err)
		}
	}

	if _, err := s.Create("broken", "---\ndescription: [unclosed\n---\nbody", false); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}
