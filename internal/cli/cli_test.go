package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MistByteX/predictor/internal/divination"
	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/config"
	"github.com/MistByteX/predictor/internal/ui/tui"
)

// --- harness ---

func newTestOptions(t *testing.T) *rootOptions {
	t.Helper()
	o := newRootOptions()
	o.getenv = func(string) string { return "" }
	o.now = func() time.Time { return time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC) }
	o.interactive = func() bool { return false }
	o.prompt = func(context.Context, string, io.Reader, io.Writer) (string, error) {
		t.Fatalf("unexpected API key prompt")
		return "", nil
	}
	return o
}

func run(t *testing.T, o *rootOptions, home string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(o)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--home", home}, args...))

	err := cmd.ExecuteContext(context.Background())
	o.close()
	return stdout.String(), stderr.String(), err
}

type chatBody struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type fakeGLM struct {
	mu    sync.Mutex
	calls []chatBody
	srv   *httptest.Server
}

func newFakeGLM(t *testing.T, reply string) *fakeGLM {
	t.Helper()
	f := &fakeGLM{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatBody
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.calls = append(f.calls, body)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGLM) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGLM) lastUserMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	msgs := f.calls[len(f.calls)-1].Messages
	return msgs[len(msgs)-1].Content
}

// initHome creates a home pointing at the fake GLM server.
func initHome(t *testing.T, glm *fakeGLM) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	args := []string{"init", "--api-key", "test-key-1234", "--no-input"}
	if glm != nil {
		args = append(args, "--base-url", glm.srv.URL)
	}
	if _, _, err := run(t, newTestOptions(t), home, args...); err != nil {
		t.Fatalf("init: %v", err)
	}
	return home
}

// --- helpers ---

func TestParseVars(t *testing.T) {
	vars, err := parseVars(`{"event":"下雨","days":3,"ok":true,"tags":["a","b"],"none":null}`)
	if err != nil {
		t.Fatalf("parseVars: %v", err)
	}
	want := domain.Vars{"event": "下雨", "days": "3", "ok": "true", "tags": `["a","b"]`, "none": ""}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("vars[%q] = %q, want %q", k, vars[k], v)
		}
	}

	if vars, err := parseVars("  "); err != nil || len(vars) != 0 {
		t.Fatalf("blank input: vars=%v err=%v", vars, err)
	}

	for _, bad := range []string{`{bad`, `[1,2]`, `{"a":"b"} {"c":"d"}`, `"text"`} {
		_, err := parseVars(bad)
		if !domain.IsKind(err, domain.KindValidation) {
			t.Fatalf("parseVars(%q): expected validation error, got %v", bad, err)
		}
		if !strings.Contains(err.Error(), bad) {
			t.Fatalf("error should quote the input %q: %v", bad, err)
		}
	}
}

func TestDivinationQuestion(t *testing.T) {
	if got := divinationQuestion("general", nil); got != "general" {
		t.Fatalf("got %q", got)
	}
	got := divinationQuestion("general", domain.Vars{"timeframe": "下周", "event": "降温", "blank": " "})
	if got != "降温 下周" {
		t.Fatalf("got %q", got)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, ok := range []string{"", "pretty", "json"} {
		if err := checkFormat(ok); err != nil {
			t.Errorf("checkFormat(%q): %v", ok, err)
		}
	}
	if err := checkFormat("yaml"); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// --- yi / algo / version (no network) ---

func TestYi_ManualJSONMatchesEngine(t *testing.T) {
	home := t.TempDir()
	out, _, err := run(t, newTestOptions(t), home, "yi", "明天会下雨吗", "-m", "manual", "-d", "1,2,3", "--format", "json")
	if err != nil {
		t.Fatalf("yi: %v", err)
	}

	var got readingJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}

	want := divination.Compute(divination.Seed{1, 2, 3})
	if got.Primary.Number != want.Primary.Number || got.Transformed.Number != want.Transformed.Number {
		t.Fatalf("hexagrams: got %d→%d, want %d→%d", got.Primary.Number, got.Transformed.Number, want.Primary.Number, want.Transformed.Number)
	}
	if got.ChangingLine != want.ChangingLine || got.Seed != [3]int{1, 2, 3} {
		t.Fatalf("unexpected line/seed: %+v", got)
	}
	if got.Method != "manual" || got.Question != "明天会下雨吗" {
		t.Fatalf("unexpected provenance: %+v", got)
	}
}

func TestYi_TimeMethodUsesAtFlagAndPrettyOutput(t *testing.T) {
	home := t.TempDir()
	out, _, err := run(t, newTestOptions(t), home, "yi", "事业", "--at", "2024-03-15T14:00:00+08:00")
	if err != nil {
		t.Fatalf("yi: %v", err)
	}
	for _, want := range []string{"主卦", "变卦", "梅花易数", "2024-03-15 14时"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestYi_InvalidInput(t *testing.T) {
	home := t.TempDir()
	cases := [][]string{
		{"yi", "q", "-m", "manual"},
		{"yi", "q", "-m", "manual", "-d", "1,x"},
		{"yi", "q", "-m", "direction", "--direction", "上"},
		{"yi", "q", "-m", "random"},
		{"yi", "q", "--at", "yesterday"},
		{"yi", "q", "--format", "xml"},
	}
	for _, args := range cases {
		_, _, err := run(t, newTestOptions(t), home, args...)
		if !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
}

func TestAlgo(t *testing.T) {
	home := t.TempDir()

	out, _, err := run(t, newTestOptions(t), home, "algo", "-d", "10,12,14,16,18", "-a", "linear", "-s", "3", "--format", "json")
	if err != nil {
		t.Fatalf("algo linear: %v", err)
	}
	var fc forecastJSON
	if err := json.Unmarshal([]byte(out), &fc); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if fc.Algorithm != "linear" || len(fc.Predictions) != 3 {
		t.Fatalf("unexpected forecast: %+v", fc)
	}
	for i, want := range []float64{20, 22, 24} {
		if d := fc.Predictions[i] - want; d > 1e-9 || d < -1e-9 {
			t.Fatalf("prediction[%d] = %v, want %v", i, fc.Predictions[i], want)
		}
	}

	out, _, err = run(t, newTestOptions(t), home, "algo", "-d", "10,12,14,16,18", "-a", "trend")
	if err != nil {
		t.Fatalf("algo trend: %v", err)
	}
	if !strings.Contains(out, "上涨") {
		t.Fatalf("expected upward trend:\n%s", out)
	}

	out, _, err = run(t, newTestOptions(t), home, "algo", "-d", "10,12,14,16,18")
	if err != nil {
		t.Fatalf("algo ensemble: %v", err)
	}
	if !strings.Contains(out, "ensemble") {
		t.Fatalf("expected ensemble output:\n%s", out)
	}

	for _, args := range [][]string{
		{"algo", "-d", "1,2,x"},
		{"algo", "-d", "1,2,3", "-a", "poly"},
		{"algo", "-d", "1,2,3", "-s", "0", "-a", "ma"},
		{"algo", "-d", "1,2", "-a", "ensemble"},
	} {
		if _, _, err := run(t, newTestOptions(t), home, args...); !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, newTestOptions(t), t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "predictor ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestDebugShowsLogFile(t *testing.T) {
	home := t.TempDir()
	want := filepath.Join(home, "logs", "predictor.log")

	_, stderr, err := run(t, newTestOptions(t), home, "--debug", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stderr, "log file: "+want) {
		t.Fatalf("expected log path on stderr, got:\n%s", stderr)
	}

	_, stderr, err = run(t, newTestOptions(t), home, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.Contains(stderr, "log file:") {
		t.Fatalf("log path shown without --debug:\n%s", stderr)
	}
}

// --- init / config ---

func TestInit_CreatesHomeAndConfigShowMasksKey(t *testing.T) {
	home := initHome(t, nil)

	for _, p := range []string{"config.json", "agents.yaml", ".gitignore", "templates/ask.md", "templates/general.md"} {
		if _, err := os.Stat(filepath.Join(home, p)); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}

	out, _, err := run(t, newTestOptions(t), home, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	var shown map[string]string
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if shown["api_key"] != "********1234" {
		t.Fatalf("api_key not masked: %q", shown["api_key"])
	}
	if shown["model"] != domain.DefaultModel {
		t.Fatalf("model = %q", shown["model"])
	}
}

func TestInit_PromptsForKeyOnTerminal(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")

	o := newTestOptions(t)
	o.interactive = func() bool { return true }
	prompted := false
	o.prompt = func(_ context.Context, h string, _ io.Reader, _ io.Writer) (string, error) {
		prompted = true
		if h != home {
			t.Errorf("prompt home = %q, want %q", h, home)
		}
		return "prompted-key-9999", nil
	}

	if _, _, err := run(t, o, home, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !prompted {
		t.Fatalf("expected the key prompt")
	}

	cfg, err := config.Load(filepath.Join(home, config.FileName))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIKey != "prompted-key-9999" {
		t.Fatalf("api key = %q", cfg.APIKey)
	}
}

func TestInit_SkippedPromptWarns(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")

	o := newTestOptions(t)
	o.interactive = func() bool { return true }
	o.prompt = func(context.Context, string, io.Reader, io.Writer) (string, error) {
		return "", tui.ErrPromptCancelled
	}

	_, stderr, err := run(t, o, home, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stderr, "no API key configured") {
		t.Fatalf("expected a warning, got %q", stderr)
	}
}

func TestConfigSet(t *testing.T) {
	home := initHome(t, nil)

	if _, _, err := run(t, newTestOptions(t), home, "config", "set", "model", "glm-4-plus"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err := run(t, newTestOptions(t), home, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "glm-4-plus") {
		t.Fatalf("model not updated:\n%s", out)
	}

	out, _, err = run(t, newTestOptions(t), home, "config", "set", "api_key", "new-secret-abcd")
	if err != nil {
		t.Fatalf("set api_key: %v", err)
	}
	if strings.Contains(out, "new-secret") || !strings.Contains(out, "abcd") {
		t.Fatalf("api key should be echoed masked: %q", out)
	}

	for _, args := range [][]string{
		{"config", "set", "colour", "blue"},
		{"config", "set", "temperature", "hot"},
	} {
		if _, _, err := run(t, newTestOptions(t), home, args...); !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
	if _, _, err := run(t, newTestOptions(t), home, "config", "set", "temperature", "3"); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config for out-of-range temperature, got %v", err)
	}
}

// --- ask / predict / history ---

func TestAsk_WithDivinationStoresHistory(t *testing.T) {
	glm := newFakeGLM(t, "明天大概率下雨")
	home := initHome(t, glm)

	out, _, err := run(t, newTestOptions(t), home, "ask", "明天会下雨吗", "-m", "--method", "text", "--format", "json")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	var rec domain.PredictionRecord
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if rec.ID == "" || rec.Kind != domain.KindAsk || rec.Template != "ask" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.FirstAnswer() != "明天大概率下雨" {
		t.Fatalf("answer = %q", rec.FirstAnswer())
	}
	if rec.Divination == nil || rec.Divination.Method != "text" {
		t.Fatalf("expected text divination, got %+v", rec.Divination)
	}

	sent := glm.lastUserMessage()
	if !strings.Contains(sent, "明天会下雨吗") || !strings.Contains(sent, "梅花易数") {
		t.Fatalf("prompt missing question or divination:\n%s", sent)
	}

	out, _, err = run(t, newTestOptions(t), home, "history", "--format", "json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var recs []domain.PredictionRecord
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID {
		t.Fatalf("unexpected history: %+v", recs)
	}

	out, _, err = run(t, newTestOptions(t), home, "history", "show", rec.ID[:8])
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	if !strings.Contains(out, "Prompt:") || !strings.Contains(out, "明天大概率下雨") {
		t.Fatalf("unexpected detail view:\n%s", out)
	}

	out, _, err = run(t, newTestOptions(t), home, "history")
	if err != nil {
		t.Fatalf("history pretty: %v", err)
	}
	if !strings.Contains(out, rec.ID[:8]) {
		t.Fatalf("history table missing record:\n%s", out)
	}
}

func TestAsk_MissingAPIKeySendsNothing(t *testing.T) {
	glm := newFakeGLM(t, "unused")
	home := filepath.Join(t.TempDir(), "home")
	if _, _, err := run(t, newTestOptions(t), home, "init", "--no-input", "--base-url", glm.srv.URL); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, _, err := run(t, newTestOptions(t), home, "ask", "hello")
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Fatalf("expected missing key error, got %v", err)
	}
	if glm.count() != 0 {
		t.Fatalf("nothing should be sent, got %d calls", glm.count())
	}

	// The flag supplies a key for one invocation.
	if _, _, err := run(t, newTestOptions(t), home, "--api-key", "flag-key", "ask", "hello"); err != nil {
		t.Fatalf("ask with --api-key: %v", err)
	}
	if glm.count() != 1 {
		t.Fatalf("expected one call, got %d", glm.count())
	}
}

func TestPredict_MalformedVarsSendsNothing(t *testing.T) {
	glm := newFakeGLM(t, "unused")
	home := initHome(t, glm)

	_, _, err := run(t, newTestOptions(t), home, "predict", "general", "-v", "{bad")
	if !domain.IsKind(err, domain.KindValidation) || !strings.Contains(err.Error(), "{bad") {
		t.Fatalf("expected validation error quoting input, got %v", err)
	}
	if glm.count() != 0 {
		t.Fatalf("nothing should be sent, got %d calls", glm.count())
	}
}

func TestPredict_FillsTemplateWithDefaults(t *testing.T) {
	glm := newFakeGLM(t, "概率 70%")
	home := initHome(t, glm)

	out, _, err := run(t, newTestOptions(t), home, "predict", "general", "-v", `{"event":"周末降温"}`, "--system", "你是气象专家")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, "概率 70%") {
		t.Fatalf("answer not printed:\n%s", out)
	}

	sent := glm.lastUserMessage()
	if !strings.Contains(sent, "事件：周末降温") || !strings.Contains(sent, "时间范围：未来一个月") {
		t.Fatalf("template not filled:\n%s", sent)
	}

	glm.mu.Lock()
	msgs := glm.calls[0].Messages
	glm.mu.Unlock()
	if msgs[0].Role != "system" || msgs[0].Content != "你是气象专家" {
		t.Fatalf("system override not sent: %+v", msgs)
	}
}

func TestPredict_StrictRejectsUnresolved(t *testing.T) {
	glm := newFakeGLM(t, "unused")
	home := initHome(t, glm)

	tpl := filepath.Join(t.TempDir(), "raw.md")
	if err := os.WriteFile(tpl, []byte("预测 {target} 在 {when} 的表现"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, newTestOptions(t), home, "create-template", "raw", "-f", tpl); err != nil {
		t.Fatalf("create-template: %v", err)
	}

	_, _, err := run(t, newTestOptions(t), home, "predict", "raw", "-v", `{"target":"AAPL"}`, "--strict")
	if !domain.IsKind(err, domain.KindTemplate) || !errors.Is(err, domain.ErrUnresolvedVars) {
		t.Fatalf("expected template error, got %v", err)
	}
	if glm.count() != 0 {
		t.Fatalf("nothing should be sent in strict mode")
	}

	if _, _, err := run(t, newTestOptions(t), home, "predict", "raw", "-v", `{"target":"AAPL"}`); err != nil {
		t.Fatalf("tolerant predict: %v", err)
	}
	if sent := glm.lastUserMessage(); sent != "预测 AAPL 在 {when} 的表现" {
		t.Fatalf("placeholder should stay verbatim, got %q", sent)
	}
}

func TestPredict_TimesAndAgents(t *testing.T) {
	glm := newFakeGLM(t, "看涨")
	home := initHome(t, glm)

	out, _, err := run(t, newTestOptions(t), home, "predict", "general", "-v", `{"event":"发布会"}`, "-n", "2", "-a", "3", "--format", "json")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	var recs []domain.PredictionRecord
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for _, rec := range recs {
		if len(rec.Responses) != 3 {
			t.Fatalf("expected 3 agent responses, got %d", len(rec.Responses))
		}
		for i, r := range rec.Responses {
			if r.Agent != i+1 || r.Persona == "" || r.Content != "看涨" {
				t.Fatalf("unexpected response %d: %+v", i, r)
			}
		}
	}
	if glm.count() != 6 {
		t.Fatalf("expected 6 calls, got %d", glm.count())
	}

	for _, args := range [][]string{
		{"predict", "general", "-n", "0"},
		{"predict", "general", "-a", "0"},
	} {
		if _, _, err := run(t, newTestOptions(t), home, args...); !domain.IsKind(err, domain.KindValidation) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
}

func TestPredict_UnknownTemplate(t *testing.T) {
	glm := newFakeGLM(t, "unused")
	home := initHome(t, glm)

	_, _, err := run(t, newTestOptions(t), home, "predict", "nope")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if glm.count() != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestHistory_Empty(t *testing.T) {
	home := initHome(t, nil)

	out, _, err := run(t, newTestOptions(t), home, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "no predictions yet") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, _, err := run(t, newTestOptions(t), home, "history", "show", "deadbeef"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// --- templates ---

func TestTemplates_ListShowCreate(t *testing.T) {
	home := initHome(t, nil)

	out, _, err := run(t, newTestOptions(t), home, "list-templates", "--format", "json")
	if err != nil {
		t.Fatalf("list-templates: %v", err)
	}
	var refs []domain.TemplateRef
	if err := json.Unmarshal([]byte(out), &refs); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	names := map[string]bool{}
	for _, r := range refs {
		names[r.Name] = true
	}
	for _, want := range []string{"ask", "general", "stock", "decision"} {
		if !names[want] {
			t.Fatalf("missing seeded template %q in %v", want, refs)
		}
	}

	out, _, err = run(t, newTestOptions(t), home, "template", "general", "--format", "json")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	var shown templateJSON
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if strings.Join(shown.Placeholders, ",") != "event,timeframe,context" {
		t.Fatalf("placeholders = %v", shown.Placeholders)
	}

	src := filepath.Join(t.TempDir(), "mine.md")
	if err := os.WriteFile(src, []byte("---\ndescription: 我的模板\n---\n{topic} 怎么样？\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, newTestOptions(t), home, "create-template", "mine", "-f", src); err != nil {
		t.Fatalf("create-template: %v", err)
	}
	if _, _, err := run(t, newTestOptions(t), home, "create-template", "mine", "-f", src); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected refusal without --force, got %v", err)
	}
	if _, _, err := run(t, newTestOptions(t), home, "create-template", "mine", "-f", src, "--force"); err != nil {
		t.Fatalf("create-template --force: %v", err)
	}

	out, _, err = run(t, newTestOptions(t), home, "template", "mine")
	if err != nil {
		t.Fatalf("template mine: %v", err)
	}
	if !strings.Contains(out, "我的模板") || !strings.Contains(out, "{topic} 怎么样？") {
		t.Fatalf("unexpected template view:\n%s", out)
	}

	if _, _, err := run(t, newTestOptions(t), home, "create-template", "other", "-f", filepath.Join(t.TempDir(), "missing.md")); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found for missing source, got %v", err)
	}
}
