package glm

import "testing"

func TestExtractString(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"a"}},{"message":{"content":"b"}}],"usage":{"total_tokens":42},"obj":{"k":"v"}}`)

	cases := []struct {
		expr string
		want string
	}{
		{"$.choices[0].message.content", "a"},
		{"$.choices[1].message.content", "b"},
		{"$.usage.total_tokens", "42"},
		{"$.obj", `{"k":"v"}`},
	}
	for _, tc := range cases {
		got, err := extractString(body, tc.expr)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.expr, tc.want, got)
		}
	}
}

func TestExtractString_Errors(t *testing.T) {
	cases := []struct {
		body, expr string
	}{
		{`{"a":1}`, ""},
		{`nope`, "$.a"},
		{`{"a":1}`, "$.missing"},
		{`{"a":""}`, "$.a"},
		{`{"a":null}`, "$.a"},
	}
	for _, tc := range cases {
		if _, err := extractString([]byte(tc.body), tc.expr); err == nil {
			t.Fatalf("body=%s expr=%q: expected error", tc.body, tc.expr)
		}
	}
}
