package utils

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"Bare object", `{"a":1}`, `{"a":1}`, true},
		{"Prose around object", "Here you go:\n{\"a\":1}\nHope that helps.", `{"a":1}`, true},
		{"Nested braces", `result: {"a":{"b":2}} trailing`, `{"a":{"b":2}}`, true},
		{"Brace inside string", `{"msg":"use { carefully"}`, `{"msg":"use { carefully"}`, true},
		{"Escaped quote inside string", `{"msg":"say \"hi\" {"} rest`, `{"msg":"say \"hi\" {"}`, true},
		{"No object", "no json here", "", false},
		{"Unclosed object", `{"a":1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %q)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSmartUnmarshal(t *testing.T) {
	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Strict JSON", `{"name":"x","value":1.5}`, false},
		{"Single quotes repaired", `{'name':'x','value':1.5}`, false},
		{"Trailing comma repaired", `{"name":"x","value":1.5,}`, false},
		{"Hjson unquoted keys", "{\n  name: x\n  value: 1.5\n}", false},
		{"Hopeless input", "not even close", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := SmartUnmarshal(tt.input, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Name != "x" {
				t.Errorf("name = %q, want %q", p.Name, "x")
			}
		})
	}
}

func TestCleanMarkdownBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain text", "hello", "hello"},
		{"Markdown fence", "```markdown\n# Title\n```", "# Title"},
		{"Generic fence", "```\nbody\n```", "body"},
		{"Whitespace", "  answer  ", "answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMarkdown(tt.input); got != tt.want {
				t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
