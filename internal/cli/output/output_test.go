package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	if _, err := NewFormatter("table"); err != nil {
		t.Errorf("table: %v", err)
	}
	if _, err := NewFormatter("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := NewFormatter("yaml"); err == nil {
		t.Error("unknown format should error")
	}
}

func TestTableFormatter(t *testing.T) {
	table := &Table{Headers: []string{"ID", "TITLE"}}
	table.Add("n1", "groceries")
	table.Add("n2", "trip planning")

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID", "TITLE", "groceries", "trip planning"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestTableFormatterJSONFallback(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]string{"status": "healthy"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), `"status"`) {
		t.Errorf("fallback output %q is not JSON", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[\n  \"a\",\n  \"b\"\n]" {
		t.Errorf("output = %q", buf.String())
	}
}
