package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestFlattenNestedDraft(t *testing.T) {
	fields := map[string]any{
		"firstName": "Ananya",
		"amountDue": 150.5,
		"active":    true,
		"age":       30.0,
		"allergies": []any{"Penicillin", "Latex"},
		"address": map[string]any{
			"city":    "Bengaluru",
			"country": "India",
		},
		"notes": nil,
	}

	got := flatten("", fields)

	want := map[string]string{
		"firstName":       "Ananya",
		"amountDue":       "150.5",
		"active":          "true",
		"age":             "30",
		"allergies":       "Penicillin,Latex",
		"address.city":    "Bengaluru",
		"address.country": "India",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("flatten[%q] = %q, want %q", key, got[key], value)
		}
	}
	if _, ok := got["notes"]; ok {
		t.Error("null field not skipped")
	}
}

func TestApplyInputRejectsMalformedSet(t *testing.T) {
	form := &draftForm[struct{}]{
		set: func(field, value string) error { return nil },
	}
	if err := applyInput(form, "", []string{"no-equals-sign"}); err == nil {
		t.Error("malformed --set accepted")
	}
}

func TestApplyInputOrderSetsOverrideFile(t *testing.T) {
	var sets [][2]string
	form := &draftForm[struct{}]{
		set: func(field, value string) error {
			sets = append(sets, [2]string{field, value})
			return nil
		},
	}

	if err := applyInput(form, "", []string{"a=1", "a=2"}); err != nil {
		t.Fatalf("applyInput: %v", err)
	}
	if len(sets) != 2 || sets[1] != [2]string{"a", "2"} {
		t.Errorf("sets = %v", sets)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"1", "Cleaning"},
		{"2", "Filling"},
	})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ID") || !strings.Contains(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Filling") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		p := &prompter{in: strings.NewReader(tc.input), out: &out}
		if got := p.Confirm("Delete?"); got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("prompt missing default hint: %q", out.String())
		}
	}

	auto := &prompter{auto: true}
	if !auto.Confirm("Delete?") {
		t.Error("auto prompter did not confirm")
	}
}
