package strings

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short unchanged", "Analytics", 20, "Analytics"},
		{"exact length unchanged", "Analytics", 9, "Analytics"},
		{"long truncated", "Adobe Experience Platform Launch API", 20, "Adobe Experience ..."},
		{"newlines collapsed", `{"sdkList":` + "\n\n" + `["A"]}`, 40, `{"sdkList": ["A"]}`},
		{"tabs and spaces collapsed", "a\t\t b   c", 20, "a b c"},
		{"surrounding whitespace trimmed", "  body  ", 20, "body"},
		{"unicode safe", "Événement Überprüfung", 10, "Événeme..."},
		{"empty", "", 10, ""},
		{"whitespace only", " \n\t ", 10, ""},
		{"small maxLen clamped", "Analytics", 1, "A..."},
		{"negative maxLen clamped", "Analytics", -5, "A..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestJoinLimited(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		limit    int
		expected string
	}{
		{"nil", nil, 3, ""},
		{"under limit", []string{"A", "B"}, 3, "A, B"},
		{"at limit", []string{"A", "B", "C"}, 3, "A, B, C"},
		{"over limit", []string{"A", "B", "C", "D", "E"}, 2, "A, B, (+3 more)"},
		{"no limit", []string{"A", "B", "C"}, 0, "A, B, C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JoinLimited(tt.items, tt.limit)
			if result != tt.expected {
				t.Errorf("JoinLimited(%v, %d) = %q, want %q", tt.items, tt.limit, result, tt.expected)
			}
		})
	}
}
