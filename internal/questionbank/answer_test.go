package questionbank

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Closure ", "closure"},
		{"LEFT   JOIN", "left join"},
		{"\tgit\nrebase", "git rebase"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchesKey(t *testing.T) {
	q := &Question{
		Type:    TypeMultipleChoice,
		Choices: []string{"INNER JOIN", "LEFT JOIN", "CROSS JOIN"},
		Answer:  "LEFT JOIN",
	}

	tests := []struct {
		response string
		want     bool
	}{
		{"LEFT JOIN", true},
		{"  left join ", true},
		{"2", true},
		{"1", false},
		{"4", false},
		{"INNER JOIN", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := MatchesKey(q, tt.response); got != tt.want {
			t.Errorf("MatchesKey(%q) = %v, want %v", tt.response, got, tt.want)
		}
	}
}
