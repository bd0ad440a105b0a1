package testutil

import (
	"slices"
	"testing"
)

func TestDiffLines(t *testing.T) {
	tests := []struct {
		name string
		want string
		got  string
		diff []string
	}{
		{"equal", "a\nb\n", "a\nb\n", nil},
		{
			"changed line",
			"a.php:1:7: x\nsummary\n",
			"a.php:1:8: x\nsummary\n",
			[]string{"-1: a.php:1:7: x", "+1: a.php:1:8: x"},
		},
		{
			"missing issue",
			"one\ntwo\n",
			"one\n",
			[]string{"-2: two", "+2: ", "-3: "},
		},
		{
			"extra issue",
			"one\n",
			"one\ntwo\n",
			[]string{"-2: ", "+2: two", "+3: "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiffLines(tt.want, tt.got); !slices.Equal(got, tt.diff) {
				t.Errorf("DiffLines:\n got: %q\nwant: %q", got, tt.diff)
			}
		})
	}
}
