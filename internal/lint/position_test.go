package lint

import (
	"errors"
	"testing"

	"github.com/donaldgifford/phpspace/internal/token"
)

func tok(text string, line, col int) token.Token {
	return token.Token{Text: text, Line: line, Column: col}
}

func TestGap(t *testing.T) {
	tests := []struct {
		name string
		a, b token.Token
		want int
	}{
		{"adjacent", tok("foo", 1, 1), tok("(", 1, 4), 0},
		{"one space", tok(")", 1, 5), tok("{", 1, 7), 1},
		{"three spaces", tok(",", 1, 3), tok("$b", 1, 7), 3},
		{"multibyte lexeme", tok("$é", 1, 1), tok(",", 1, 3), 0},
		{"overlap is negative", tok("abc", 1, 1), tok("b", 1, 2), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Gap(tt.a, tt.b); got != tt.want {
				t.Errorf("Gap = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGapMatchesColumnArithmetic(t *testing.T) {
	words := []string{"a", "foo", "$bar", "(", "=>"}
	for _, w := range words {
		for col := 1; col < 5; col++ {
			for space := 0; space < 4; space++ {
				a := tok(w, 1, col)
				b := tok("x", 1, col+len(w)+space)
				if got, want := Gap(a, b), b.Column-a.Column-len(a.Text); got != want {
					t.Fatalf("Gap(%q@%d, x@%d) = %d, want %d", w, col, b.Column, got, want)
				}
				if Gap(a, b) < 0 {
					t.Fatalf("negative gap for non-overlapping tokens")
				}
			}
		}
	}
}

func TestSameLine(t *testing.T) {
	tests := []struct {
		name string
		toks []token.Token
		want bool
	}{
		{"single", []token.Token{tok("a", 3, 1)}, true},
		{"all equal", []token.Token{tok("a", 2, 1), tok(",", 2, 2), tok("b", 2, 4)}, true},
		{"last differs", []token.Token{tok("a", 2, 1), tok(",", 2, 2), tok("b", 3, 1)}, false},
		{"middle differs", []token.Token{tok("a", 2, 1), tok(",", 3, 1), tok("b", 2, 4)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SameLine(tt.toks...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("SameLine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameLineEmpty(t *testing.T) {
	if _, err := SameLine(); !errors.Is(err, ErrNoTokens) {
		t.Errorf("SameLine() error = %v, want ErrNoTokens", err)
	}
}
