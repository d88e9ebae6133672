package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local with leading zero", "0612345678", "612345678"},
		{"international plus prefix", "+212612345678", "612345678"},
		{"international double-zero prefix", "00212612345678", "612345678"},
		{"spaces and hyphens", "+212 6 12-34-56-78", "612345678"},
		{"parentheses", "(06) 12 34 56 78", "612345678"},
		{"already normalized", "612345678", "612345678"},
		{"only one leading zero dropped", "00612345678", "0612345678"},
		{"letters stripped", "06x12y345678", "612345678"},
		{"empty", "", ""},
		{"plus without country code kept digits", "+33612345678", "33612345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"+212 6 12-34-56-78",
		"0612345678",
		"00212612345678",
		"  0522 12 34 56 ",
		"garbage-123",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", in)
	}
}

// Stacked zeros without a country code lose one zero per pass, so a
// second pass still changes the value. Both checkout and lookup run a
// single pass, which is what keeps the two sides aligned.
func TestNormalizeStripsOneZeroPerPass(t *testing.T) {
	once := Normalize("00612345678")
	assert.Equal(t, "0612345678", once)
	assert.Equal(t, "612345678", Normalize(once))
}

func TestNormalizeCollapsesEquivalentForms(t *testing.T) {
	forms := []string{"+212612345678", "0612345678", "00212612345678", "+212 6 12-34-56-78"}
	for _, f := range forms {
		assert.Equal(t, "612345678", Normalize(f))
	}
}
