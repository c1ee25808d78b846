package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Улица Сатпаева", "улица сатпаева"},
		{"  Hello,   World — 2024 ", "hello world 2024"},
		{"Павлодар—город", "павлодар город"},
		{"ЁЛКА", "елка"},
		{"Tab\tand\nnewline", "tab and newline"},
		{"東京 Tokyo", "tokyo"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Улица Сатпаева", "Ёмкость, ёж и ЁЛКА!", "Павел  Васильев (1910–1937)",
		"İstanbul", "«Экибастуз» — угольный разрез", "   ", "abc123XYZ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_YoEquivalence(t *testing.T) {
	assert.Equal(t, Normalize("елка"), Normalize("ёлка"))
	assert.Equal(t, Normalize("Елка"), Normalize("Ёлка"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"улица", "сатпаева"}, Tokenize("улица сатпаева"))
	assert.Empty(t, Tokenize(""))
	assert.Equal(t, []string{"a", "b"}, Tokenize("a  b"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"павел", "васильев"}, Tokens("Павел, Васильев!"))
	assert.Empty(t, Tokens(" ?! "))
}
