//go:build unit
// +build unit

package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToInt(t *testing.T) {
	assert.Equal(t, 42, ConvertToInt("42"))
	assert.Equal(t, 0, ConvertToInt("abc"))
	assert.Equal(t, 20, ConvertToIntDefault("", 20))
	assert.Equal(t, 5, ConvertToIntDefault(" 5 ", 20))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"NEW", "IN_REVIEW"}, SplitCSV("new, in_review,,"))
	assert.Nil(t, SplitCSV(""))
}

func TestParseTime(t *testing.T) {
	parsed, ok := ParseTime("2025-03-01T09:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, 9, parsed.Hour())

	_, ok = ParseTime("yesterday")
	assert.False(t, ok)
	assert.True(t, ConvertToBool("true"))
	assert.False(t, ConvertToBool("nope"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Resident", "Document"}, SplitList(" Resident,,Document "))
	assert.Nil(t, SplitList(" "))
}
