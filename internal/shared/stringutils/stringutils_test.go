package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "Пос...", Truncate("Посылка не найдена", 3))
	assert.Equal(t, "Посылка", Truncate("Посылка", 7))
}

func TestStripThink(t *testing.T) {
	assert.Equal(t, "answer", StripThink("<think>hmm\nmaybe</think> answer"))
}

func TestStringOrDefault(t *testing.T) {
	assert.Equal(t, "x", StringOrDefault("x", "y"))
	assert.Equal(t, "y", StringOrDefault("", "y"))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"cdek", "dhl", "ups"}, SplitCSV(" cdek, ,dhl,ups ,"))
	assert.Equal(t, []string{}, SplitCSV(""))
}
