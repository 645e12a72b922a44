package registration

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	individualCode = regexp.MustCompile(`^WS-I-[A-Z0-9]{5}$`)
	groupCode      = regexp.MustCompile(`^WS-G-[A-Z0-9]{5}$`)
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		assert.Regexp(t, individualCode, GenerateCode(CategoryIndividual))
		assert.Regexp(t, groupCode, GenerateCode(CategoryGroup))
	}
}

func TestGenerateCodeAlphabet(t *testing.T) {
	t.Run("first symbol", func(t *testing.T) {
		code := generateCode(CategoryGroup, func(int) int { return 0 })
		assert.Equal(t, "WS-G-AAAAA", code)
	})

	t.Run("last symbol", func(t *testing.T) {
		code := generateCode(CategoryIndividual, func(n int) int { return n - 1 })
		assert.Equal(t, "WS-I-99999", code)
	})
}

func TestCategory(t *testing.T) {
	c, err := ParseCategory("group")
	assert.NoError(t, err)
	assert.Equal(t, CategoryGroup, c)
	assert.Equal(t, "Group Portrait", c.Label())
	assert.Equal(t, "Individual Portrait", CategoryIndividual.Label())

	_, err = ParseCategory("wedding")
	assert.Error(t, err)
}
