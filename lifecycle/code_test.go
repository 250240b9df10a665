package lifecycle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := RandomCode()
		assert.NoError(t, err)
		assert.True(t, wellFormedCode(code), code)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestWellFormedCode(t *testing.T) {
	assert.True(t, wellFormedCode("000123"))
	assert.False(t, wellFormedCode("12345"))
	assert.False(t, wellFormedCode("1234567"))
	assert.False(t, wellFormedCode("12a456"))
	assert.False(t, wellFormedCode("１２３４５６"))
}
