package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 249.5, ParseFloat("249.5", -1))
	assert.Equal(t, -1.0, ParseFloat("", -1))
	assert.Equal(t, -1.0, ParseFloat("abc", -1))
}
