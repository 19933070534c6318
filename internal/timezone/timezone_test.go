package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, "Europe/Lisbon", Resolve("Europe/Lisbon", "UTC").String())
	assert.Equal(t, "UTC", Resolve("Mars/Olympus", "UTC").String())
	assert.Equal(t, DefaultTimezone, Resolve("", "").String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Nowhere/Town"))
}
