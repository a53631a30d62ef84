package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce(t *testing.T) {
	c := Config{DebounceMs: 300}
	assert.Equal(t, 300*time.Millisecond, c.Debounce())
}
