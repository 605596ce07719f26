package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 20}, Normalize(0, 0, 20, 100))
	assert.Equal(t, Params{Page: 3, Limit: 10}, Normalize(3, 10, 20, 100))
	assert.Equal(t, Params{Page: 1, Limit: 100}, Normalize(-5, 500, 20, 100))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	// 25 items at 10 per page span 3 pages; page 3 holds the last 5.
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 3, Limit: 10}, 25)
	assert.Equal(t, Meta{CurrentPage: 3, TotalPages: 3, TotalResults: 25}, meta)
}
