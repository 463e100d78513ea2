package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	p := NewPagination(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = NewPagination(3, 1000)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, 200, p.GetOffset())
}

func TestPagination_SetTotal(t *testing.T) {
	t.Parallel()

	p := NewPagination(2, 10)
	p.SetTotal(25)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 10)
	p.SetTotal(0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
