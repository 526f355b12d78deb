package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParams_Validate(t *testing.T) {
	params := &PaginationParams{Page: 0, PerPage: 0}
	params.Validate()
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 15, params.PerPage)

	params = &PaginationParams{Page: 3, PerPage: 500}
	params.Validate()
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 100, params.PerPage)
}

func TestPaginationParams_Offset(t *testing.T) {
	params := &PaginationParams{Page: 1, PerPage: 15}
	assert.Equal(t, 0, params.Offset())

	params = &PaginationParams{Page: 4, PerPage: 20}
	assert.Equal(t, 60, params.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 10, 5)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", createdAt)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(createdAt))
}

func TestCursorParams_DecodeInvalid(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}
