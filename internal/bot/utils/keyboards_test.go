package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmKeyboardBindsAction(t *testing.T) {
	menu := ConfirmKeyboard("job_delete", "42")

	require.Len(t, menu.InlineKeyboard, 1)
	row := menu.InlineKeyboard[0]
	require.Len(t, row, 2)

	assert.Equal(t, "job_delete_yes", row[0].Unique)
	assert.Equal(t, "42", row[0].Data)
	assert.Equal(t, "job_delete_no", row[1].Unique)
	assert.Equal(t, "42", row[1].Data)
}

func TestInlinePaginationKeyboardBounds(t *testing.T) {
	// single page renders no buttons at all
	assert.Empty(t, InlinePaginationKeyboard(1, 1, "jobs_page").InlineKeyboard)

	first := InlinePaginationKeyboard(1, 3, "jobs_page").InlineKeyboard
	require.Len(t, first, 1)
	require.Len(t, first[0], 2, "first page has no prev button")
	assert.Equal(t, "jobs_page_current", first[0][0].Unique)
	assert.Equal(t, "jobs_page_next", first[0][1].Unique)
	assert.Equal(t, "2", first[0][1].Data)

	last := InlinePaginationKeyboard(3, 3, "jobs_page").InlineKeyboard
	require.Len(t, last, 1)
	require.Len(t, last[0], 2, "last page has no next button")
	assert.Equal(t, "jobs_page_prev", last[0][0].Unique)
	assert.Equal(t, "2", last[0][0].Data)
}
