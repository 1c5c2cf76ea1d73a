package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/utils/pagination"
)

func TestEncodeDecode(t *testing.T) {
	token, err := pagination.Encode(pagination.Cursor{ID: 42, Unix: 1700000000000})
	require.NoError(t, err)

	c, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), c.ID)
	assert.Equal(t, int64(1700000000000), c.Unix)
}

func TestDecodeEmptyIsFirstPage(t *testing.T) {
	c, err := pagination.Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	c, err = pagination.DecodePtr(nil)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := pagination.Decode("%%%")
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)

	_, err = pagination.Decode("bm90LWpzb24=") // "not-json"
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)
}

func TestLimit(t *testing.T) {
	assert.Equal(t, 20, pagination.Limit(0, 20, 50))
	assert.Equal(t, 50, pagination.Limit(500, 20, 50))
	assert.Equal(t, 7, pagination.Limit(7, 20, 50))
}
