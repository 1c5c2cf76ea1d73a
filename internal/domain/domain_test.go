package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/domain"
)

func TestParsePolarity(t *testing.T) {
	cases := map[string]domain.Polarity{
		"like":   domain.PolarityLike,
		" Right": domain.PolarityLike,
		"PASS":   domain.PolarityPass,
		"left":   domain.PolarityPass,
	}
	for in, want := range cases {
		got, ok := domain.ParsePolarity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := domain.ParsePolarity("superlike")
	assert.False(t, ok)
}

func TestPairKey(t *testing.T) {
	lo, hi := domain.PairKey(9, 2)
	assert.Equal(t, uint64(2), lo)
	assert.Equal(t, uint64(9), hi)

	lo2, hi2 := domain.PairKey(2, 9)
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
}

func TestValidateRegistration(t *testing.T) {
	require.NoError(t, domain.ValidateRegistration("alice", "alice@example.com", "secret1", "secret1"))

	err := domain.ValidateRegistration("al", "not-an-email", "123", "456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"confirm_password", "email", "password", "username"}, ve.FieldNames())
}

func TestValidateRegistration_LongPassword(t *testing.T) {
	long := fmt.Sprintf("%073d", 0)
	err := domain.ValidateRegistration("alice", "a@b.co", long, long)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("password"))
}

func TestValidateProfile(t *testing.T) {
	require.NoError(t, domain.ValidateProfile("hi there", []string{"hiking"}))

	err := domain.ValidateProfile("   ", nil)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("bio"))
	assert.True(t, ve.Has("interests"))
}

func TestNormalizeInterests(t *testing.T) {
	got := domain.NormalizeInterests([]string{" Hiking", "hiking", "", "Jazz "})
	assert.Equal(t, []string{"hiking", "jazz"}, got)
}

func TestErrEmptyBodyIsValidation(t *testing.T) {
	wrapped := fmt.Errorf("post: %w", domain.ErrEmptyBody)
	assert.True(t, errors.Is(wrapped, domain.ErrEmptyBody))
	assert.True(t, errors.Is(wrapped, domain.ErrValidation))
}

func TestLookupBadge(t *testing.T) {
	b, ok := domain.LookupBadge(domain.BadgeMatchMaker)
	require.True(t, ok)
	assert.Equal(t, int64(5), b.Requirement)

	_, ok = domain.LookupBadge("nope")
	assert.False(t, ok)
}
