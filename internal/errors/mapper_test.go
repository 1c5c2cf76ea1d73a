package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/domain"
	svcErr "github.com/oggyb/accountadate/internal/errors"
)

func TestMapCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"duplicate", fmt.Errorf("create: %w", domain.ErrDuplicateEmail), codes.AlreadyExists},
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), codes.NotFound},
		{"gorm not found", gorm.ErrRecordNotFound, codes.NotFound},
		{"not active", domain.ErrMatchNotActive, codes.FailedPrecondition},
		{"credentials", domain.ErrInvalidCredentials, codes.Unauthenticated},
		{"session", domain.ErrUnauthenticated, codes.Unauthenticated},
		{"timeout", fmt.Errorf("%w: slow", domain.ErrTimeout), codes.DeadlineExceeded},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"empty body", domain.ErrEmptyBody, codes.InvalidArgument},
		{"other", errors.New("disk on fire"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, status.Code(svcErr.Map(tc.err)))
		})
	}
}

func TestMapHidesInternalDetail(t *testing.T) {
	st, ok := status.FromError(svcErr.Map(errors.New("dial tcp 10.0.0.1: refused")))
	require.True(t, ok)
	assert.Equal(t, "unexpected error", st.Message())
}

func TestMapValidationCarriesFields(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("email", "Email is required")
	ve.Add("password", "Password is required")

	err := svcErr.Map(ve)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	fields := svcErr.FieldViolations(err)
	assert.Equal(t, []string{"Email is required"}, fields["email"])
	assert.Equal(t, []string{"Password is required"}, fields["password"])
}

func TestMapPassesStatusThrough(t *testing.T) {
	in := status.Error(codes.PermissionDenied, "nope")
	assert.Equal(t, in, svcErr.Map(in))
	assert.Nil(t, svcErr.Map(nil))
}
