// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/logger"
	"github.com/oggyb/accountadate/internal/utils/pagination"
)

// Map converts domain/repo/infra errors into gRPC status errors.
// Services return typed errors; only the transport decides what the
// client sees. Unknown errors are logged and surface as a generic
// Internal so storage details never leak.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return validation(ve)

	case errors.Is(err, pagination.ErrInvalidToken):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, domain.ErrDuplicateEmail.Error())

	case errors.Is(err, domain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")

	case errors.Is(err, domain.ErrMatchNotActive):
		return status.Error(codes.FailedPrecondition, domain.ErrMatchNotActive.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, domain.ErrInvalidCredentials.Error())

	case errors.Is(err, domain.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "missing or invalid session")

	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		logger.Error("unexpected error", "err", err)
		return status.Error(codes.Internal, "unexpected error")
	}
}

// validation renders per-field problems as BadRequest details so clients
// can show them next to the offending input.
func validation(ve *domain.ValidationError) error {
	st := status.New(codes.InvalidArgument, ve.Error())
	br := &errdetails.BadRequest{}
	for _, field := range ve.FieldNames() {
		for _, msg := range ve.Fields[field] {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       field,
				Description: msg,
			})
		}
	}
	if withDetails, err := st.WithDetails(br); err == nil {
		return withDetails.Err()
	}
	return st.Err()
}

// FieldViolations extracts BadRequest violations from a status error,
// keyed by field.
func FieldViolations(err error) map[string][]string {
	out := map[string][]string{}
	st, ok := status.FromError(err)
	if !ok {
		return out
	}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				out[v.GetField()] = append(out[v.GetField()], v.GetDescription())
			}
		}
	}
	return out
}

// InvalidField is a gRPC InvalidArgument error with a single field
// violation attached.
func InvalidField(field, msg string) error {
	ve := domain.NewValidationError()
	ve.Add(field, msg)
	return validation(ve)
}
