package api

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/grpc"

	"github.com/oggyb/accountadate/internal/domain"
)

// unary adapts a typed server method into a grpc.MethodHandler.
func unary[S, Req, Resp any](
	fullMethod string,
	call func(S, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// invoke performs a unary call with the json codec.
func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	fullMethod string,
	in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, fullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicMethods lists the RPCs callable without a session token.
var PublicMethods = map[string]bool{
	AccountService_Register_FullMethodName:    true,
	AccountService_Login_FullMethodName:       true,
	AccountService_EmailExists_FullMethodName: true,
}

// ParseID parses a decimal id field. Anything else is a validation error on
// field.
func ParseID(field, value string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		ve := domain.NewValidationError()
		ve.Add(field, field+" must be a valid uint64")
		return 0, ve
	}
	return id, nil
}

// ParseOptionalID is ParseID where empty means zero.
func ParseOptionalID(field, value string) (uint64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return ParseID(field, value)
}

func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
