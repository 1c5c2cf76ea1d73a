package account

import (
	"context"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	svcErr "github.com/oggyb/accountadate/internal/errors"
	"github.com/oggyb/accountadate/internal/logger"
)

// Handler exposes Service as api.AccountServiceServer.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var _ api.AccountServiceServer = (*Handler)(nil)

func (h *Handler) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	id, err := h.svc.Register(ctx, req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		logger.FromContext(ctx, h.svc.appCtx.Logger).Debug("Register failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &api.RegisterResponse{AccountID: api.FormatID(id)}, nil
}

func (h *Handler) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	sess, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.LoginResponse{
		AccountID:     api.FormatID(sess.AccountID),
		Token:         sess.Token,
		ExpiresAtUnix: sess.ExpiresAt.Unix(),
	}, nil
}

func (h *Handler) EmailExists(ctx context.Context, req *api.EmailExistsRequest) (*api.EmailExistsResponse, error) {
	exists, err := h.svc.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.EmailExistsResponse{Exists: exists}, nil
}

func (h *Handler) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UpdateProfileResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	acc, err := h.svc.UpdateProfile(ctx, me, req.Bio, req.Interests, req.AvatarRef)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.UpdateProfileResponse{Account: toAPI(acc)}, nil
}

func (h *Handler) GetAccount(ctx context.Context, _ *api.GetAccountRequest) (*api.GetAccountResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	acc, err := h.svc.GetAccount(ctx, me)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.GetAccountResponse{Account: toAPI(acc)}, nil
}

func toAPI(acc *Account) *api.Account {
	out := &api.Account{
		AccountID:     api.FormatID(acc.ID),
		Username:      acc.Username,
		Email:         acc.Email,
		Bio:           acc.Bio,
		Interests:     acc.Interests,
		AvatarRef:     acc.AvatarRef,
		Badges:        make([]string, 0, len(acc.Badges)),
		CreatedAtUnix: acc.CreatedAt.Unix(),
	}
	for _, b := range acc.Badges {
		out.Badges = append(out.Badges, string(b))
	}
	return out
}
