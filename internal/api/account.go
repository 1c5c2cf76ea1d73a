package api

import (
	"context"

	"google.golang.org/grpc"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterResponse struct {
	AccountID string `json:"account_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccountID     string `json:"account_id"`
	Token         string `json:"token"`
	ExpiresAtUnix int64  `json:"expires_at_unix"`
}

type EmailExistsRequest struct {
	Email string `json:"email"`
}

type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

type UpdateProfileRequest struct {
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
	AvatarRef string   `json:"avatar_ref"`
}

type UpdateProfileResponse struct {
	Account *Account `json:"account"`
}

type GetAccountRequest struct{}

type Account struct {
	AccountID     string   `json:"account_id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Bio           string   `json:"bio"`
	Interests     []string `json:"interests"`
	AvatarRef     string   `json:"avatar_ref"`
	Badges        []string `json:"badges"`
	CreatedAtUnix int64    `json:"created_at_unix"`
}

type GetAccountResponse struct {
	Account *Account `json:"account"`
}

const (
	AccountService_Register_FullMethodName      = "/accountadate.v1.AccountService/Register"
	AccountService_Login_FullMethodName         = "/accountadate.v1.AccountService/Login"
	AccountService_EmailExists_FullMethodName   = "/accountadate.v1.AccountService/EmailExists"
	AccountService_UpdateProfile_FullMethodName = "/accountadate.v1.AccountService/UpdateProfile"
	AccountService_GetAccount_FullMethodName    = "/accountadate.v1.AccountService/GetAccount"
)

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	EmailExists(context.Context, *EmailExistsRequest) (*EmailExistsResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
}

var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "accountadate.v1.AccountService",
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AccountService_Register_FullMethodName, AccountServiceServer.Register)},
		{MethodName: "Login", Handler: unary(AccountService_Login_FullMethodName, AccountServiceServer.Login)},
		{MethodName: "EmailExists", Handler: unary(AccountService_EmailExists_FullMethodName, AccountServiceServer.EmailExists)},
		{MethodName: "UpdateProfile", Handler: unary(AccountService_UpdateProfile_FullMethodName, AccountServiceServer.UpdateProfile)},
		{MethodName: "GetAccount", Handler: unary(AccountService_GetAccount_FullMethodName, AccountServiceServer.GetAccount)},
	},
	Metadata: "accountadate/v1/account",
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

type AccountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) *AccountServiceClient {
	return &AccountServiceClient{cc: cc}
}

func (c *AccountServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AccountService_Register_FullMethodName, in, opts)
}

func (c *AccountServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, AccountService_Login_FullMethodName, in, opts)
}

func (c *AccountServiceClient) EmailExists(ctx context.Context, in *EmailExistsRequest, opts ...grpc.CallOption) (*EmailExistsResponse, error) {
	return invoke[EmailExistsResponse](ctx, c.cc, AccountService_EmailExists_FullMethodName, in, opts)
}

func (c *AccountServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, AccountService_UpdateProfile_FullMethodName, in, opts)
}

func (c *AccountServiceClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	return invoke[GetAccountResponse](ctx, c.cc, AccountService_GetAccount_FullMethodName, in, opts)
}
