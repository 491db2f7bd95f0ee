package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
)

type service struct {
	pulls    pull.Service
	profiles profile.Service
}

var _ GachaServer = (*service)(nil)

func (s *service) Pull(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(in, "user_id")
	if err != nil {
		return nil, err
	}
	count, err := intField(in, "count")
	if err != nil {
		return nil, err
	}
	res, err := s.pulls.Pull(ctx, userID, count)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(res)
}

func (s *service) Profile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(in, "user_id")
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(p)
}

func stringField(in *structpb.Struct, name string) (string, error) {
	v, ok := in.GetFields()[name]
	if !ok || v.GetStringValue() == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return v.GetStringValue(), nil
}

func intField(in *structpb.Struct, name string) (int, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(n.NumberValue), nil
}

// toStruct converts a JSON-tagged value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrCodeNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrInvalidDrawCount), errors.Is(err, domain.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrInsufficientFunds):
		code = codes.FailedPrecondition
	case errors.Is(err, domain.ErrAlreadySignedIn), errors.Is(err, domain.ErrCodeAlreadyRedeemed):
		code = codes.AlreadyExists
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, fmt.Sprint(err))
}
