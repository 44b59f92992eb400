package tokenauth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor backed by the
// same token service as the HTTP middleware. Failures map to Unauthenticated
// with a generic message; the error code only reaches the logs.
func UnaryServerInterceptor(svc *Service) grpc.UnaryServerInterceptor {
	cfg := svc.Config()
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()
		requestID := uuid.New().String()

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			logAuthFailure(cfg, requestID, info.FullMethod, "",
				NewValidationError(ErrMissingToken, "metadata not found", nil), time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}

		token, err := extractTokenFromMetadata(md)
		if err != nil {
			logAuthFailure(cfg, requestID, info.FullMethod, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}

		identity, err := svc.Verify(ctx, token)
		if err != nil {
			logAuthFailure(cfg, requestID, info.FullMethod, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}

		ctx = WithIdentity(ctx, identity)
		ctx = WithRequestID(ctx, requestID)

		logAuthSuccess(cfg, requestID, info.FullMethod, identity, token, time.Since(startTime))

		return handler(ctx, req)
	}
}
