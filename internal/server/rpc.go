package server

import (
	"github.com/Nzyazin/gatewayclient/internal/core/handler"
	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/rpc"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// newRPCServer обслуживает каталог без сгенерированных заглушек: любой вызов
// попадает в UnknownServiceHandler и ищется в каталоге по полному имени метода.
func newRPCServer(dispatcher *handler.Dispatcher, log logger.Logger) *grpc.Server {
	return grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
			fullMethod, _ := grpc.MethodFromServerStream(stream)

			var requestID string
			if md, ok := metadata.FromIncomingContext(stream.Context()); ok {
				if ids := md.Get("x-request-id"); len(ids) > 0 {
					requestID = ids[0]
				}
			}
			log.Info("RPC request",
				logger.StringField("method", fullMethod),
				logger.StringField("request_id", requestID),
			)

			ep, ok := dispatcher.Lookup(fullMethod)
			if !ok {
				return status.Errorf(codes.Unimplemented, "unknown method %s", fullMethod)
			}

			in := &rpc.Frame{}
			if err := stream.RecvMsg(in); err != nil {
				return err
			}

			out, err := dispatcher.Dispatch(stream.Context(), ep, in.Data, schema.SnakeCase)
			if err != nil {
				code, body := handler.ErrorResponse(err)
				log.Warn("RPC request rejected",
					logger.StringField("method", fullMethod),
					logger.IntField("status", code),
					logger.ErrorField("error", err),
				)
				return status.Error(rpc.Code(code), string(body))
			}
			return stream.SendMsg(&rpc.Frame{Data: out})
		}),
	)
}
