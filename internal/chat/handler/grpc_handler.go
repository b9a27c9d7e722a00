package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"goquote/internal/common"
	"goquote/internal/logger"
	"goquote/internal/quote"
)

const (
	QuoteServiceName   = "goquote.v1.QuoteService"
	GetQuoteMethod     = "/" + QuoteServiceName + "/GetQuote"
	DismissQuoteMethod = "/" + QuoteServiceName + "/DismissQuote"
)

// QuoteRPC is the gRPC surface of the composer quote. Requests carry the
// channel id as a StringValue.
type QuoteRPC interface {
	GetQuote(ctx context.Context, channelID *wrapperspb.StringValue) (*structpb.Struct, error)
	DismissQuote(ctx context.Context, channelID *wrapperspb.StringValue) (*emptypb.Empty, error)
}

type GRPCHandler struct {
	quotes *quote.Service
	log    *zap.Logger
}

func NewGRPCHandler(quotes *quote.Service, log *zap.Logger) *GRPCHandler {
	return &GRPCHandler{quotes: quotes, log: logger.OrNop(log)}
}

// Register adds the quote service to s.
func (h *GRPCHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&quoteServiceDesc, h)
}

func (h *GRPCHandler) GetQuote(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	channelID := req.GetValue()
	if err := common.ValidateChannelID(channelID); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, _ := common.UserIDFromContext(ctx)

	view, found := h.quotes.Preview(channelID, userID)
	if !found {
		return nil, status.Errorf(codes.NotFound, "no pending quote in %s", channelID)
	}

	out, err := viewToStruct(view)
	if err != nil {
		h.log.Error("quote_encode_failed", zap.String("channel_id", channelID), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode quote")
	}
	return out, nil
}

func (h *GRPCHandler) DismissQuote(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	channelID := req.GetValue()
	if err := common.ValidateChannelID(channelID); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := h.quotes.Dismiss(channelID); err != nil {
		h.log.Error("quote_dismiss_failed", zap.String("channel_id", channelID), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to dismiss quote")
	}
	return &emptypb.Empty{}, nil
}

// viewToStruct uses the JSON field names of View.
func viewToStruct(view *quote.View) (*structpb.Struct, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return out, nil
}

func getQuoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteRPC).GetQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetQuoteMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteRPC).GetQuote(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func dismissQuoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteRPC).DismissQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DismissQuoteMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteRPC).DismissQuote(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var quoteServiceDesc = grpc.ServiceDesc{
	ServiceName: QuoteServiceName,
	HandlerType: (*QuoteRPC)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetQuote", Handler: getQuoteHandler},
		{MethodName: "DismissQuote", Handler: dismissQuoteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "goquote/v1/quote.proto",
}
