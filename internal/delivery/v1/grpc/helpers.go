package grpc

import (
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrInvalidPrice), errors.Is(err, e.ErrInvalidPriceRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// toStruct упаковывает произвольное JSON-представимое значение под ключ field.
func toStruct(field string, v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(map[string]any{field: v})
	if err != nil {
		return nil, err
	}

	res := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, res); err != nil {
		return nil, err
	}

	return res, nil
}

func stringField(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

// decimalField читает цену, переданную числом или строкой.
func decimalField(req *structpb.Struct, name string) (decimal.Decimal, bool, error) {
	if req == nil {
		return decimal.Zero, false, nil
	}

	v, ok := req.GetFields()[name]
	if !ok {
		return decimal.Zero, false, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(kind.NumberValue), true, nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, false, e.Wrap(name, e.ErrInvalidPrice)
		}
		return d, true, nil
	default:
		return decimal.Zero, false, e.Wrap(name, e.ErrInvalidPrice)
	}
}
