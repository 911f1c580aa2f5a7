package grpc

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	CatalogServiceName = "storefront.v1.CatalogService"

	GetProductsMethod   = "/" + CatalogServiceName + "/GetProducts"
	GetCategoriesMethod = "/" + CatalogServiceName + "/GetCategories"
)

// CatalogServiceServer — чтение каталога по gRPC.
// Запросы и ответы передаются как google.protobuf.Struct.
type CatalogServiceServer interface {
	GetProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// CatalogServiceDesc описывает сервис без сгенерированных заглушек.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProducts", Handler: getProductsHandler},
		{MethodName: "GetCategories", Handler: getCategoriesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog.proto",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func getProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetProducts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getCategoriesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetCategories(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetCategoriesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetCategories(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type CatalogService struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogService(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogService {
	return &CatalogService{catalogUC: catalogUC, logger: logger}
}

// GetProducts возвращает {"products": [...]}.
// Необязательные поля запроса: search, category, minPrice, maxPrice.
func (g *CatalogService) GetProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetProducts"

	filter, err := filterFromStruct(req)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	products := usecase.FilterProducts(g.catalogUC.GetProducts(ctx), filter)

	res, err := toStruct("products", products)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

// GetCategories возвращает {"categories": [...]}.
func (g *CatalogService) GetCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetCategories"

	res, err := toStruct("categories", g.catalogUC.GetCategories(ctx))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func filterFromStruct(req *structpb.Struct) (domain.Filter, error) {
	filter := domain.DefaultFilter()
	filter.SearchQuery = stringField(req, "search")
	if category := stringField(req, "category"); category != "" {
		filter.Category = category
	}

	minPrice, ok, err := decimalField(req, "minPrice")
	if err != nil {
		return filter, err
	}
	if ok {
		filter.PriceRange.Min = minPrice
	}

	maxPrice, ok, err := decimalField(req, "maxPrice")
	if err != nil {
		return filter, err
	}
	if ok {
		filter.PriceRange.Max = maxPrice
	}

	if filter.PriceRange.Min.IsNegative() || filter.PriceRange.Min.GreaterThan(filter.PriceRange.Max) {
		return filter, e.ErrInvalidPriceRange
	}

	return filter, nil
}
