package service

import (
	"context"
	"strings"
	"sync"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// searchLimit caps each entity group of the global search.
const searchLimit = 5

// SearchService fans a query out to products, customers and suppliers in
// parallel. A branch that errors logs and contributes its empty group rather
// than failing the whole search.
type SearchService interface {
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
}

type searchService struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
}

func NewSearchService(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	suppliers repository.SupplierRepository,
) SearchService {
	return &searchService{products: products, customers: customers, suppliers: suppliers}
}

func (s *searchService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &dto.SearchResponse{
		Query:     query,
		Products:  []dto.ProductResponse{},
		Customers: []dto.CustomerResponse{},
		Suppliers: []dto.SupplierResponse{},
	}
	if query == "" {
		return resp, nil
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		products, err := s.products.Search(ctx, query, searchLimit)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("product search branch failed")
			return
		}
		for i := range products {
			resp.Products = append(resp.Products, *productToResponse(&products[i]))
		}
	}()

	go func() {
		defer wg.Done()
		customers, err := s.customers.Search(ctx, query, searchLimit)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("customer search branch failed")
			return
		}
		for i := range customers {
			resp.Customers = append(resp.Customers, *customerToResponse(&customers[i]))
		}
	}()

	go func() {
		defer wg.Done()
		suppliers, err := s.suppliers.Search(ctx, query, searchLimit)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("supplier search branch failed")
			return
		}
		for i := range suppliers {
			resp.Suppliers = append(resp.Suppliers, *supplierToResponse(&suppliers[i]))
		}
	}()

	wg.Wait()
	return resp, nil
}
