package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture() (SearchService, *stubProductRepo, *stubCustomerRepo, *stubSupplierRepo) {
	products := newStubProductRepo()
	customers := newStubCustomerRepo()
	suppliers := newStubSupplierRepo()
	return NewSearchService(products, customers, suppliers), products, customers, suppliers
}

func TestSearchFansOut(t *testing.T) {
	svc, products, customers, suppliers := newSearchFixture()

	products.add(&model.Product{Name: "Thermal paper", SKU: "PAP-80", UnitPrice: decimal.NewFromInt(50)})
	customers.add(&model.Customer{Name: "Bazar Central"})
	suppliers.add(&model.Supplier{Name: "Mayorista Oeste"})

	resp, err := svc.Search(context.Background(), "  pa  ")
	require.NoError(t, err)

	assert.Equal(t, "pa", resp.Query)
	assert.Len(t, resp.Products, 1)
	assert.Len(t, resp.Customers, 1)
	assert.Len(t, resp.Suppliers, 1)
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	svc, products, customers, suppliers := newSearchFixture()

	resp, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)

	// Groups are present-but-empty, and no repository was touched.
	assert.NotNil(t, resp.Products)
	assert.NotNil(t, resp.Customers)
	assert.NotNil(t, resp.Suppliers)
	assert.Empty(t, resp.Products)
	assert.Zero(t, products.searchCalls)
	assert.Zero(t, customers.searchCalls)
	assert.Zero(t, suppliers.searchCalls)
}

func TestSearchCapsEachGroup(t *testing.T) {
	svc, products, _, _ := newSearchFixture()

	for i := 0; i < 12; i++ {
		products.add(&model.Product{
			Name: fmt.Sprintf("Widget %02d", i), SKU: fmt.Sprintf("WID-%02d", i),
			UnitPrice: decimal.NewFromInt(1),
		})
	}

	resp, err := svc.Search(context.Background(), "widget")
	require.NoError(t, err)
	assert.Len(t, resp.Products, searchLimit)
}

func TestSearchFailedBranchDegrades(t *testing.T) {
	svc, products, customers, _ := newSearchFixture()

	products.searchErr = errors.New("statement timeout")
	customers.add(&model.Customer{Name: "Bazar Central"})

	// One failed branch never fails the whole search.
	resp, err := svc.Search(context.Background(), "bazar")
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.Len(t, resp.Customers, 1)
}
