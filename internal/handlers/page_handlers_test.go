package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wfxshop/internal/models"
	"wfxshop/internal/web"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCatalogService is a mock implementation of services.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogService) SeedIfEmpty(ctx context.Context, seeds []models.ProductSeed) error {
	args := m.Called(ctx, seeds)
	return args.Error(0)
}

type PageHandlersTestSuite struct {
	suite.Suite
	echo           *echo.Echo
	catalogService *MockCatalogService
	handlers       *PageHandlers
}

func (suite *PageHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.echo.Renderer = web.NewRenderer()
	suite.catalogService = new(MockCatalogService)
	suite.handlers = NewPageHandlers(suite.catalogService, NewImageResolver(nil, ""))
}

func (suite *PageHandlersTestSuite) TearDownTest() {
	suite.catalogService.AssertExpectations(suite.T())
}

func (suite *PageHandlersTestSuite) getPage(path string, handler func(echo.Context) error) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	assert.NoError(suite.T(), handler(c))
	return rec
}

func (suite *PageHandlersTestSuite) TestLanding() {
	rec := suite.getPage("/", suite.handlers.Landing)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "WFX Chocolate")
}

func (suite *PageHandlersTestSuite) TestProducts_RendersCatalog() {
	suite.catalogService.On("List", mock.Anything).Return([]*models.Product{
		{ID: 1, Name: "WFX Milk Chocolate", Price: 2.20, Image: "milk.svg"},
		{ID: 2, Name: "WFX Dark Chocolate", Price: 2.50, Image: "dark.svg"},
	}, nil).Once()

	rec := suite.getPage("/products", suite.handlers.Products)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "WFX Dark Chocolate")
	assert.Contains(suite.T(), body, "2.50")
	assert.Contains(suite.T(), body, "/static/dark.svg")
	assert.Contains(suite.T(), body, "addToCart")
}

func (suite *PageHandlersTestSuite) TestProducts_ServiceError() {
	suite.catalogService.On("List", mock.Anything).
		Return(nil, errors.New("list products: timeout")).Once()

	rec := suite.getPage("/products", suite.handlers.Products)

	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "unavailable right now")
}

func (suite *PageHandlersTestSuite) TestCart_ShipsClientScript() {
	rec := suite.getPage("/cart", suite.handlers.Cart)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "wfx_cart")
	assert.Contains(suite.T(), body, "cart-table")
}

func (suite *PageHandlersTestSuite) TestCheckoutForm() {
	rec := suite.getPage("/checkout", suite.handlers.CheckoutForm)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, `action="/checkout"`)
	assert.Contains(suite.T(), body, `name="cartData"`)
	assert.Contains(suite.T(), body, `name="name"`)
	assert.Contains(suite.T(), body, `name="address"`)
}

func TestPageHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(PageHandlersTestSuite))
}
