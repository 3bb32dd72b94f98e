package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"wfxshop/internal/models"
	"wfxshop/internal/services"
	"wfxshop/internal/web"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockOrderService is a mock implementation of services.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Submit(ctx context.Context, buyerName, buyerAddress, cartData string) (*models.Order, error) {
	args := m.Called(ctx, buyerName, buyerAddress, cartData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetByReference(ctx context.Context, reference uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type OrderHandlersTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	orderService *MockOrderService
	handlers     *OrderHandlers
}

func (suite *OrderHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.echo.Renderer = web.NewRenderer()
	suite.orderService = new(MockOrderService)
	suite.handlers = NewOrderHandlers(suite.orderService)
}

func (suite *OrderHandlersTestSuite) TearDownTest() {
	suite.orderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlersTestSuite) confirmedOrder() *models.Order {
	return &models.Order{
		ID:        41,
		Reference: uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:      "Ada Lovelace",
		Address:   "12 Analytical Lane",
		Total:     7.50,
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ID: 7, OrderID: 41, ProductName: "WFX Dark Chocolate", ProductPrice: 2.50, Quantity: 3},
		},
	}
}

func (suite *OrderHandlersTestSuite) postCheckout(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	assert.NoError(suite.T(), suite.handlers.SubmitCheckout(c))
	return rec
}

func (suite *OrderHandlersTestSuite) getOrderPage(reference string, handler func(echo.Context) error) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/orders/"+reference, nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("reference")
	c.SetParamValues(reference)
	assert.NoError(suite.T(), handler(c))
	return rec
}

func (suite *OrderHandlersTestSuite) TestSubmitCheckout_RendersConfirmation() {
	order := suite.confirmedOrder()
	cartData := `[{"id":2,"name":"WFX Dark Chocolate","price":2.50,"quantity":3}]`
	suite.orderService.On("Submit", mock.Anything, "Ada Lovelace", "12 Analytical Lane", cartData).
		Return(order, nil).Once()

	rec := suite.postCheckout(url.Values{
		"name":     {"Ada Lovelace"},
		"address":  {"12 Analytical Lane"},
		"cartData": {cartData},
	})

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "#41")
	assert.Contains(suite.T(), body, "Ada Lovelace")
	assert.Contains(suite.T(), body, "WFX Dark Chocolate")
	assert.Contains(suite.T(), body, "7.50")
	assert.Contains(suite.T(), body, order.Reference.String())
}

func (suite *OrderHandlersTestSuite) TestSubmitCheckout_RejectsMalformedCart() {
	suite.orderService.On("Submit", mock.Anything, "Ada", "Somewhere", "not json at all").
		Return(nil, services.ErrInvalidCart).Once()

	rec := suite.postCheckout(url.Values{
		"name":     {"Ada"},
		"address":  {"Somewhere"},
		"cartData": {"not json at all"},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Invalid cart data")
}

func (suite *OrderHandlersTestSuite) TestSubmitCheckout_RejectsEmptyCart() {
	suite.orderService.On("Submit", mock.Anything, "Ada", "Somewhere", "[]").
		Return(nil, services.ErrEmptyCart).Once()

	rec := suite.postCheckout(url.Values{
		"name":     {"Ada"},
		"address":  {"Somewhere"},
		"cartData": {"[]"},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Your cart is empty")
}

func (suite *OrderHandlersTestSuite) TestSubmitCheckout_RejectsMissingBuyer() {
	suite.orderService.On("Submit", mock.Anything, "", "", mock.Anything).
		Return(nil, services.ErrMissingBuyer).Once()

	rec := suite.postCheckout(url.Values{
		"cartData": {`[{"id":2,"quantity":1}]`},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Name and address are required")
}

func (suite *OrderHandlersTestSuite) TestSubmitCheckout_StorageFailureStaysGeneric() {
	suite.orderService.On("Submit", mock.Anything, "Ada", "Somewhere", mock.Anything).
		Return(nil, errors.New("create order: connection refused")).Once()

	rec := suite.postCheckout(url.Values{
		"name":     {"Ada"},
		"address":  {"Somewhere"},
		"cartData": {`[{"id":2,"quantity":1}]`},
	})

	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "We could not record your order")
	assert.NotContains(suite.T(), body, "connection refused")
}

func (suite *OrderHandlersTestSuite) TestOrderDetail_RendersOrder() {
	order := suite.confirmedOrder()
	suite.orderService.On("GetByReference", mock.Anything, order.Reference).
		Return(order, nil).Once()

	rec := suite.getOrderPage(order.Reference.String(), suite.handlers.OrderDetail)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Order #41")
	assert.Contains(suite.T(), body, "12 Analytical Lane")
	assert.Contains(suite.T(), body, "receipt.pdf")
}

func (suite *OrderHandlersTestSuite) TestOrderDetail_RejectsBadReference() {
	rec := suite.getOrderPage("not-a-uuid", suite.handlers.OrderDetail)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "could not find that order")
	suite.orderService.AssertNotCalled(suite.T(), "GetByReference", mock.Anything, mock.Anything)
}

func (suite *OrderHandlersTestSuite) TestOrderDetail_UnknownReference() {
	reference := uuid.New()
	suite.orderService.On("GetByReference", mock.Anything, reference).
		Return(nil, pgx.ErrNoRows).Once()

	rec := suite.getOrderPage(reference.String(), suite.handlers.OrderDetail)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "could not find that order")
}

func (suite *OrderHandlersTestSuite) TestReceipt_ProducesPDF() {
	order := suite.confirmedOrder()
	suite.orderService.On("GetByReference", mock.Anything, order.Reference).
		Return(order, nil).Once()

	rec := suite.getOrderPage(order.Reference.String(), suite.handlers.Receipt)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), "receipt-41.pdf")
	assert.True(suite.T(), strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func (suite *OrderHandlersTestSuite) TestReceipt_UnknownReference() {
	reference := uuid.New()
	suite.orderService.On("GetByReference", mock.Anything, reference).
		Return(nil, pgx.ErrNoRows).Once()

	rec := suite.getOrderPage(reference.String(), suite.handlers.Receipt)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestOrderHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlersTestSuite))
}
