package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"wfxshop/internal/metrics"
	"wfxshop/internal/models"
	"wfxshop/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandlers handles checkout submission and order lookup pages
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// SubmitCheckout handles POST /checkout. The cart arrives as the cartData
// form field, serialized by the checkout page from browser storage.
func (h *OrderHandlers) SubmitCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.FormValue("name")
	address := c.FormValue("address")
	cartData := c.FormValue("cartData")

	order, err := h.orderService.Submit(ctx, name, address, cartData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			metrics.OrderSubmitted("invalid")
			return renderError(c, http.StatusBadRequest, "Your cart is empty. Add something before checking out.")
		case errors.Is(err, services.ErrInvalidCart):
			metrics.OrderSubmitted("invalid")
			return renderError(c, http.StatusBadRequest, "Invalid cart data. Please rebuild your cart and try again.")
		case errors.Is(err, services.ErrMissingBuyer):
			metrics.OrderSubmitted("invalid")
			return renderError(c, http.StatusBadRequest, "Name and address are required.")
		default:
			metrics.OrderSubmitted("failed")
			zap.S().Errorw("submit order failed", "error", err)
			return renderError(c, http.StatusInternalServerError, "We could not record your order. Please try again in a moment.")
		}
	}

	metrics.OrderSubmitted("accepted")
	zap.S().Infow("order accepted",
		"order_id", order.ID,
		"reference", order.Reference,
		"total", order.Total,
		"items", len(order.Items),
	)

	return c.Render(http.StatusOK, "confirm.html", map[string]interface{}{
		"Title": "Order confirmed",
		"Order": order,
	})
}

// OrderDetail handles GET /orders/:reference
func (h *OrderHandlers) OrderDetail(c echo.Context) error {
	ctx := c.Request().Context()

	reference, err := uuid.Parse(c.Param("reference"))
	if err != nil {
		return renderError(c, http.StatusNotFound, "We could not find that order.")
	}

	order, err := h.orderService.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return renderError(c, http.StatusNotFound, "We could not find that order.")
		}
		zap.S().Errorw("load order failed", "reference", reference, "error", err)
		return renderError(c, http.StatusInternalServerError, "We could not load your order. Please try again in a moment.")
	}

	return c.Render(http.StatusOK, "order.html", map[string]interface{}{
		"Title": fmt.Sprintf("Order #%d", order.ID),
		"Order": order,
	})
}

// Receipt handles GET /orders/:reference/receipt.pdf
func (h *OrderHandlers) Receipt(c echo.Context) error {
	ctx := c.Request().Context()

	reference, err := uuid.Parse(c.Param("reference"))
	if err != nil {
		return renderError(c, http.StatusNotFound, "We could not find that order.")
	}

	order, err := h.orderService.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return renderError(c, http.StatusNotFound, "We could not find that order.")
		}
		zap.S().Errorw("load order for receipt failed", "reference", reference, "error", err)
		return renderError(c, http.StatusInternalServerError, "We could not load your order. Please try again in a moment.")
	}

	pdfBytes, err := h.generateReceiptPDF(order)
	if err != nil {
		zap.S().Errorw("generate receipt failed", "reference", reference, "error", err)
		return renderError(c, http.StatusInternalServerError, "We could not produce your receipt. Please try again in a moment.")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=receipt-%d.pdf", order.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// generateReceiptPDF renders an order receipt
func (h *OrderHandlers) generateReceiptPDF(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "WFX CHOCOLATE RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order Number: %d", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Reference: %s", order.Reference.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Order Date: %s", order.CreatedAt.Format("02-Jan-2006")))
	pdf.Ln(13)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "SHIP TO:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, order.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, order.Address)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)

	headers := []string{"Description", "Qty", "Rate", "Amount"}
	colWidths := []float64{80, 20, 30, 40}

	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)

	for _, item := range order.Items {
		pdf.CellFormat(colWidths[0], 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f", item.ProductPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", item.ProductPrice*float64(item.Quantity)), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", order.Total), "1", 0, "R", false, 0, "")
	pdf.Ln(15)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Thank you for ordering from the WFX workshop.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
