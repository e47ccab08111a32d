package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/application/orders"
	"github.com/jhoicas/ordena-api/internal/domain"
)

// OrderHandler maneja las peticiones HTTP para Order (protegido).
type OrderHandler struct {
	place  *orders.PlaceOrderUseCase
	manage *orders.ManageOrderUseCase
	export *orders.ExportOrdersUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(place *orders.PlaceOrderUseCase, manage *orders.ManageOrderUseCase, export *orders.ExportOrdersUseCase) *OrderHandler {
	return &OrderHandler{place: place, manage: manage, export: export}
}

// Place godoc
// @Summary      Colocar orden(es)
// @Description  Acepta un objeto (una orden) o un arreglo (lote best-effort):
// @Description  en el lote cada ítem corre su propia transacción y el fallo de
// @Description  uno no revierte el éxito de otro.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "Orden (objeto) o lote (arreglo)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}
	// El mismo endpoint acepta objeto y arreglo; el primer byte decide el modo.
	if body[0] == '[' {
		return h.placeBulk(c, body)
	}
	var in dto.PlaceOrderRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.place.PlaceOrder(c.Context(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// placeBulk resuelve el modo lote. Éxito parcial es 201 con detalle por ítem;
// todos fallidos es 400 con el mismo cuerpo (Success=false).
func (h *OrderHandler) placeBulk(c *fiber.Ctx, body []byte) error {
	var items []dto.PlaceOrderRequest
	if err := json.Unmarshal(body, &items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arreglo inválido"})
	}
	out, err := h.place.PlaceOrdersBulk(c.Context(), GetActor(c), items)
	if err != nil {
		if errors.Is(err, domain.ErrBulkAllFailed) {
			return c.Status(fiber.StatusBadRequest).JSON(out)
		}
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes (todas para superusuario, las de la empresa para el resto)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.manage.List(GetActor(c), limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.manage.GetByID(GetActor(c), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Editar estado de una orden
// @Description  Admin de la misma empresa siempre; operador solo si la orden
// @Description  fue creada hoy. Cantidad y shipped_at quedan congelados.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.manage.UpdateStatus(GetActor(c), id, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar orden (solo admin de la misma empresa o superusuario)
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.manage.Delete(GetActor(c), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Exportar órdenes visibles como CSV
// @Tags         orders
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "archivo CSV"
// @Router       /api/orders/export [get]
func (h *OrderHandler) ExportCSV(c *fiber.Ctx) error {
	rows, err := h.export.Rows(GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Order ID", "Product", "Quantity", "Status", "Created By", "Created At", "Shipped At"})
	for _, r := range rows {
		shipped := ""
		if r.ShippedAt != nil {
			shipped = r.ShippedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			r.OrderID,
			r.ProductName,
			strconv.FormatInt(r.Quantity, 10),
			r.Status,
			r.CreatedBy,
			r.CreatedAt.Format(time.RFC3339),
			shipped,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return writeDomainError(c, err)
	}
	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// ExportPDF godoc
// @Summary      Exportar órdenes visibles como reporte PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string  "archivo PDF"
// @Router       /api/orders/export/pdf [get]
func (h *OrderHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.export.PDF(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	filename := fmt.Sprintf("orders_%s.pdf", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
