package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// ExportOrdersUseCase arma las filas de exportación (CSV o PDF) de las órdenes
// visibles para el actor. El formato final lo resuelve la capa de transporte
// (CSV) o el ReportGenerator (PDF).
type ExportOrdersUseCase struct {
	orderRepo repository.OrderRepository
	reportGen ReportGenerator
}

// NewExportOrdersUseCase construye el caso de uso.
func NewExportOrdersUseCase(orderRepo repository.OrderRepository, reportGen ReportGenerator) *ExportOrdersUseCase {
	return &ExportOrdersUseCase{orderRepo: orderRepo, reportGen: reportGen}
}

// Rows devuelve las filas de exportación: todas las órdenes para un
// superusuario, las de la empresa del actor para el resto.
func (uc *ExportOrdersUseCase) Rows(actor authz.Actor) ([]dto.OrderExportRow, error) {
	var (
		list []*entity.Order
		err  error
	)
	if actor.IsSuperuser {
		list, err = uc.orderRepo.ListAllForExport()
	} else {
		list, err = uc.orderRepo.ListByCompanyForExport(actor.CompanyID)
	}
	if err != nil {
		return nil, err
	}
	rows := make([]dto.OrderExportRow, 0, len(list))
	for _, o := range list {
		createdBy := "N/A"
		if o.CreatedByName != "" {
			createdBy = o.CreatedByName
		}
		rows = append(rows, dto.OrderExportRow{
			OrderID:     o.ID,
			ProductName: o.ProductName,
			Quantity:    o.Quantity,
			Status:      o.Status,
			CreatedBy:   createdBy,
			CreatedAt:   o.CreatedAt,
			ShippedAt:   o.ShippedAt,
		})
	}
	return rows, nil
}

// PDF genera el reporte de órdenes en PDF vía el ReportGenerator.
func (uc *ExportOrdersUseCase) PDF(ctx context.Context, actor authz.Actor) ([]byte, error) {
	rows, err := uc.Rows(actor)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Reporte de órdenes — %s", time.Now().Format("2006-01-02 15:04"))
	return uc.reportGen.GenerateOrdersPDF(ctx, title, rows)
}
