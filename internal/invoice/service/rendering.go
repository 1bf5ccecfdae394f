package service

import (
	"context"
	"fmt"

	"github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
)

func (s *Service) RenderPDF(ctx context.Context, id string) (domain.RenderedPDF, error) {
	invoiceID, err := parseID(id, domain.ErrInvalidInvoiceID)
	if err != nil {
		return domain.RenderedPDF{}, err
	}
	invoice, err := s.load(ctx, invoiceID)
	if err != nil {
		return domain.RenderedPDF{}, err
	}

	doc := pdf.InvoiceDocument{
		InvoiceCode: invoice.Code,
		Period:      fmt.Sprintf("%02d/%04d", invoice.PeriodMonth, invoice.PeriodYear),
		IssueDate:   invoice.CreatedAt.Format("2006-01-02"),
		DueDate:     invoice.DueDate.String(),
		Status:      string(invoice.Status),
		Currency:    invoice.Currency,
		MinorUnits:  s.billing.Get().MinorUnits,
		Total:       invoice.TotalAmount,
		Paid:        invoice.PaidAmount,
		Remaining:   invoice.RemainingAmount,
	}
	for _, item := range invoice.Items {
		doc.Lines = append(doc.Lines, pdf.Line{
			Description: item.Description,
			Unit:        item.Unit,
			OldIndex:    item.OldIndex,
			NewIndex:    item.NewIndex,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	contract, err := s.contractRepo.FindByID(ctx, s.db, invoice.ContractID)
	if err != nil {
		return domain.RenderedPDF{}, err
	}
	if contract != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, s.db, contract.TenantID)
		if err != nil {
			return domain.RenderedPDF{}, err
		}
		if tenant != nil {
			doc.TenantName = tenant.FullName
			doc.TenantPhone = tenant.Phone
		}
		room, err := s.roomRepo.FindByID(ctx, s.db, contract.RoomID)
		if err != nil {
			return domain.RenderedPDF{}, err
		}
		if room != nil {
			doc.RoomCode = room.Code
			house, err := s.houserepo.FindByID(ctx, room.BoardingHouseID)
			if err != nil {
				return domain.RenderedPDF{}, err
			}
			if house != nil {
				doc.HouseName = house.Name
				doc.HouseAddress = house.Address
			}
		}
	}

	content, err := s.pdf.RenderInvoice(ctx, doc)
	if err != nil {
		return domain.RenderedPDF{}, err
	}
	return domain.RenderedPDF{FileName: invoice.Code + ".pdf", Content: content}, nil
}
