package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/payment/domain"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
)

func (s *Service) RenderReceipt(ctx context.Context, id string) (domain.Receipt, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, payment.InvoiceID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if invoice == nil {
		return domain.Receipt{}, domain.ErrInvoiceNotFound
	}

	// Snowflake ids grow with time, so earlier payments have smaller ids.
	siblings, err := s.repo.List(ctx, s.db, domain.ListFilter{InvoiceID: invoice.ID})
	if err != nil {
		return domain.Receipt{}, err
	}
	paidSoFar := decimal.Zero
	for _, p := range siblings {
		if p.ID <= payment.ID {
			paidSoFar = paidSoFar.Add(p.PaidAmount)
		}
	}

	doc := pdf.ReceiptDocument{
		ReceiptNumber:   payment.ReceiptNumber,
		InvoiceCode:     invoice.Code,
		Period:          fmt.Sprintf("%02d/%04d", invoice.PeriodMonth, invoice.PeriodYear),
		PaidOn:          payment.PaymentDate.Format("2006-01-02"),
		Method:          string(payment.Method),
		TransactionCode: payment.TransactionCode,
		RecordedBy:      payment.RecordedBy,
		Currency:        invoice.Currency,
		MinorUnits:      s.billing.Get().MinorUnits,
		Amount:          payment.PaidAmount,
		InvoiceTotal:    invoice.TotalAmount,
		Remaining:       invoicedomain.Remaining(invoice.TotalAmount, paidSoFar),
	}

	contract, err := s.contractRepo.FindByID(ctx, s.db, invoice.ContractID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if contract != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, s.db, contract.TenantID)
		if err != nil {
			return domain.Receipt{}, err
		}
		if tenant != nil {
			doc.TenantName = tenant.FullName
		}
		room, err := s.roomRepo.FindByID(ctx, s.db, contract.RoomID)
		if err != nil {
			return domain.Receipt{}, err
		}
		if room != nil {
			doc.RoomCode = room.Code
			house, err := s.houserepo.FindByID(ctx, room.BoardingHouseID)
			if err != nil {
				return domain.Receipt{}, err
			}
			if house != nil {
				doc.HouseName = house.Name
			}
		}
	}

	content, err := s.pdf.RenderReceipt(ctx, doc)
	if err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{FileName: payment.ReceiptNumber + ".pdf", Content: content}, nil
}
