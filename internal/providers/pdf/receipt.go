package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *PDFProvider) RenderReceipt(ctx context.Context, doc ReceiptDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(8, doc.HouseName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(26,
		col.New(6).Add(
			text.New("Receipt number: "+doc.ReceiptNumber, props.Text{Top: 0}),
			text.New("Invoice code: "+doc.InvoiceCode, props.Text{Top: 5}),
			text.New("Billing period: "+doc.Period, props.Text{Top: 10}),
			text.New("Date paid: "+doc.PaidOn, props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Received from", props.Text{Style: fontstyle.Bold}),
			text.New(doc.TenantName, props.Text{Top: 5}),
			text.New("Room "+doc.RoomCode, props.Text{Top: 10}),
		),
	)

	m.AddRow(12,
		text.NewCol(12, p.money(doc.Amount, doc.MinorUnits, doc.Currency)+" paid on "+doc.PaidOn, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   3,
		}),
	)

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	rows := [][2]string{
		{"Method", doc.Method},
		{"Transaction code", doc.TransactionCode},
		{"Recorded by", doc.RecordedBy},
		{"Invoice total", p.money(doc.InvoiceTotal, doc.MinorUnits, doc.Currency)},
		{"Remaining after payment", p.money(doc.Remaining, doc.MinorUnits, doc.Currency)},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		m.AddRow(8,
			text.NewCol(6, row[0], cell),
			text.NewCol(6, row[1], cellRight),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}
