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

func (p *PDFProvider) RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, doc.HouseName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)
	m.AddRow(8, text.NewCol(12, doc.HouseAddress, props.Text{Size: 9}))

	m.AddRow(26,
		col.New(6).Add(
			text.New("Invoice code: "+doc.InvoiceCode, props.Text{Top: 0}),
			text.New("Billing period: "+doc.Period, props.Text{Top: 5}),
			text.New("Date of issue: "+doc.IssueDate, props.Text{Top: 10}),
			text.New("Date due: "+doc.DueDate, props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(doc.TenantName, props.Text{Top: 5}),
			text.New(doc.TenantPhone, props.Text{Top: 10}),
			text.New("Room "+doc.RoomCode, props.Text{Top: 15}),
		),
	)

	m.AddRow(10,
		text.NewCol(12, p.money(doc.Remaining, doc.MinorUnits, doc.Currency)+" due "+doc.DueDate+" ("+doc.Status+")", props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Top:   2,
		}),
	)

	header := props.Text{Style: fontstyle.Bold, Size: 9}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
	m.AddRow(8,
		text.NewCol(4, "Description", header),
		text.NewCol(2, "Old / New", headerRight),
		text.NewCol(2, "Qty", headerRight),
		text.NewCol(2, "Unit price", headerRight),
		text.NewCol(2, "Amount", headerRight),
	)

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	for _, line := range doc.Lines {
		indexes := ""
		if line.OldIndex != nil && line.NewIndex != nil {
			indexes = p.quantity(*line.OldIndex) + " / " + p.quantity(*line.NewIndex)
		}
		qty := p.quantity(line.Quantity)
		if line.Unit != "" {
			qty += " " + line.Unit
		}
		m.AddRow(8,
			text.NewCol(4, line.Description, cell),
			text.NewCol(2, indexes, cellRight),
			text.NewCol(2, qty, cellRight),
			text.NewCol(2, p.money(line.UnitPrice, doc.MinorUnits, ""), cellRight),
			text.NewCol(2, p.money(line.Amount, doc.MinorUnits, ""), cellRight),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", cell),
		text.NewCol(2, p.money(doc.Total, doc.MinorUnits, doc.Currency), cellRight),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Paid", cell),
		text.NewCol(2, p.money(doc.Paid, doc.MinorUnits, doc.Currency), cellRight),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Amount due", header),
		text.NewCol(2, p.money(doc.Remaining, doc.MinorUnits, doc.Currency), headerRight),
	)

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}
