// Package engine computes invoice lines and totals. It performs no I/O; the
// invoice service loads the contract and room services and persists the result.
package engine

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

const RentDescription = "Monthly Rent"

type Period struct {
	Month int
	Year  int
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < 1 || p.Year > 9999 {
		return invoicedomain.ErrInvalidPeriod
	}
	return nil
}

// Start is the first day of the period month.
func (p Period) Start() date.Date {
	return date.New(p.Year, time.Month(p.Month), 1)
}

// End is the last day of the period month.
func (p Period) End() date.Date {
	return date.Of(time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC))
}

type Policy struct {
	MinorUnits   int32
	DueDayOffset *int
}

// DueDate is the period end when no offset is configured, otherwise the
// period start plus the offset in days.
func (p Policy) DueDate(period Period) date.Date {
	if p.DueDayOffset == nil {
		return period.End()
	}
	return period.Start().AddDays(*p.DueDayOffset)
}

type Mode int

const (
	// ModePlaceholder emits metered lines with zero quantity and amount.
	ModePlaceholder Mode = iota
	// ModeReadings requires one reading per metered service.
	ModeReadings
)

func (m Mode) String() string {
	if m == ModeReadings {
		return "readings"
	}
	return "plain"
}

// Service is a room service with its effective pricing.
type Service struct {
	ServiceTypeID snowflake.ID
	Name          string
	Unit          string
	Pricing       servicetypedomain.Pricing
}

type Input struct {
	MonthlyRent decimal.Decimal
	Period      Period
	Services    []Service
	Readings    []invoicedomain.Reading
	Mode        Mode
	Policy      Policy
}

type Result struct {
	Items   []invoicedomain.InvoiceItem
	Total   decimal.Decimal
	DueDate date.Date
}

// Compute validates the input and builds the invoice lines. Every validation
// runs before any line is produced.
func Compute(in Input) (Result, error) {
	if err := in.Period.Validate(); err != nil {
		return Result{}, err
	}
	if in.MonthlyRent.IsNegative() {
		return Result{}, ierr.NewError("negative monthly rent").
			WithHint("Monthly rent must not be negative").
			Mark(ierr.ErrInvalidInput)
	}

	var readings map[snowflake.ID]invoicedomain.Reading
	if in.Mode == ModeReadings {
		var err error
		if readings, err = indexReadings(in.Services, in.Readings); err != nil {
			return Result{}, err
		}
	}

	round := func(v decimal.Decimal) decimal.Decimal { return v.Round(in.Policy.MinorUnits) }
	items := make([]invoicedomain.InvoiceItem, 0, len(in.Services)+1)
	items = append(items, invoicedomain.InvoiceItem{
		Type:        invoicedomain.ItemTypeRent,
		Description: RentDescription,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   in.MonthlyRent,
		Amount:      round(in.MonthlyRent),
	})

	for _, svc := range in.Services {
		serviceTypeID := svc.ServiceTypeID
		item := invoicedomain.InvoiceItem{
			Type:          string(svc.Pricing.Category()),
			ServiceTypeID: &serviceTypeID,
			Description:   svc.Name,
			Unit:          svc.Unit,
		}
		switch pricing := svc.Pricing.(type) {
		case servicetypedomain.FixedPricing:
			item.Quantity = decimal.NewFromInt(1)
			item.UnitPrice = pricing.FixedPrice
			item.Amount = round(pricing.FixedPrice)
		case servicetypedomain.MeteredPricing:
			item.UnitPrice = pricing.PricePerUnit
			if in.Mode != ModeReadings {
				item.Quantity = decimal.Zero
				item.Amount = decimal.Zero
				break
			}
			reading := readings[svc.ServiceTypeID]
			oldIndex, newIndex := reading.OldIndex, reading.NewIndex
			item.OldIndex = &oldIndex
			item.NewIndex = &newIndex
			item.Quantity = newIndex.Sub(oldIndex)
			item.Amount = round(item.Quantity.Mul(pricing.PricePerUnit))
		}
		items = append(items, item)
	}

	total := decimal.Zero
	for i := range items {
		items[i].Position = i
		total = total.Add(items[i].Amount)
	}

	return Result{
		Items:   items,
		Total:   round(total),
		DueDate: in.Policy.DueDate(in.Period),
	}, nil
}

func indexReadings(services []Service, readings []invoicedomain.Reading) (map[snowflake.ID]invoicedomain.Reading, error) {
	metered := make(map[snowflake.ID]Service, len(services))
	for _, svc := range services {
		if _, ok := svc.Pricing.(servicetypedomain.MeteredPricing); ok {
			metered[svc.ServiceTypeID] = svc
		}
	}

	byService := make(map[snowflake.ID]invoicedomain.Reading, len(readings))
	for _, reading := range readings {
		details := map[string]any{"serviceTypeId": reading.ServiceTypeID.String()}
		svc, ok := metered[reading.ServiceTypeID]
		if !ok {
			return nil, ierr.NewErrorf("reading for unassigned service %s", reading.ServiceTypeID).
				WithHint("Reading does not match a metered service assigned to the room").
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidInput)
		}
		if _, dup := byService[reading.ServiceTypeID]; dup {
			return nil, ierr.NewErrorf("duplicate reading for service %s", reading.ServiceTypeID).
				WithHintf("More than one reading supplied for %s", svc.Name).
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidInput)
		}
		if reading.OldIndex.IsNegative() || reading.NewIndex.IsNegative() {
			return nil, ierr.NewErrorf("negative meter index for service %s", reading.ServiceTypeID).
				WithHintf("Meter indexes for %s must not be negative", svc.Name).
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidInput)
		}
		if !fitsIndexScale(reading.OldIndex) || !fitsIndexScale(reading.NewIndex) {
			details["oldIndex"] = reading.OldIndex.String()
			details["newIndex"] = reading.NewIndex.String()
			return nil, ierr.NewErrorf("meter index precision for service %s", reading.ServiceTypeID).
				WithHintf("Meter indexes for %s must have at most %d decimal places", svc.Name, invoicedomain.IndexPlaces).
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidInput)
		}
		if reading.NewIndex.LessThan(reading.OldIndex) {
			details["oldIndex"] = reading.OldIndex.String()
			details["newIndex"] = reading.NewIndex.String()
			return nil, ierr.NewErrorf("new index below old index for service %s", reading.ServiceTypeID).
				WithHintf("New index for %s must not be lower than the old index", svc.Name).
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidInput)
		}
		byService[reading.ServiceTypeID] = reading
	}

	for _, svc := range services {
		if _, ok := metered[svc.ServiceTypeID]; !ok {
			continue
		}
		if _, ok := byService[svc.ServiceTypeID]; !ok {
			return nil, ierr.NewErrorf("missing reading for service %s", svc.ServiceTypeID).
				WithHintf("A meter reading is required for %s", svc.Name).
				WithReportableDetails(map[string]any{"serviceTypeId": svc.ServiceTypeID.String()}).
				Mark(ierr.ErrMissingInput)
		}
	}
	return byService, nil
}

func fitsIndexScale(v decimal.Decimal) bool {
	return v.Equal(v.Round(invoicedomain.IndexPlaces))
}
