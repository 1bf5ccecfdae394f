package providers

import (
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
	"go.uber.org/fx"
)

// Module bundles the document renderers used by invoices and payments.
var Module = fx.Module("providers",
	pdf.Module,
)
