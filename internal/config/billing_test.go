package config

import (
	"testing"
)

func TestValidateBillingConfig(t *testing.T) {
	offset := 10
	badOffset := -1

	cases := []struct {
		name    string
		cfg     BillingConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultBillingConfig()},
		{name: "offset", cfg: BillingConfig{Currency: "VND", DueDayOffset: &offset}},
		{name: "empty currency", cfg: BillingConfig{}, wantErr: true},
		{name: "negative offset", cfg: BillingConfig{Currency: "VND", DueDayOffset: &badOffset}, wantErr: true},
		{name: "too many minor units", cfg: BillingConfig{Currency: "USD", MinorUnits: 6}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateBillingConfig(tc.cfg)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestStaticBillingConfigHolder(t *testing.T) {
	holder := NewStaticBillingConfig(DefaultBillingConfig())
	if got := holder.Get().Currency; got != "VND" {
		t.Fatalf("expected VND, got %s", got)
	}
}
