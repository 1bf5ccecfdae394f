package masking

import "testing"

func TestMaskPersonal(t *testing.T) {
	out := MaskPersonal(map[string]any{
		"tenantPhone":    "0901234567",
		"identityNumber": "012345678901",
		"contractCode":   "CT-2024-001",
		"nested":         map[string]any{"email": "a@b.vn"},
		"amount":         3175000,
	})

	if out["tenantPhone"] != "****4567" {
		t.Fatalf("expected masked phone, got %v", out["tenantPhone"])
	}
	if out["identityNumber"] != "****8901" {
		t.Fatalf("expected masked identity, got %v", out["identityNumber"])
	}
	if out["contractCode"] != "CT-2024-001" {
		t.Fatalf("expected contract code untouched, got %v", out["contractCode"])
	}
	if nested := out["nested"].(map[string]any); nested["email"] != "****b.vn" {
		t.Fatalf("expected nested email masked, got %v", nested["email"])
	}
	if out["amount"] != 3175000 {
		t.Fatalf("expected amount untouched")
	}
}
