package config

import "testing"

func TestLookupNormsNormalizesCode(t *testing.T) {
	direct, ok := LookupNorms("US")
	if !ok {
		t.Fatal("LookupNorms(US) returned !ok")
	}

	lower, ok := LookupNorms("  us ")
	if !ok {
		t.Fatal("LookupNorms with surrounding whitespace returned !ok")
	}
	if lower != direct {
		t.Fatalf("normalized lookup = %+v, want %+v", lower, direct)
	}
}

func TestLookupNormsUnknownFallsBack(t *testing.T) {
	n, ok := LookupNorms("ZZ")
	if ok {
		t.Fatal("unknown code reported as known")
	}
	if n.EmergencyFundMonths <= 0 || n.BaselineSavingsRate <= 0 {
		t.Fatalf("fallback norms look empty: %+v", n)
	}
}

func TestDefaultNormsSane(t *testing.T) {
	for code, n := range DefaultNorms {
		if n.IncomeTaxRate <= 0 || n.IncomeTaxRate >= 1 {
			t.Errorf("%s: IncomeTaxRate = %v out of (0,1)", code, n.IncomeTaxRate)
		}
		if n.BaselineSavingsRate <= 0 || n.BaselineSavingsRate >= 1 {
			t.Errorf("%s: BaselineSavingsRate = %v out of (0,1)", code, n.BaselineSavingsRate)
		}
		if n.EmergencyFundMonths < 3 || n.EmergencyFundMonths > 12 {
			t.Errorf("%s: EmergencyFundMonths = %v out of [3,12]", code, n.EmergencyFundMonths)
		}
	}
}
