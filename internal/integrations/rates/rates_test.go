package rates

import "testing"

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<rates date="2026-02-10">
	<rate currency="USD">1450.25</rate>
	<rate currency="EUR">1560.00</rate>
</rates>`

func TestParseReferenceRate(t *testing.T) {
	rate, err := ParseReferenceRate([]byte(sampleFeed), "USD")
	if err != nil {
		t.Fatalf("ParseReferenceRate: %v", err)
	}
	if rate != 1450.25 {
		t.Errorf("rate: got %f, want 1450.25", rate)
	}
}

func TestParseReferenceRateMissingCurrency(t *testing.T) {
	if _, err := ParseReferenceRate([]byte(sampleFeed), "GBP"); err == nil {
		t.Error("expected error for missing currency")
	}
}

func TestParseReferenceRateBadXML(t *testing.T) {
	if _, err := ParseReferenceRate([]byte("<rates><rate"), "USD"); err == nil {
		t.Error("expected error for malformed XML")
	}
}

func TestParseReferenceRateBadValue(t *testing.T) {
	feed := `<rates><rate currency="USD">abc</rate></rates>`
	if _, err := ParseReferenceRate([]byte(feed), "USD"); err == nil {
		t.Error("expected error for non-numeric rate")
	}
}
