package environment

import "testing"

func TestLookupKnownCity(t *testing.T) {
	p := NewStaticProvider()

	f := p.Lookup("Delhi")
	if f.AQI <= 150 {
		t.Errorf("expected high AQI for Delhi, got %d", f.AQI)
	}
	if f.WaterQuality != "poor" {
		t.Errorf("expected poor water quality for Delhi, got %q", f.WaterQuality)
	}
}

func TestLookupIsTotal(t *testing.T) {
	p := NewStaticProvider()

	for _, city := range []string{"Atlantis", "", "  ", "delhi "} {
		f := p.Lookup(city)
		if f.WaterQuality == "" {
			t.Errorf("Lookup(%q) returned empty water quality", city)
		}
	}

	if p.Lookup("nowhere") != Baseline {
		t.Error("unknown city should get the baseline")
	}
}
