package langid

import "testing"

func TestDetect_English(t *testing.T) {
	id := New()

	text := "We build enterprise software for logistics companies across North America, " +
		"helping fleets schedule deliveries and track shipments in real time."
	code, confidence := id.Detect(text)

	if code != "en" {
		t.Errorf("Detect() code = %q, want en", code)
	}
	if confidence <= 0 || confidence > 1 {
		t.Errorf("confidence = %f, want in (0, 1]", confidence)
	}
}

func TestDetect_German(t *testing.T) {
	id := New()

	text := "Wir entwickeln Unternehmenssoftware für Logistikunternehmen und helfen " +
		"Flotten dabei, Lieferungen zu planen und Sendungen in Echtzeit zu verfolgen."
	code, _ := id.Detect(text)

	if code != "de" {
		t.Errorf("Detect() code = %q, want de", code)
	}
}

func TestDetect_ShortTextYieldsNothing(t *testing.T) {
	id := New()

	code, confidence := id.Detect("hello world")
	if code != "" || confidence != 0 {
		t.Errorf("Detect(short) = (%q, %f), want empty", code, confidence)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	id := New()

	code, confidence := id.Detect("   ")
	if code != "" || confidence != 0 {
		t.Errorf("Detect(blank) = (%q, %f), want empty", code, confidence)
	}
}
