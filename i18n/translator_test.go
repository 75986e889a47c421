package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"name": "DiskID", "value": "5000", "max": "4095"}

	// default is en
	if msg := T("too_big", data); msg != "Invalid DiskID 5000. Must be at most 4095" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("too_big", data); msg == "Invalid DiskID 5000. Must be at most 4095" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	got := Format("{name} and {other}", map[string]string{"name": "x"})
	if got != "x and {other}" {
		t.Fatalf("got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "U:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "U:required" {
		t.Fatalf("got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("no_match", nil); msg != "The value does not match any type" {
		t.Fatalf("got %q", msg)
	}
}
