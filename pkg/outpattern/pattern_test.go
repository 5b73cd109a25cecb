package outpattern

import "testing"

func TestParseMarkerSubstitution(t *testing.T) {
	p, err := Parse("out/{}.ext")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := p.With(7), "out/7.ext"; got != want {
		t.Errorf("With(7) = %q, want %q", got, want)
	}
}

func TestParseMarkerWithPrefixAndSuffix(t *testing.T) {
	p, err := Parse("variants/seed-{}-case.bin")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := p.With(3), "variants/seed-3-case.bin"; got != want {
		t.Errorf("With(3) = %q, want %q", got, want)
	}
	if got, want := p.Dir(), "variants"; got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestParseRejectsMissingMarker(t *testing.T) {
	if _, err := Parse("out/name.ext"); err == nil {
		t.Error("expected an error for a pattern with no '{}' marker")
	}
}

func TestParseRejectsMissingDirectory(t *testing.T) {
	if _, err := Parse("{}.ext"); err == nil {
		t.Error("expected an error for a pattern with no directory component")
	}
}

func TestParseRejectsTrailingSlashWithNoMarker(t *testing.T) {
	if _, err := Parse("out/"); err == nil {
		t.Error("expected an error for a pattern whose filename has no '{}' marker")
	}
}
