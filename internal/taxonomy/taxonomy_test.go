package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
topics:
  - name: polity
    keywords: [parliament, "supreme court"]
  - name: economy
    keywords: [gdp, inflation]
`

func TestParse(t *testing.T) {
	tax, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tax.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(tax.Topics))
	}
	if tax.Topics[0].Name != "polity" || tax.Topics[1].Name != "economy" {
		t.Errorf("declaration order not preserved: %v", tax.Names())
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no topics", "topics: []"},
		{"empty name", "topics:\n  - name: \"\"\n    keywords: [a]"},
		{"no keywords", "topics:\n  - name: polity"},
		{"duplicate", "topics:\n  - name: polity\n    keywords: [a]\n  - name: polity\n    keywords: [b]"},
		{"malformed yaml", "topics: {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadFallsBackWhenFileMissing(t *testing.T) {
	tax, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), []byte(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tax.Topics) != 2 {
		t.Errorf("expected fallback taxonomy, got %d topics", len(tax.Topics))
	}
}

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	custom := "topics:\n  - name: custom\n    keywords: [something]"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path, []byte(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tax.Topics) != 1 || tax.Topics[0].Name != "custom" {
		t.Errorf("expected file taxonomy, got %v", tax.Names())
	}
}

func TestContains(t *testing.T) {
	tax, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if !tax.Contains("polity") {
		t.Error("expected polity to be present")
	}
	if tax.Contains("astrology") {
		t.Error("did not expect astrology")
	}
}
