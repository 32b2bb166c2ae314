package similarity

import "testing"

func TestSeenBefore(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		dup    bool
	}{
		{
			name:   "identical headlines",
			first:  "Parliament passes landmark education bill",
			second: "Parliament passes landmark education bill",
			dup:    true,
		},
		{
			name:   "punctuation and case differences",
			first:  "RBI holds repo rate at 6.5%",
			second: "rbi holds repo rate at 6 5",
			dup:    true,
		},
		{
			name:   "lightly reworded same story",
			first:  "Parliament passes landmark education bill",
			second: "Parliament passes the landmark education bill",
			dup:    true,
		},
		{
			name:   "distinct stories sharing words",
			first:  "RBI holds repo rate steady",
			second: "RBI raises repo rate",
			dup:    false,
		},
		{
			name:   "numbered headlines are distinct",
			first:  "Story 1",
			second: "Story 2",
			dup:    false,
		},
		{
			name:   "unrelated headlines",
			first:  "Parliament passes landmark education bill",
			second: "Monsoon rains flood coastal districts of Kerala",
			dup:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0.7, 3)
			if c.SeenBefore(tt.first) {
				t.Fatalf("first text flagged as duplicate")
			}
			if got := c.SeenBefore(tt.second); got != tt.dup {
				t.Errorf("SeenBefore(%q) = %v, want %v", tt.second, got, tt.dup)
			}
		})
	}
}

func TestSeenBeforeRecordsNovelTexts(t *testing.T) {
	c := New(0.7, 3)
	c.SeenBefore("Parliament passes landmark education bill")
	c.SeenBefore("Monsoon rains flood coastal districts of Kerala")

	if !c.SeenBefore("Monsoon rains flood the coastal districts of Kerala") {
		t.Error("near-duplicate of second recorded text not flagged")
	}
}

func TestEmptyTextsAreDuplicates(t *testing.T) {
	c := New(0.7, 3)
	c.SeenBefore("")
	if !c.SeenBefore("   ") {
		t.Error("two empty texts should match")
	}
}
