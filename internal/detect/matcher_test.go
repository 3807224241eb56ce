package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantDrug       domain.Drug
		wantConfidence float64
		wantOK         bool
	}{
		{
			name:           "exact name",
			text:           "WARFARIN",
			wantDrug:       domain.WARFARIN,
			wantConfidence: 0.99,
			wantOK:         true,
		},
		{
			name:           "case insensitive",
			text:           "codeine",
			wantDrug:       domain.CODEINE,
			wantConfidence: 0.99,
			wantOK:         true,
		},
		{
			name:           "name inside label text floors at 0.8",
			text:           "Codeine Phosphate Tablets BP 30mg, 28 tablets, keep out of reach of children",
			wantDrug:       domain.CODEINE,
			wantConfidence: 0.8,
			wantOK:         true,
		},
		{
			name:           "repeated mentions beat single mention",
			text:           "WARFARIN WARFARIN CODEINE",
			wantDrug:       domain.WARFARIN,
			wantConfidence: 0.8,
			wantOK:         true,
		},
		{
			name:           "equal counts prefer longer name",
			text:           "CODEINE CLOPIDOGREL",
			wantDrug:       domain.CLOPIDOGREL,
			wantConfidence: 0.8,
			wantOK:         true,
		},
		{name: "no supported drug", text: "ibuprofen 400mg"},
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drug, confidence, ok := Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDrug, drug)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
		})
	}
}

func TestMatch_ConfidenceBounds(t *testing.T) {
	for _, text := range []string{"CODEINE", "x CODEINE x", "FLUOROURACIL plus a very long tail of unrelated label text"} {
		_, confidence, ok := Match(text)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, confidence, 0.6)
		assert.LessOrEqual(t, confidence, 0.99)
	}
}
