// internal/enrichment/industry_test.go
package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIndustry(t *testing.T) {
	tests := []struct {
		name     string
		business string
		want     Industry
	}{
		{"restaurant keyword", "Tony's Pizza", IndustryRestaurant},
		{"case insensitive", "PIZZA PALACE", IndustryRestaurant},
		{"salon", "Bella Hair Salon", IndustrySalon},
		{"automotive", "Joe's Auto Repair", IndustryAutomotive},
		{"retail", "Main Street Boutique", IndustryRetail},
		{"manufacturing", "Precision Fabrication Inc", IndustryManufacturing},
		{"legal", "Smith & Associates Law Firm", IndustryLegal},
		{"healthcare", "Lakeside Dental Group", IndustryHealthcare},
		{"no match falls back to general", "Acme Corp", IndustryGeneral},
		{"empty name", "", IndustryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIndustry(tt.business))
		})
	}
}

func TestDetectIndustry_PriorityOrder(t *testing.T) {
	// Matches both salon and automotive keywords. The earlier-listed
	// category wins.
	assert.Equal(t, IndustrySalon, DetectIndustry("Auto Body Salon"))
}

func TestTitlesFor(t *testing.T) {
	assert.Contains(t, TitlesFor(IndustryRestaurant), "chef owner")
	assert.Contains(t, TitlesFor(IndustryLegal), "managing partner")

	general := TitlesFor(IndustryGeneral)
	assert.Equal(t, []string{"owner", "ceo", "president", "founder", "managing partner"}, general)

	// Unknown industry falls back to the general set.
	assert.Equal(t, general, TitlesFor(Industry("unknown")))
}
