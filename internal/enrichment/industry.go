// internal/enrichment/industry.go
package enrichment

import "strings"

// Industry is a coarse business category used to tune search queries and
// the set of leadership titles worth looking for.
type Industry string

const (
	IndustryRestaurant    Industry = "restaurant"
	IndustrySalon         Industry = "salon"
	IndustryAutomotive    Industry = "automotive"
	IndustryRetail        Industry = "retail"
	IndustryManufacturing Industry = "manufacturing"
	IndustryLegal         Industry = "legal"
	IndustryHealthcare    Industry = "healthcare"
	IndustryGeneral       Industry = "general"
)

type industryRule struct {
	industry Industry
	keywords []string
}

// industryRules is evaluated in order. A name matching keywords from more
// than one category resolves to the earlier-listed one.
var industryRules = []industryRule{
	{IndustryRestaurant, []string{
		"restaurant", "pizza", "pizzeria", "cafe", "coffee", "grill", "diner",
		"bistro", "bakery", "kitchen", "taco", "sushi", "bbq", "burger",
		"deli", "pub", "eatery", "catering",
	}},
	{IndustrySalon, []string{
		"salon", "spa", "barber", "nails", "hair", "beauty", "stylist",
	}},
	{IndustryAutomotive, []string{
		"auto", "automotive", "car wash", "tire", "mechanic", "motors",
		"collision", "transmission", "body shop", "garage",
	}},
	{IndustryRetail, []string{
		"store", "shop", "boutique", "market", "outlet", "emporium",
	}},
	{IndustryManufacturing, []string{
		"manufacturing", "industries", "fabrication", "machining", "welding",
		"factory",
	}},
	{IndustryLegal, []string{
		"law", "attorney", "attorneys", "legal", "paralegal",
	}},
	{IndustryHealthcare, []string{
		"dental", "dentistry", "medical", "clinic", "chiropractic", "health",
		"pharmacy", "veterinary", "pediatric", "orthodontic",
	}},
}

// industryTitles maps each industry to leadership titles ordered by how
// strongly they indicate the actual decision maker for that kind of business.
var industryTitles = map[Industry][]string{
	IndustryRestaurant:    {"owner", "chef owner", "proprietor", "executive chef", "general manager"},
	IndustrySalon:         {"owner", "salon owner", "master stylist", "proprietor"},
	IndustryAutomotive:    {"owner", "shop owner", "general manager", "president"},
	IndustryRetail:        {"owner", "store owner", "proprietor", "general manager"},
	IndustryManufacturing: {"owner", "ceo", "president", "plant manager", "founder"},
	IndustryLegal:         {"managing partner", "senior partner", "founding partner", "principal"},
	IndustryHealthcare:    {"owner", "practice owner", "medical director", "principal"},
	IndustryGeneral:       {"owner", "ceo", "president", "founder", "managing partner"},
}

// DetectIndustry classifies a business name by case-insensitive substring
// match against the keyword taxonomy. Unmatched names fall back to general.
func DetectIndustry(businessName string) Industry {
	name := strings.ToLower(businessName)
	for _, rule := range industryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.industry
			}
		}
	}
	return IndustryGeneral
}

// TitlesFor returns the leadership titles to target for an industry.
func TitlesFor(industry Industry) []string {
	if titles, ok := industryTitles[industry]; ok {
		return titles
	}
	return industryTitles[IndustryGeneral]
}
