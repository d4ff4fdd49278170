// Package outfit turns a day's weather summary into clothing advice.
package outfit

import (
	"strings"

	"github.com/stepanukha/Weather-App/internal/common"
	"github.com/stepanukha/Weather-App/internal/weather"
)

// Recommendation is the clothing advice for one day.
type Recommendation struct {
	Top         string   `json:"top"`
	Bottom      string   `json:"bottom"`
	OuterLayer  string   `json:"outer_layer"`
	Accessories []string `json:"accessories"`
}

const (
	rainThresholdIn  = 0.1
	windThresholdMph = 15

	umbrella    = "Umbrella"
	rainJacket  = "Rain jacket"
	windbreaker = "Windbreaker"
	windHat     = "Hat (to prevent it from blowing away)"
)

// tempTier is one row of the temperature table. A tier applies when the
// average temperature is strictly above its threshold.
type tempTier struct {
	above       float64
	top         string
	bottom      string
	outerLayer  string
	accessories []string
}

// Ordered warmest first; the first matching row wins.
var tempTiers = []tempTier{
	{above: 80, top: "No sleeves, ITS HOT!", bottom: "Shorts or light pants"},
	{above: 65, top: "Light long-sleeve shirt", bottom: "Light pants or jeans"},
	{above: 50, top: "Long-sleeve shirt or light sweater", bottom: "Pants or jeans", outerLayer: "Light jacket"},
	{above: 35, top: "Sweater or fleece", bottom: "Warm pants", outerLayer: "Jacket", accessories: []string{"Light gloves"}},
}

// coldest applies at or below the last threshold, and to anything that
// fails every comparison (NaN included).
var coldest = tempTier{
	top:         "Thermal shirt and heavy sweater",
	bottom:      "Thermal pants or heavy jeans",
	outerLayer:  "Heavy winter coat",
	accessories: []string{"Gloves", "Scarf", "Hat"},
}

// Recommend maps a weather summary to clothing. The temperature row is
// picked first, then the rain overlay and finally the wind overlay are
// applied on top of it. Recommend has no side effects.
func Recommend(s weather.Summary) Recommendation {
	rec := fromTier(tierFor(s.AvgTemp))

	if s.MaxPrecip > rainThresholdIn {
		rec.Accessories = append(rec.Accessories, umbrella)
		if common.ContainsFold(rec.OuterLayer, "jacket") {
			rec.OuterLayer = "Waterproof " + strings.ToLower(rec.OuterLayer)
		} else {
			rec.OuterLayer = rainJacket
		}
	}

	if s.MaxWind > windThresholdMph {
		if rec.OuterLayer == "" {
			rec.OuterLayer = windbreaker
		}
		rec.Accessories = append(rec.Accessories, windHat)
	}

	return rec
}

func tierFor(avgTemp float64) tempTier {
	for _, t := range tempTiers {
		if avgTemp > t.above {
			return t
		}
	}
	return coldest
}

func fromTier(t tempTier) Recommendation {
	// Fresh slice so callers never share the table's backing array.
	accessories := make([]string, len(t.accessories), len(t.accessories)+2)
	copy(accessories, t.accessories)

	return Recommendation{
		Top:         t.top,
		Bottom:      t.bottom,
		OuterLayer:  t.outerLayer,
		Accessories: accessories,
	}
}
