package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stepanukha/Weather-App/internal/advisor"
)

func TestPromptCoordinates(t *testing.T) {
	def := advisor.DefaultLocation

	tests := []struct {
		name       string
		input      string
		wantLat    float64
		wantLon    float64
		wantNotice bool
	}{
		{"enter keeps default", "\n\n", def.Latitude, def.Longitude, false},
		{"explicit coordinates", "40.7128\n-74.0060\n", 40.7128, -74.0060, false},
		{"only longitude", "\n-80.5\n", def.Latitude, -80.5, false},
		{"garbage falls back", "north\n-74\n", def.Latitude, def.Longitude, true},
		{"out of range falls back", "95\n10\n", def.Latitude, def.Longitude, true},
		{"closed stdin", "", def.Latitude, def.Longitude, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			lat, lon := promptCoordinates(strings.NewReader(tt.input), &out, def)
			if lat != tt.wantLat || lon != tt.wantLon {
				t.Errorf("got (%v, %v), want (%v, %v)", lat, lon, tt.wantLat, tt.wantLon)
			}
			if got := strings.Contains(out.String(), "Invalid coordinates"); got != tt.wantNotice {
				t.Errorf("notice printed = %v, want %v; output %q", got, tt.wantNotice, out.String())
			}
		})
	}
}
