package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
)

func TestGoogleLabeler(t *testing.T) {
	tests := []struct {
		name      string
		addresses []geocoder.Address
		err       error
		want      string
		wantErr   bool
	}{
		{
			name:      "City and state",
			addresses: []geocoder.Address{{City: "Philadelphia", State: "Pennsylvania", Country: "United States"}},
			want:      "Philadelphia, Pennsylvania",
		},
		{
			name:      "County when no city",
			addresses: []geocoder.Address{{County: "Marin County", State: "California"}},
			want:      "Marin County, California",
		},
		{
			name:      "Formatted address fallback",
			addresses: []geocoder.Address{{FormattedAddress: "Atlantic Ocean"}},
			want:      "Atlantic Ocean",
		},
		{
			name:    "No addresses",
			wantErr: true,
		},
		{
			name:    "API error",
			err:     errors.New("REQUEST_DENIED"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GoogleLabeler{
				name: "google-geocoding",
				reverse: func(loc geocoder.Location) ([]geocoder.Address, error) {
					if loc.Latitude != 39.9523 || loc.Longitude != -75.1638 {
						t.Errorf("unexpected location %+v", loc)
					}
					return tt.addresses, tt.err
				},
			}

			got, err := g.Label(context.Background(), 39.9523, -75.1638)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Label() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoogleLabelerCanceled(t *testing.T) {
	g := &GoogleLabeler{reverse: func(geocoder.Location) ([]geocoder.Address, error) {
		t.Fatal("reverse should not be called")
		return nil, nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Label(ctx, 0, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
