package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/location"
)

// adviser is the part of *advisor.Service the CLI needs.
type adviser interface {
	Advise(ctx context.Context, req advisor.Request) (advisor.Report, error)
}

// once prints a single text report to out. Without location flags it
// prompts on in the way the interactive tool always has.
func once(ctx context.Context, args []string, def location.GeoPoint, svc adviser, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("once", flag.ContinueOnError)
	fs.SetOutput(out)
	zip := fs.String("zip", "", "postal code to look up")
	country := fs.String("country", "US", "ISO country code for -zip")
	lat := fs.Float64("lat", 0, "latitude in degrees")
	lon := fs.Float64("lon", 0, "longitude in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, prompt := onceRequest(fs, *zip, *country, *lat, *lon)
	if prompt {
		la, lo := promptCoordinates(in, out, def)
		if la != def.Latitude || lo != def.Longitude {
			req.Latitude, req.Longitude = &la, &lo
		}
		fmt.Fprintf(out, "\nFetching weather data for coordinates: %.4f°N, %.4f°E...\n", la, lo)
	}

	report, err := svc.Advise(ctx, req)
	if err != nil {
		return err
	}
	return advisor.WriteText(out, report)
}

// onceRequest maps parsed flags to a request. Coordinates win over -zip;
// with neither the caller has to prompt.
func onceRequest(fs *flag.FlagSet, zip, country string, lat, lon float64) (advisor.Request, bool) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	req := advisor.Request{PostalCode: zip, CountryCode: country}
	switch {
	case set["lat"] || set["lon"]:
		req.Latitude, req.Longitude = optional(set["lat"], lat), optional(set["lon"], lon)
	case zip == "":
		return req, true
	}
	return req, false
}

func optional(isSet bool, v float64) *float64 {
	if !isSet {
		return nil
	}
	return &v
}
