package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stepanukha/Weather-App/internal/location"
)

// promptCoordinates asks for a latitude and longitude on in. An empty answer
// keeps the matching coordinate of def; anything unparsable or out of range
// falls back to def entirely.
func promptCoordinates(in io.Reader, out io.Writer, def location.GeoPoint) (float64, float64) {
	r := bufio.NewReader(in)

	fmt.Fprintf(out, "Enter your location coordinates (or press Enter for %s):\n", def.Name)
	fmt.Fprintf(out, "Latitude (e.g., %.4f): ", def.Latitude)
	latStr := readLine(r)
	fmt.Fprintf(out, "Longitude (e.g., %.4f): ", def.Longitude)
	lonStr := readLine(r)

	lat, errLat := parseOr(latStr, def.Latitude)
	lon, errLon := parseOr(lonStr, def.Longitude)
	if errLat != nil || errLon != nil || !location.ValidCoordinates(lat, lon) {
		fmt.Fprintf(out, "Invalid coordinates. Using %s as default.\n", def.Name)
		return def.Latitude, def.Longitude
	}
	return lat, lon
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func parseOr(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
