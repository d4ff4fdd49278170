package location

// knownCodes are curated exact coordinates for specific ZIP codes.
var knownCodes = map[string]GeoPoint{
	"02108": {Latitude: 42.3576, Longitude: -71.0649, Name: "Boston, MA", Country: DefaultCountry},
	"10001": {Latitude: 40.7506, Longitude: -73.9972, Name: "New York, NY", Country: DefaultCountry},
	"19104": {Latitude: 39.9566, Longitude: -75.1899, Name: "Philadelphia, PA", Country: DefaultCountry},
	"19107": {Latitude: 39.9523, Longitude: -75.1638, Name: "Philadelphia, PA", Country: DefaultCountry},
	"20001": {Latitude: 38.9101, Longitude: -77.0147, Name: "Washington, DC", Country: DefaultCountry},
	"33101": {Latitude: 25.7791, Longitude: -80.1978, Name: "Miami, FL", Country: DefaultCountry},
	"60601": {Latitude: 41.8858, Longitude: -87.6181, Name: "Chicago, IL", Country: DefaultCountry},
	"73301": {Latitude: 30.2672, Longitude: -97.7431, Name: "Austin, TX", Country: DefaultCountry},
	"90210": {Latitude: 34.0901, Longitude: -118.4065, Name: "Beverly Hills, CA", Country: DefaultCountry},
	"94103": {Latitude: 37.7725, Longitude: -122.4147, Name: "San Francisco, CA", Country: DefaultCountry},
	"98101": {Latitude: 47.6114, Longitude: -122.3305, Name: "Seattle, WA", Country: DefaultCountry},
}

const prefixWidth = 3

// regionalPrefixes map the first three ZIP digits to the centre of the
// region they serve.
var regionalPrefixes = map[string]GeoPoint{
	"021": {Latitude: 42.3601, Longitude: -71.0589, Name: "Boston, MA", Country: DefaultCountry},
	"100": {Latitude: 40.7128, Longitude: -74.0060, Name: "New York, NY", Country: DefaultCountry},
	"191": {Latitude: 39.9526, Longitude: -75.1652, Name: "Philadelphia, PA", Country: DefaultCountry},
	"200": {Latitude: 38.9072, Longitude: -77.0369, Name: "Washington, DC", Country: DefaultCountry},
	"303": {Latitude: 33.7490, Longitude: -84.3880, Name: "Atlanta, GA", Country: DefaultCountry},
	"331": {Latitude: 25.7617, Longitude: -80.1918, Name: "Miami, FL", Country: DefaultCountry},
	"482": {Latitude: 42.3314, Longitude: -83.0458, Name: "Detroit, MI", Country: DefaultCountry},
	"554": {Latitude: 44.9778, Longitude: -93.2650, Name: "Minneapolis, MN", Country: DefaultCountry},
	"606": {Latitude: 41.8781, Longitude: -87.6298, Name: "Chicago, IL", Country: DefaultCountry},
	"631": {Latitude: 38.6270, Longitude: -90.1994, Name: "St. Louis, MO", Country: DefaultCountry},
	"752": {Latitude: 32.7767, Longitude: -96.7970, Name: "Dallas, TX", Country: DefaultCountry},
	"770": {Latitude: 29.7604, Longitude: -95.3698, Name: "Houston, TX", Country: DefaultCountry},
	"787": {Latitude: 30.2672, Longitude: -97.7431, Name: "Austin, TX", Country: DefaultCountry},
	"802": {Latitude: 39.7392, Longitude: -104.9903, Name: "Denver, CO", Country: DefaultCountry},
	"850": {Latitude: 33.4484, Longitude: -112.0740, Name: "Phoenix, AZ", Country: DefaultCountry},
	"891": {Latitude: 36.1699, Longitude: -115.1398, Name: "Las Vegas, NV", Country: DefaultCountry},
	"900": {Latitude: 34.0522, Longitude: -118.2437, Name: "Los Angeles, CA", Country: DefaultCountry},
	"941": {Latitude: 37.7749, Longitude: -122.4194, Name: "San Francisco, CA", Country: DefaultCountry},
	"972": {Latitude: 45.5152, Longitude: -122.6784, Name: "Portland, OR", Country: DefaultCountry},
	"981": {Latitude: 47.6062, Longitude: -122.3321, Name: "Seattle, WA", Country: DefaultCountry},
}
