package services

import (
	"fmt"
	"time"
)

// ─── Fallback (when Amadeus is not configured or fails) ──────────────────────

// GenerateFlightsFallback produces plausible one-way flight data without an
// API key. Results are labeled as estimated by the caller.
func GenerateFlightsFallback(origin, destination, departureDate string) []Flight {
	type routeInfo struct {
		basePrice float64
		duration  int // minutes
	}

	routes := map[string]routeInfo{
		"TAS-IST": {280, 300}, "IST-TAS": {280, 300},
		"TAS-DXB": {320, 210}, "DXB-TAS": {320, 210},
		"TAS-FRA": {450, 420}, "FRA-TAS": {450, 420},
		"TAS-LHR": {500, 480}, "LHR-TAS": {500, 480},
		"BER-CDG": {120, 105}, "CDG-BER": {120, 105},
		"BER-LHR": {100, 100}, "LHR-BER": {100, 100},
		"IST-DXB": {250, 240}, "DXB-IST": {250, 240},
		"LHR-JFK": {450, 480}, "JFK-LHR": {450, 420},
		"JFK-CDG": {480, 430}, "CDG-JFK": {480, 490},
		"LHR-CDG": {80, 75}, "CDG-LHR": {80, 75},
		"FRA-IST": {150, 165}, "IST-FRA": {150, 165},
	}

	key := origin + "-" + destination
	info, ok := routes[key]
	if !ok {
		info = routeInfo{350, 240}
	}

	// Five airline options across price tiers
	type airlineOption struct {
		name     string
		code     string
		priceMod float64
		stops    int
	}
	options := []airlineOption{
		{"Turkish Airlines", "TK", 1.00, 0},
		{"Lufthansa", "LH", 1.15, 0},
		{"Emirates", "EK", 1.30, 0},
		{"Wizz Air", "W6", 0.65, 1},
		{"FlyDubai", "FZ", 0.80, 1},
	}

	depDate, _ := time.Parse("2006-01-02", departureDate)

	flights := make([]Flight, 0, len(options))
	for i, opt := range options {
		price := info.basePrice * opt.priceMod
		price = float64(int(price/5) * 5)

		dur := info.duration
		if opt.stops > 0 {
			dur += 90
		}

		dep := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), 6+i*3, 0, 0, 0, time.UTC)

		flights = append(flights, Flight{
			Price:           price,
			Airline:         opt.name,
			AirlineCode:     opt.code,
			FlightNumber:    fmt.Sprintf("%s%d", opt.code, 1200+i*37),
			Origin:          origin,
			Destination:     destination,
			DepartureTime:   dep.Format("2006-01-02T15:04:05"),
			ArrivalTime:     dep.Add(time.Duration(dur) * time.Minute).Format("2006-01-02T15:04:05"),
			DurationMinutes: dur,
			Stops:           opt.stops,
			Currency:        "USD",
		})
	}
	return flights
}

// GenerateHotelsFallback produces plausible hotel data without an API key.
func GenerateHotelsFallback(destination string) []Hotel {
	cityHotels := map[string][]Hotel{
		"IST": {
			{Name: "Grand Hyatt Istanbul", Price: 180, Rating: 4.7, Location: "Beyoglu, Istanbul", Lat: 41.0370, Lon: 28.9870, Currency: "USD"},
			{Name: "Hilton Istanbul Bosphorus", Price: 165, Rating: 4.5, Location: "Besiktas, Istanbul", Lat: 41.0430, Lon: 29.0094, Currency: "USD"},
			{Name: "Sultan Ahmet Palace Hotel", Price: 95, Rating: 4.3, Location: "Sultanahmet, Istanbul", Lat: 41.0054, Lon: 28.9768, Currency: "USD"},
			{Name: "Ibis Istanbul Taksim", Price: 75, Rating: 4.0, Location: "Taksim, Istanbul", Lat: 41.0369, Lon: 28.9850, Currency: "USD"},
		},
		"PAR": {
			{Name: "Hotel Le Marais", Price: 220, Rating: 4.6, Location: "Le Marais, Paris", Lat: 48.8590, Lon: 2.3626, Currency: "USD"},
			{Name: "Pullman Paris Tour Eiffel", Price: 280, Rating: 4.5, Location: "7th Arr., Paris", Lat: 48.8551, Lon: 2.2930, Currency: "USD"},
			{Name: "Ibis Paris Montmartre", Price: 95, Rating: 4.0, Location: "Montmartre, Paris", Lat: 48.8867, Lon: 2.3431, Currency: "USD"},
			{Name: "Generator Paris", Price: 55, Rating: 3.8, Location: "10th Arr., Paris", Lat: 48.8768, Lon: 2.3707, Currency: "USD"},
		},
		"LON": {
			{Name: "Hilton London Tower Bridge", Price: 180, Rating: 4.4, Location: "Tower Bridge, London", Lat: 51.5055, Lon: -0.0754, Currency: "USD"},
			{Name: "Premier Inn London City", Price: 95, Rating: 4.1, Location: "City of London", Lat: 51.5155, Lon: -0.0922, Currency: "USD"},
			{Name: "The Hoxton Shoreditch", Price: 165, Rating: 4.5, Location: "Shoreditch, London", Lat: 51.5265, Lon: -0.0799, Currency: "USD"},
			{Name: "citizenM London Bankside", Price: 145, Rating: 4.4, Location: "Bankside, London", Lat: 51.5052, Lon: -0.1019, Currency: "USD"},
		},
		"DXB": {
			{Name: "JW Marriott Marquis", Price: 220, Rating: 4.6, Location: "Business Bay, Dubai", Lat: 25.1857, Lon: 55.2612, Currency: "USD"},
			{Name: "Rove Downtown", Price: 95, Rating: 4.3, Location: "Downtown Dubai", Lat: 25.1935, Lon: 55.2843, Currency: "USD"},
			{Name: "Atlantis The Palm", Price: 380, Rating: 4.7, Location: "Palm Jumeirah, Dubai", Lat: 25.1304, Lon: 55.1171, Currency: "USD"},
		},
		"FRA": {
			{Name: "Marriott Frankfurt City Center", Price: 155, Rating: 4.4, Location: "Sachsenhausen, Frankfurt", Lat: 50.1034, Lon: 8.6805, Currency: "USD"},
			{Name: "Motel One Frankfurt-Römer", Price: 89, Rating: 4.3, Location: "Römer, Frankfurt", Lat: 50.1106, Lon: 8.6820, Currency: "USD"},
			{Name: "Steigenberger Frankfurter Hof", Price: 280, Rating: 4.6, Location: "Kaiserplatz, Frankfurt", Lat: 50.1100, Lon: 8.6770, Currency: "USD"},
		},
		"BER": {
			{Name: "Hotel Adlon Kempinski", Price: 320, Rating: 4.8, Location: "Mitte, Berlin", Lat: 52.5161, Lon: 13.3800, Currency: "USD"},
			{Name: "Radisson Blu Berlin", Price: 150, Rating: 4.4, Location: "Alexanderplatz, Berlin", Lat: 52.5194, Lon: 13.4025, Currency: "USD"},
			{Name: "Michelberger Hotel", Price: 130, Rating: 4.5, Location: "Friedrichshain, Berlin", Lat: 52.5009, Lon: 13.4514, Currency: "USD"},
		},
	}

	if hotels, ok := cityHotels[airportToCity(destination)]; ok {
		return hotels
	}

	// Generic fallback
	return []Hotel{
		{Name: "Grand City Hotel", Price: 150, Rating: 4.5, Location: "City Center, " + destination, Currency: "USD"},
		{Name: "Business Inn", Price: 95, Rating: 4.2, Location: "Business District, " + destination, Currency: "USD"},
		{Name: "Boutique Residence", Price: 120, Rating: 4.4, Location: "Arts District, " + destination, Currency: "USD"},
		{Name: "Economy Suites", Price: 65, Rating: 3.9, Location: "Near Airport, " + destination, Currency: "USD"},
	}
}

// GenerateActivitiesFallback produces a plausible activity pool without an
// API key, one option per category.
func GenerateActivitiesFallback(destination string, budget float64) []Activity {
	if budget <= 0 {
		budget = 5000
	}
	base := budget * 0.3 / 5

	lat, lon, _ := CityCoords(destination)

	catalog := []struct {
		category string
		name     string
		minutes  int
		tags     []string
	}{
		{"Cultural", "Museum Tour", 120, []string{"history", "art", "culture"}},
		{"Adventure", "City Walking Tour", 180, []string{"exploration", "exercise", "sightseeing"}},
		{"Food", "Local Food Tour", 150, []string{"cuisine", "cultural", "social"}},
		{"Nature", "Park Visit", 90, []string{"nature", "relaxation", "photography"}},
		{"Entertainment", "Local Show", 120, []string{"entertainment", "culture", "evening"}},
	}

	acts := make([]Activity, 0, len(catalog))
	for i, c := range catalog {
		acts = append(acts, Activity{
			Name:            fmt.Sprintf("%s in %s", c.name, destination),
			Description:     fmt.Sprintf("Experience a %s in %s", c.name, destination),
			Category:        c.category,
			Tags:            c.tags,
			DurationMinutes: c.minutes,
			Price:           base * (0.5 + float64(i)*0.2),
			Rating:          4.0 + float64(i)*0.1,
			Location:        fmt.Sprintf("%s %s District", destination, c.category),
			Lat:             lat,
			Lon:             lon,
			MinGroup:        1,
			MaxGroup:        12,
			Currency:        "USD",
		})
	}
	return acts
}
