package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ─── Provider result types ────────────────────────────────────────────────────

// Flight is a single-leg flight search result. Times are ISO strings exactly
// as the provider returned them; the adapter layer anchors them in the origin
// zone before anything reaches the planner.
type Flight struct {
	Price           float64 `json:"price"`
	Airline         string  `json:"airline"`
	AirlineCode     string  `json:"airline_code,omitempty"`
	FlightNumber    string  `json:"flight_number,omitempty"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	Currency        string  `json:"currency,omitempty"`
}

type Hotel struct {
	Name     string  `json:"name"`
	HotelID  string  `json:"hotel_id,omitempty"`
	Price    float64 `json:"price"` // per night
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"` // 0 = unknown
	Price           float64  `json:"price"`
	Rating          float64  `json:"rating,omitempty"`
	Location        string   `json:"location,omitempty"`
	Lat             float64  `json:"lat,omitempty"`
	Lon             float64  `json:"lon,omitempty"`
	MinGroup        int      `json:"min_group,omitempty"`
	MaxGroup        int      `json:"max_group,omitempty"`
	Currency        string   `json:"currency,omitempty"`
}

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

var amadeusClient *AmadeusClient

func InitAmadeus() {
	env := os.Getenv("AMADEUS_ENV")
	baseURL := "https://api.amadeus.com" // production
	if env == "" || env == "test" {
		baseURL = "https://test.api.amadeus.com" // free test environment
	}

	amadeusClient = &AmadeusClient{
		clientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		clientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if amadeusClient.clientID == "" || amadeusClient.clientSecret == "" {
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — searches will use fallback data")
		return
	}

	// Pre-warm the token
	if err := amadeusClient.refreshToken(); err != nil {
		log.Printf("⚠️  Amadeus token pre-warm failed: %v", err)
	} else {
		log.Println("✅ Amadeus API authenticated")
	}
}

func GetAmadeusClient() *AmadeusClient {
	return amadeusClient
}

func (c *AmadeusClient) Configured() bool {
	return c != nil && c.clientID != ""
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequest("POST",
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %v", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken() (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) doRequest(method, path string, body []byte) ([]byte, error) {
	token, err := c.getToken()
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights searches one-way flights via the Amadeus Flight Offers Search
// API. Outbound and return legs are searched independently so either can fail
// on its own.
func (c *AmadeusClient) SearchFlights(origin, destination, departureDate string, adults int) ([]Flight, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&adults=%d&max=6&currencyCode=USD",
		url.QueryEscape(origin),
		url.QueryEscape(destination),
		url.QueryEscape(departureDate),
		adults,
	)

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	return parseFlightOffers(body)
}

type amadeusFlightOffersResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
}

type amadeusFlightOffer struct {
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string           `json:"duration"`
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

func parseFlightOffers(data []byte) ([]Flight, error) {
	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	flights := make([]Flight, 0, len(resp.Data))

	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 {
			continue
		}

		price := parsePrice(offer.Price.GrandTotal)
		if price <= 0 {
			continue
		}

		leg := offer.Itineraries[0]
		if len(leg.Segments) == 0 {
			continue
		}

		airlineCode := leg.Segments[0].CarrierCode
		if airlineCode == "" && len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		first := leg.Segments[0]
		last := leg.Segments[len(leg.Segments)-1]

		flights = append(flights, Flight{
			Price:           price,
			Airline:         airlineName(airlineCode),
			AirlineCode:     airlineCode,
			FlightNumber:    airlineCode + first.Number,
			Origin:          first.Departure.IataCode,
			Destination:     last.Arrival.IataCode,
			DepartureTime:   first.Departure.At,
			ArrivalTime:     last.Arrival.At,
			DurationMinutes: parseISODurationMinutes(leg.Duration),
			Stops:           len(leg.Segments) - 1,
			Currency:        offer.Price.Currency,
		})
	}

	return flights, nil
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels searches hotels via the Amadeus Hotel List + Hotel Offers
// APIs, carrying the list's coordinates through so the scheduler can estimate
// the airport transfer.
func (c *AmadeusClient) SearchHotels(cityCode, checkIn, checkOut string, adults int) ([]Hotel, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	listed, err := c.getHotelsByCity(cityCode)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}
	if len(listed) == 0 {
		return nil, fmt.Errorf("no hotels found for city %s", cityCode)
	}

	// Limit to the first 20 IDs to stay under rate limits.
	ids := make([]string, 0, 20)
	coords := make(map[string][2]float64, 20)
	for _, h := range listed {
		if len(ids) == 20 {
			break
		}
		ids = append(ids, h.HotelID)
		coords[h.HotelID] = [2]float64{h.GeoCode.Latitude, h.GeoCode.Longitude}
	}

	return c.getHotelOffers(ids, coords, checkIn, checkOut, adults)
}

type amadeusListedHotel struct {
	HotelID string `json:"hotelId"`
	Name    string `json:"name"`
	GeoCode struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoCode"`
}

func (c *AmadeusClient) getHotelsByCity(cityCode string) ([]amadeusListedHotel, error) {
	// Amadeus keys hotel search by city code, not airport code.
	path := fmt.Sprintf("/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(airportToCity(cityCode)))

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []amadeusListedHotel `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}
	return resp.Data, nil
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				Lines    []string `json:"lines"`
				CityName string   `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelOffers(hotelIDs []string, coords map[string][2]float64, checkIn, checkOut string, adults int) ([]Hotel, error) {
	path := fmt.Sprintf("/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=%d&roomQuantity=1&currency=USD&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")),
		url.QueryEscape(checkIn),
		url.QueryEscape(checkOut),
		adults,
	)

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var resp amadeusHotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	hotels := make([]Hotel, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		price := parsePrice(item.Offers[0].Price.Total)
		if price <= 0 {
			continue
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = item.Hotel.CityCode
		}

		h := Hotel{
			Name:     item.Hotel.Name,
			HotelID:  item.Hotel.HotelID,
			Price:    price,
			Rating:   parseRating(item.Hotel.Rating),
			Location: location,
			Address:  strings.Join(item.Hotel.Address.Lines, ", "),
			Currency: item.Offers[0].Price.Currency,
		}
		if xy, ok := coords[h.HotelID]; ok {
			h.Lat, h.Lon = xy[0], xy[1]
		}
		hotels = append(hotels, h)
	}

	return hotels, nil
}

// ─── Activity Search ──────────────────────────────────────────────────────────

// SearchActivities searches things to do via the Amadeus Tours and Activities
// API, keyed by destination coordinates.
func (c *AmadeusClient) SearchActivities(lat, lon float64) ([]Activity, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}
	if lat == 0 && lon == 0 {
		return nil, fmt.Errorf("no destination coordinates for activity search")
	}

	path := fmt.Sprintf("/v1/shopping/activities?latitude=%.4f&longitude=%.4f&radius=10", lat, lon)

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("activity search failed: %w", err)
	}

	var resp struct {
		Data []struct {
			Name             string `json:"name"`
			ShortDescription string `json:"shortDescription"`
			Rating           string `json:"rating"`
			MinimumDuration  string `json:"minimumDuration"`
			GeoCode          struct {
				Latitude  float64 `json:"latitude,string"`
				Longitude float64 `json:"longitude,string"`
			} `json:"geoCode"`
			Price struct {
				Amount       string `json:"amount"`
				CurrencyCode string `json:"currencyCode"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse activities: %w", err)
	}

	acts := make([]Activity, 0, len(resp.Data))
	for _, a := range resp.Data {
		if a.Name == "" {
			continue
		}
		acts = append(acts, Activity{
			Name:            a.Name,
			Description:     a.ShortDescription,
			DurationMinutes: parseISODurationMinutes(a.MinimumDuration),
			Price:           parsePrice(a.Price.Amount),
			Rating:          parseRating(a.Rating),
			Lat:             a.GeoCode.Latitude,
			Lon:             a.GeoCode.Longitude,
			Currency:        a.Price.CurrencyCode,
		})
		if len(acts) == 12 {
			break
		}
	}
	return acts, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parseISODurationMinutes converts an ISO 8601 duration (PT5H30M) to minutes.
// Unparseable input yields 0, which downstream layers treat as unknown.
func parseISODurationMinutes(iso string) int {
	s := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(iso)), "PT")
	if s == "" {
		return 0
	}
	minutes := 0
	if i := strings.Index(s, "H"); i >= 0 {
		if h, err := strconv.Atoi(s[:i]); err == nil {
			minutes += h * 60
		}
		s = s[i+1:]
	}
	if i := strings.Index(s, "M"); i >= 0 {
		if m, err := strconv.Atoi(s[:i]); err == nil {
			minutes += m
		}
	}
	return minutes
}

func parsePrice(s string) float64 {
	var price float64
	fmt.Sscanf(s, "%f", &price)
	return price
}

func parseRating(s string) float64 {
	if s == "" {
		return 4.0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r <= 0 {
		return 4.0
	}
	// Amadeus returns star ratings 1-5
	if r > 5 {
		r = 5
	}
	return r
}

// airportToCity maps airport IATA codes to city codes for hotel search
func airportToCity(airport string) string {
	mapping := map[string]string{
		"LHR": "LON", "LGW": "LON", "STN": "LON", "LTN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"BER": "BER", "SXF": "BER",
		"FCO": "ROM", "CIA": "ROM",
		"NRT": "TYO", "HND": "TYO",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport // fallback: use as-is
}

// cityCoords carries rough center coordinates for activity search and
// transfer estimation when live geocoding is unavailable.
var cityCoords = map[string][2]float64{
	"IST": {41.0082, 28.9784},
	"CDG": {48.8566, 2.3522}, "PAR": {48.8566, 2.3522},
	"LHR": {51.5074, -0.1278}, "LON": {51.5074, -0.1278},
	"DXB": {25.2048, 55.2708},
	"FRA": {50.1109, 8.6821},
	"BER": {52.5200, 13.4050},
	"JFK": {40.7128, -74.0060}, "NYC": {40.7128, -74.0060},
	"TAS": {41.2995, 69.2401},
	"NRT": {35.6762, 139.6503}, "TYO": {35.6762, 139.6503},
	"SIN": {1.3521, 103.8198},
	"BKK": {13.7563, 100.5018},
}

// CityCoords returns rough destination-center coordinates for a code, with a
// second return reporting whether the code is known.
func CityCoords(code string) (float64, float64, bool) {
	if xy, ok := cityCoords[airportToCity(code)]; ok {
		return xy[0], xy[1], true
	}
	if xy, ok := cityCoords[code]; ok {
		return xy[0], xy[1], true
	}
	return 0, 0, false
}

// airlineName returns full airline name from IATA code
func airlineName(code string) string {
	names := map[string]string{
		"TK": "Turkish Airlines",
		"LH": "Lufthansa",
		"AF": "Air France",
		"BA": "British Airways",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"PC": "Pegasus Airlines",
		"FR": "Ryanair",
		"U2": "EasyJet",
		"W6": "Wizz Air",
		"FZ": "FlyDubai",
		"HY": "Uzbekistan Airways",
		"UA": "United Airlines",
		"AA": "American Airlines",
		"DL": "Delta Air Lines",
		"KL": "KLM",
		"IB": "Iberia",
		"SQ": "Singapore Airlines",
		"NH": "ANA",
		"JL": "Japan Airlines",
		"EY": "Etihad Airways",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
