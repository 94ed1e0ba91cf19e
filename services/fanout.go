package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// providerTimeout bounds each provider call independently; a slow provider
// costs its own slot, never the whole search.
const providerTimeout = 20 * time.Second

type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Travelers     int
	Budget        float64
}

// SearchBundle is everything the fan-out produced. Any slice may hold
// fallback data; Source is "estimated" when at least one provider fell back.
type SearchBundle struct {
	Outbound   []Flight   `json:"outbound"`
	Return     []Flight   `json:"return"`
	Hotels     []Hotel    `json:"hotels"`
	Activities []Activity `json:"activities"`
	Source     string     `json:"source"`
}

// SearchAll issues the outbound-flight, return-flight, hotel and activity
// searches concurrently. The four calls have no data dependency on each
// other; any subset may fail or time out and is individually replaced with
// generated estimates so planning always has something to work with.
func SearchAll(ctx context.Context, p SearchParams) SearchBundle {
	client := GetAmadeusClient()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		bundle   SearchBundle
		degraded bool
	)

	fellBack := func(what string, err error) {
		log.Printf("⚠️  %s search using fallback data: %v", what, err)
		mu.Lock()
		degraded = true
		mu.Unlock()
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		flights, err := liveFlights(ctx, client, p.Origin, p.Destination, p.DepartureDate, p.Travelers)
		if err != nil {
			fellBack("outbound flight", err)
			flights = GenerateFlightsFallback(p.Origin, p.Destination, p.DepartureDate)
		}
		mu.Lock()
		bundle.Outbound = flights
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		flights, err := liveFlights(ctx, client, p.Destination, p.Origin, p.ReturnDate, p.Travelers)
		if err != nil {
			fellBack("return flight", err)
			flights = GenerateFlightsFallback(p.Destination, p.Origin, p.ReturnDate)
		}
		mu.Lock()
		bundle.Return = flights
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		hotels, err := liveHotels(ctx, client, p.Destination, p.DepartureDate, p.ReturnDate, p.Travelers)
		if err != nil {
			fellBack("hotel", err)
			hotels = GenerateHotelsFallback(p.Destination)
		}
		mu.Lock()
		bundle.Hotels = hotels
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		acts, err := liveActivities(ctx, client, p.Destination)
		if err != nil {
			fellBack("activity", err)
			acts = GenerateActivitiesFallback(p.Destination, p.Budget)
		}
		mu.Lock()
		bundle.Activities = acts
		mu.Unlock()
	}()

	wg.Wait()

	bundle.Source = "live"
	if degraded {
		bundle.Source = "estimated"
	} else {
		log.Printf("✅ Amadeus: %d+%d flights, %d hotels, %d activities",
			len(bundle.Outbound), len(bundle.Return), len(bundle.Hotels), len(bundle.Activities))
	}
	return bundle
}

func liveFlights(ctx context.Context, c *AmadeusClient, origin, dest, date string, adults int) ([]Flight, error) {
	return underTimeout(ctx, func() ([]Flight, error) {
		if !c.Configured() {
			return nil, fmt.Errorf("amadeus not configured")
		}
		flights, err := c.SearchFlights(origin, dest, date, adults)
		if err == nil && len(flights) == 0 {
			err = fmt.Errorf("no flights returned for %s-%s", origin, dest)
		}
		return flights, err
	})
}

func liveHotels(ctx context.Context, c *AmadeusClient, dest, checkIn, checkOut string, adults int) ([]Hotel, error) {
	return underTimeout(ctx, func() ([]Hotel, error) {
		if !c.Configured() {
			return nil, fmt.Errorf("amadeus not configured")
		}
		hotels, err := c.SearchHotels(dest, checkIn, checkOut, adults)
		if err == nil && len(hotels) == 0 {
			err = fmt.Errorf("no hotels returned for %s", dest)
		}
		return hotels, err
	})
}

func liveActivities(ctx context.Context, c *AmadeusClient, dest string) ([]Activity, error) {
	return underTimeout(ctx, func() ([]Activity, error) {
		if !c.Configured() {
			return nil, fmt.Errorf("amadeus not configured")
		}
		lat, lon, ok := CityCoords(dest)
		if !ok {
			return nil, fmt.Errorf("no coordinates known for %s", dest)
		}
		acts, err := c.SearchActivities(lat, lon)
		if err == nil && len(acts) == 0 {
			err = fmt.Errorf("no activities returned for %s", dest)
		}
		return acts, err
	})
}

// underTimeout runs one provider call under its own deadline. The provider
// goroutine may outlive the deadline (the HTTP client enforces its own
// limit); the result is simply discarded.
func underTimeout[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{v, err}
	}()

	tctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	select {
	case <-tctx.Done():
		var zero T
		return zero, tctx.Err()
	case o := <-ch:
		return o.val, o.err
	}
}
