package planner

import (
	"math"
	"testing"

	"solenne/models"
)

func TestPickRestaurantReviewTieBreak(t *testing.T) {
	p := Params{
		Restaurants: []models.Place{
			{ID: "a", Name: "A", Rating: 4.5, TotalRatings: 10},
			{ID: "b", Name: "B", Rating: 4.4, TotalRatings: 50},
		},
	}

	res := BuildPlan(p)
	if res.Restaurant == nil {
		t.Fatal("expected a restaurant, got nil")
	}
	if res.Restaurant.ID != "b" {
		t.Fatalf("expected B (tie-break on review count), got %s", res.Restaurant.ID)
	}
}

func TestPickRestaurantRatingWinsOutsideTolerance(t *testing.T) {
	p := Params{
		Restaurants: []models.Place{
			{ID: "a", Rating: 4.8, TotalRatings: 5},
			{ID: "b", Rating: 4.4, TotalRatings: 500},
		},
	}

	res := BuildPlan(p)
	if res.Restaurant.ID != "a" {
		t.Fatalf("expected A (rating gap beyond tolerance), got %s", res.Restaurant.ID)
	}
}

func TestActivityWithinRadius(t *testing.T) {
	origin := models.Place{Lat: 40.7128, Lng: -74.0060} // NYC

	p := Params{
		Lat:         origin.Lat,
		Lng:         origin.Lng,
		RadiusMiles: 5,
		Activities: []models.Place{
			{ID: "near", Lat: 40.730, Lng: -73.995},
			{ID: "far", Lat: 40.6413, Lng: -73.7781}, // JFK, ~13mi out
		},
	}

	res := BuildPlan(p)
	if res.Activity == nil {
		t.Fatal("expected an activity, got nil")
	}
	if res.Activity.ID != "near" {
		t.Fatalf("expected the near activity, got %s", res.Activity.ID)
	}
	if res.Distances.ToActivity >= p.RadiusMiles {
		t.Fatalf("activity distance %.2f must be strictly under radius %.2f", res.Distances.ToActivity, p.RadiusMiles)
	}
}

func TestActivityNoneInRadius(t *testing.T) {
	p := Params{
		Lat: 40.7128, Lng: -74.0060,
		RadiusMiles: 1,
		Activities: []models.Place{
			{ID: "far", Lat: 40.6413, Lng: -73.7781},
		},
	}

	res := BuildPlan(p)
	if res.Activity != nil {
		t.Fatalf("expected nil activity, got %s", res.Activity.ID)
	}
	if res.Distances.ToActivity != 0 || res.Distances.BetweenPlaces != 0 {
		t.Fatal("distances involving a nil side must be zero")
	}
}

func TestZeroRadiusSelectsNothing(t *testing.T) {
	p := Params{
		Lat: 40.7128, Lng: -74.0060,
		RadiusMiles: 0,
		Activities: []models.Place{
			{ID: "same", Lat: 40.7128, Lng: -74.0060},
		},
	}

	// distance 0 is not strictly less than radius 0
	if res := BuildPlan(p); res.Activity != nil {
		t.Fatalf("expected nil activity at radius 0, got %s", res.Activity.ID)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, pr := range pairs {
		ab := Haversine(pr[0], pr[1], pr[2], pr[3])
		ba := Haversine(pr[2], pr[3], pr[0], pr[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("haversine not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestBuildPlanFromIndicesOutOfRange(t *testing.T) {
	p := Params{
		Lat: 40.7, Lng: -74.0,
		Restaurants: []models.Place{{ID: "r0", Lat: 40.71, Lng: -74.01}},
		Activities:  []models.Place{{ID: "a0", Lat: 40.72, Lng: -74.02}},
	}

	res := BuildPlanFromIndices(p, 5, 0)
	if res.Restaurant != nil {
		t.Fatal("out-of-range restaurant index should resolve to nil")
	}
	if res.Activity == nil || res.Activity.ID != "a0" {
		t.Fatal("valid activity index should still resolve")
	}
	if res.Distances.ToRestaurant != 0 || res.Distances.BetweenPlaces != 0 {
		t.Fatal("distances for the nil side must be zero")
	}

	res = BuildPlanFromIndices(p, 0, 0)
	if res.Restaurant == nil || res.Activity == nil {
		t.Fatal("valid indices should resolve both venues")
	}
	if res.Distances.BetweenPlaces <= 0 {
		t.Fatal("expected a positive distance between distinct venues")
	}
}
