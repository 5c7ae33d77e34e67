package planner

import (
	"math"
	"sort"

	"solenne/models"
)

const earthRadiusMiles = 3959

// ratingTolerance: two ratings this close count as equal and the venue with
// more reviews wins.
const ratingTolerance = 0.2

type Params struct {
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	RadiusMiles float64        `json:"radius"`
	Restaurants []models.Place `json:"restaurants"`
	Activities  []models.Place `json:"activities"`
}

type Distances struct {
	ToRestaurant  float64 `json:"toRestaurant"`
	ToActivity    float64 `json:"toActivity"`
	BetweenPlaces float64 `json:"betweenPlaces"`
}

type Result struct {
	Restaurant *models.Place `json:"restaurant"`
	Activity   *models.Place `json:"activity"`
	Distances  Distances     `json:"distances"`
}

// Haversine returns the great-circle distance in miles between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// BuildPlan pairs the best-rated restaurant with the nearest in-radius
// activity and computes all three pairwise distances. Pure function.
func BuildPlan(p Params) Result {
	restaurant := pickRestaurant(p.Restaurants)
	activity := pickActivity(p.Lat, p.Lng, p.RadiusMiles, p.Activities)
	return resultFor(p, restaurant, activity)
}

// BuildPlanFromIndices recomputes distances for a caller-pinned pair, e.g. a
// user swapping one venue. Out-of-range indices resolve to nil.
func BuildPlanFromIndices(p Params, restaurantIndex, activityIndex int) Result {
	var restaurant, activity *models.Place
	if restaurantIndex >= 0 && restaurantIndex < len(p.Restaurants) {
		restaurant = &p.Restaurants[restaurantIndex]
	}
	if activityIndex >= 0 && activityIndex < len(p.Activities) {
		activity = &p.Activities[activityIndex]
	}
	return resultFor(p, restaurant, activity)
}

func resultFor(p Params, restaurant, activity *models.Place) Result {
	res := Result{Restaurant: restaurant, Activity: activity}
	if restaurant != nil {
		res.Distances.ToRestaurant = Haversine(p.Lat, p.Lng, restaurant.Lat, restaurant.Lng)
	}
	if activity != nil {
		res.Distances.ToActivity = Haversine(p.Lat, p.Lng, activity.Lat, activity.Lng)
	}
	if restaurant != nil && activity != nil {
		res.Distances.BetweenPlaces = Haversine(restaurant.Lat, restaurant.Lng, activity.Lat, activity.Lng)
	}
	return res
}

// pickRestaurant sorts by rating descending with a review-count tie-break:
// whenever two ratings differ by at most the tolerance, the venue with the
// higher totalRatings ranks first.
func pickRestaurant(candidates []models.Place) *models.Place {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]models.Place, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.Rating-b.Rating) <= ratingTolerance {
			return a.TotalRatings > b.TotalRatings
		}
		return a.Rating > b.Rating
	})

	return &ranked[0]
}

// pickActivity keeps the nearest candidate strictly inside the radius.
// Ties keep the first-seen minimum.
func pickActivity(lat, lng, radiusMiles float64, candidates []models.Place) *models.Place {
	var best *models.Place
	bestDist := math.Inf(1)

	for i := range candidates {
		d := Haversine(lat, lng, candidates[i].Lat, candidates[i].Lng)
		if d < radiusMiles && d < bestDist {
			best = &candidates[i]
			bestDist = d
		}
	}
	return best
}
