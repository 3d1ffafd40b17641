package services

import (
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"math"
	"sort"
	"time"

	"github.com/phuslu/log"
)

// ActivityDuration is the fixed length of every scheduled visit, in minutes.
const ActivityDuration = 60

// Mealtime windows on the plan's day, in scheduling order.
var mealTimes = []struct {
	name      string
	startHour int
	startMin  int
	endHour   int
	endMin    int
}{
	{"lunch", 12, 0, 14, 0},
	{"dinner", 18, 0, 21, 0},
}

// Candidate is a place enriched with the cost estimate used for budgeting.
type Candidate struct {
	models.Place
	EstimatedCost float64
}

// MealSlot is a mealtime window clipped to the plan window.
type MealSlot struct {
	Meal  string
	Start time.Time
	End   time.Time
}

// PlanInputs is everything a strategy needs to schedule one day.
type PlanInputs struct {
	Candidates       []Candidate
	HotelLat         float64
	HotelLng         float64
	Start            time.Time
	End              time.Time
	Budget           float64
	MaxTravelMinutes float64
	MealSlots        []MealSlot
}

// PlannerStrategy turns a candidate pool into ordered, non-overlapping stops
// inside the window, with total cost within budget. The second return value is
// the travel back to the hotel in minutes, zero when the return leg does not
// fit or no travel happened.
type PlannerStrategy interface {
	Plan(inputs PlanInputs) ([]models.ItineraryStop, int)
}

// EstimateCost approximates a visit cost from Google's price_level (0 to 4).
// Unknown and missing levels cost 20.
func EstimateCost(priceLevel *int) float64 {
	if priceLevel == nil {
		return 20
	}
	switch *priceLevel {
	case 0:
		return 0
	case 1:
		return 10
	case 2:
		return 30
	case 3:
		return 60
	case 4:
		return 100
	default:
		return 20
	}
}

// MealSlotsInWindow returns the mealtime slots overlapping the window, clipped
// to it, in chronological order. Meal windows ending past midnight roll over
// to the next day.
func MealSlotsInWindow(start, end time.Time) []MealSlot {
	var slots []MealSlot
	for _, mt := range mealTimes {
		mealStart := atClock(start, mt.startHour, mt.startMin)
		mealEnd := atClock(start, mt.endHour, mt.endMin)
		if mealEnd.Before(mealStart) {
			mealEnd = mealEnd.AddDate(0, 0, 1)
		}

		if mealStart.Before(end) && mealEnd.After(start) {
			slots = append(slots, MealSlot{
				Meal:  mt.name,
				Start: maxTime(mealStart, start),
				End:   minTime(mealEnd, end),
			})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

// GreedyMealPlanner schedules the highest-rated feasible activity again and
// again until the next meal window, seats the best reachable restaurant inside
// each meal window, then fills the rest of the day the same way.
type GreedyMealPlanner struct{}

func NewGreedyMealPlanner() *GreedyMealPlanner {
	return &GreedyMealPlanner{}
}

func (p *GreedyMealPlanner) Plan(inputs PlanInputs) ([]models.ItineraryStop, int) {
	var stops []models.ItineraryStop

	pool := make([]Candidate, len(inputs.Candidates))
	copy(pool, inputs.Candidates)

	slots := make([]MealSlot, len(inputs.MealSlots))
	copy(slots, inputs.MealSlots)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })

	currentTime := inputs.Start
	currentLat, currentLng := inputs.HotelLat, inputs.HotelLng
	remaining := inputs.Budget

	for _, slot := range slots {
		// Activities until the meal window opens.
		for {
			available := slot.Start.Sub(currentTime).Minutes()
			if available < ActivityDuration+utils.MinTravelMinutes {
				break
			}
			idx, travel, ok := bestCandidate(pool, currentLat, currentLng, remaining, available, inputs.MaxTravelMinutes, false)
			if !ok {
				break
			}
			pick := pool[idx]
			arrival := currentTime.Add(minutes(travel))
			if arrival.Add(minutes(ActivityDuration)).After(slot.Start) {
				break
			}

			stops = append(stops, models.ItineraryStop{
				PlaceID:       pick.PlaceID,
				Name:          pick.Name,
				Category:      pick.Category,
				TravelMinutes: int(math.Round(travel)),
				StartTime:     arrival,
				EndTime:       arrival.Add(minutes(ActivityDuration)),
				EstimatedCost: pick.EstimatedCost,
			})
			currentLat, currentLng = pick.Lat, pick.Lng
			currentTime = arrival.Add(minutes(ActivityDuration))
			remaining -= pick.EstimatedCost
			pool = append(pool[:idx], pool[idx+1:]...)
		}

		// Seat the meal. The restaurant must be reachable before the window
		// opens; eating starts when the window does.
		idx, travel, ok := bestCandidate(pool, currentLat, currentLng, remaining, slot.End.Sub(currentTime).Minutes(), inputs.MaxTravelMinutes, true)
		if !ok {
			log.Warn().Str("meal", slot.Meal).Msg("No feasible restaurant for meal slot")
			continue
		}
		pick := pool[idx]
		arrival := currentTime.Add(minutes(travel))
		if arrival.After(slot.Start) {
			log.Warn().Str("meal", slot.Meal).Str("restaurant", pick.Name).Msg("Restaurant not reachable before the meal window, skipping meal")
			continue
		}

		mealEnd := slot.Start.Add(minutes(ActivityDuration))
		if mealEnd.After(slot.End) {
			mealEnd = slot.End
		}
		stops = append(stops, models.ItineraryStop{
			PlaceID:       pick.PlaceID,
			Name:          pick.Name,
			Category:      pick.Category,
			Meal:          slot.Meal,
			TravelMinutes: int(math.Round(travel)),
			StartTime:     slot.Start,
			EndTime:       mealEnd,
			EstimatedCost: pick.EstimatedCost,
		})
		currentLat, currentLng = pick.Lat, pick.Lng
		currentTime = mealEnd
		remaining -= pick.EstimatedCost
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	// Fill what is left of the day with activities.
	for len(pool) > 0 {
		available := inputs.End.Sub(currentTime).Minutes()
		if available < ActivityDuration+utils.MinTravelMinutes {
			break
		}
		idx, travel, ok := bestCandidate(pool, currentLat, currentLng, remaining, available, inputs.MaxTravelMinutes, false)
		if !ok {
			break
		}
		pick := pool[idx]
		arrival := currentTime.Add(minutes(travel))
		if arrival.Add(minutes(ActivityDuration)).After(inputs.End) {
			break
		}

		stops = append(stops, models.ItineraryStop{
			PlaceID:       pick.PlaceID,
			Name:          pick.Name,
			Category:      pick.Category,
			TravelMinutes: int(math.Round(travel)),
			StartTime:     arrival,
			EndTime:       arrival.Add(minutes(ActivityDuration)),
			EstimatedCost: pick.EstimatedCost,
		})
		currentLat, currentLng = pick.Lat, pick.Lng
		currentTime = arrival.Add(minutes(ActivityDuration))
		remaining -= pick.EstimatedCost
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	// Head back to the hotel when the window still allows it.
	returnMinutes := 0
	if currentLat != inputs.HotelLat || currentLng != inputs.HotelLng {
		travel := utils.TravelTimeMinutes(currentLat, currentLng, inputs.HotelLat, inputs.HotelLng)
		if !currentTime.Add(minutes(travel)).After(inputs.End) {
			returnMinutes = int(math.Round(travel))
		} else {
			log.Warn().Msg("Not enough time to return to the hotel before the end time")
		}
	}

	return stops, returnMinutes
}

// bestCandidate picks the highest-rated candidate of the wanted kind that fits
// the remaining budget, the available minutes (travel plus the visit), and the
// per-leg travel ceiling. Ties go to the cheaper candidate, then the lower
// place_id. Returns the pool index and the travel minutes to reach it.
func bestCandidate(pool []Candidate, fromLat, fromLng float64, budget, availableMin, maxTravel float64, wantRestaurant bool) (int, float64, bool) {
	best := -1
	var bestTravel float64

	for i, c := range pool {
		if wantRestaurant != (c.Category == models.CategoryRestaurant) {
			continue
		}
		if c.EstimatedCost > budget {
			continue
		}
		travel := utils.TravelTimeMinutes(fromLat, fromLng, c.Lat, c.Lng)
		if maxTravel > 0 && travel > maxTravel {
			continue
		}
		if travel+ActivityDuration > availableMin {
			continue
		}
		if best == -1 || betterCandidate(c, pool[best]) {
			best = i
			bestTravel = travel
		}
	}

	if best == -1 {
		return -1, 0, false
	}
	return best, bestTravel, true
}

func betterCandidate(a, b Candidate) bool {
	ra, rb := ratingOf(a), ratingOf(b)
	if ra != rb {
		return ra > rb
	}
	if a.EstimatedCost != b.EstimatedCost {
		return a.EstimatedCost < b.EstimatedCost
	}
	return a.PlaceID < b.PlaceID
}

func ratingOf(c Candidate) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func atClock(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
