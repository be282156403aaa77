package itinerary

import (
	"math/rand/v2"
	"sync"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Allocation modes accepted in configuration.
const (
	ModeEvenSplit        = "even"
	ModeCategoryBalanced = "category"
)

// categoryDayFloor is the minimum number of spots the category allocator tries to give each day.
const categoryDayFloor = 3

// DayColors is the cyclic palette used to color each day.
var DayColors = []string{
	"#FF3B30", // red
	"#007AFF", // blue
	"#34C759", // green
	"#FF9500", // orange
	"#AF52DE", // purple
	"#FF2D92", // pink
	"#5AC8FA", // sky
	"#FFCC00", // yellow
}

// ColorForDay returns the palette color for a 1-based day number.
func ColorForDay(day int) string {
	return DayColors[(day-1)%len(DayColors)]
}

// Allocator distributes spots across the days of a trip.
type Allocator interface {
	Allocate(city string, days int, spots []types.Spot) types.TravelPlan
	Mode() string
}

var (
	_ Allocator = (*EvenSplitAllocator)(nil)
	_ Allocator = (*CategoryBalancedAllocator)(nil)
)

// EvenSplitAllocator slices the input into ceil(n/days) contiguous chunks in input order.
type EvenSplitAllocator struct{}

func NewEvenSplitAllocator() *EvenSplitAllocator {
	return &EvenSplitAllocator{}
}

func (a *EvenSplitAllocator) Mode() string { return ModeEvenSplit }

func (a *EvenSplitAllocator) Allocate(city string, days int, spots []types.Spot) types.TravelPlan {
	plan := types.TravelPlan{City: city, Days: days, Schedule: []types.DaySchedule{}}
	n := len(spots)
	if days < 1 || n == 0 {
		return plan
	}

	perDay := (n + days - 1) / days
	for day := 1; day <= days; day++ {
		start := (day - 1) * perDay
		if start >= n {
			break
		}
		end := min(start+perDay, n)
		daySpots := make([]types.Spot, end-start)
		copy(daySpots, spots[start:end])
		plan.Schedule = append(plan.Schedule, types.DaySchedule{
			Day:   day,
			Color: ColorForDay(day),
			Spots: daySpots,
		})
	}
	return plan
}

// CategoryBalancedAllocator gives each day up to two attractions, a restaurant and a cafe,
// then tops the day up with randomly drawn spots until it reaches categoryDayFloor.
//
// With shareUsed set, a single used-set spans both phases so no spot is assigned twice.
// Without it, the structured phase only avoids repeats inside the day it is filling and
// the top-up pool only excludes earlier top-up draws, which can repeat spots across days.
type CategoryBalancedAllocator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	shareUsed bool
}

// NewCategoryBalancedAllocator builds the allocator around src. A nil src seeds from the runtime.
func NewCategoryBalancedAllocator(src rand.Source, shareUsed bool) *CategoryBalancedAllocator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &CategoryBalancedAllocator{rng: rand.New(src), shareUsed: shareUsed}
}

func (a *CategoryBalancedAllocator) Mode() string { return ModeCategoryBalanced }

func (a *CategoryBalancedAllocator) Allocate(city string, days int, spots []types.Spot) types.TravelPlan {
	plan := types.TravelPlan{City: city, Days: days, Schedule: []types.DaySchedule{}}
	if days < 1 || len(spots) == 0 {
		return plan
	}

	var attractions, restaurants, cafes []int
	for i, s := range spots {
		switch s.Category {
		case types.CategoryAttraction:
			attractions = append(attractions, i)
		case types.CategoryRestaurant:
			restaurants = append(restaurants, i)
		case types.CategoryCafe:
			cafes = append(cafes, i)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	globalUsed := make(map[int]bool, len(spots))
	toppedUp := make(map[int]bool, len(spots))

	for day := 1; day <= days; day++ {
		dayUsed := make(map[int]bool, categoryDayFloor+1)
		var picked []int

		isUsed := func(idx int) bool {
			if a.shareUsed {
				return globalUsed[idx]
			}
			return dayUsed[idx]
		}
		take := func(idx int) {
			picked = append(picked, idx)
			dayUsed[idx] = true
			if a.shareUsed {
				globalUsed[idx] = true
			}
		}

		if len(attractions) > 0 {
			first := (day - 1) % len(attractions)
			if !isUsed(attractions[first]) {
				take(attractions[first])
			}
			second := first + days
			if second < len(attractions) && !isUsed(attractions[second]) {
				take(attractions[second])
			}
		}
		if len(restaurants) > 0 {
			if idx := restaurants[(day-1)%len(restaurants)]; !isUsed(idx) {
				take(idx)
			}
		}
		if len(cafes) > 0 {
			if idx := cafes[(day-1)%len(cafes)]; !isUsed(idx) {
				take(idx)
			}
		}

		for len(picked) < categoryDayFloor {
			pool := make([]int, 0, len(spots))
			for i := range spots {
				if dayUsed[i] {
					continue
				}
				if a.shareUsed && globalUsed[i] {
					continue
				}
				if !a.shareUsed && toppedUp[i] {
					continue
				}
				pool = append(pool, i)
			}
			if len(pool) == 0 {
				break
			}
			idx := pool[a.rng.IntN(len(pool))]
			take(idx)
			toppedUp[idx] = true
		}

		if len(picked) == 0 {
			continue
		}
		daySpots := make([]types.Spot, 0, len(picked))
		for _, idx := range picked {
			daySpots = append(daySpots, spots[idx])
		}
		plan.Schedule = append(plan.Schedule, types.DaySchedule{
			Day:   day,
			Color: ColorForDay(day),
			Spots: daySpots,
		})
	}
	return plan
}

// NewAllocator returns the allocator for the configured mode, defaulting to even split.
func NewAllocator(mode string, src rand.Source, shareUsed bool) Allocator {
	if mode == ModeCategoryBalanced {
		return NewCategoryBalancedAllocator(src, shareUsed)
	}
	return NewEvenSplitAllocator()
}
