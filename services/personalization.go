package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"safar/models"
	"safar/utils"
)

// TravelPatterns - агрегированная картина поездок пользователя.
// Считается на лету из полного набора поездок, в БД не хранится.
type TravelPatterns struct {
	FavoriteDestinations []DestinationCount `json:"favorite_destinations"`
	AverageDuration      float64            `json:"average_duration_days"`
	BudgetRange          BudgetRange        `json:"budget_range"`
	TotalTrips           int                `json:"total_trips"`
	TripsThisYear        int                `json:"trips_this_year"`
	Seasons              map[string]int     `json:"seasons"`
	GroupSizes           map[string]int     `json:"group_sizes"`
}

type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

type BudgetRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// AnalyzeTravelPatterns строит TravelPatterns из набора поездок.
// Пустой набор дает нулевые агрегаты, не ошибку.
func AnalyzeTravelPatterns(trips []models.Trip, now time.Time) TravelPatterns {
	patterns := TravelPatterns{
		Seasons:    map[string]int{},
		GroupSizes: map[string]int{},
	}
	patterns.TotalTrips = len(trips)
	if len(trips) == 0 {
		patterns.FavoriteDestinations = []DestinationCount{}
		return patterns
	}

	destCounts := map[string]int{}
	destLastStart := map[string]time.Time{}

	var durationSum float64
	durationCount := 0

	var budgetSum, budgetMin, budgetMax float64
	budgetCount := 0

	for _, trip := range trips {
		dest := strings.TrimSpace(trip.Destination)
		if dest != "" {
			destCounts[dest]++
		}

		start, startOK := utils.ParseTripDate(trip.StartDate)
		end, endOK := utils.ParseTripDate(trip.EndDate)

		if startOK {
			if start.After(destLastStart[dest]) {
				destLastStart[dest] = start
			}
			if start.Year() == now.Year() {
				patterns.TripsThisYear++
			}
			patterns.Seasons[seasonOf(start)]++
		}

		// Поездки с нечитаемыми датами исключаем из длительности, не считаем нулями
		if startOK && endOK && !end.Before(start) {
			durationSum += end.Sub(start).Hours() / 24
			durationCount++
		}

		if trip.BudgetTotal > 0 {
			if budgetCount == 0 || trip.BudgetTotal < budgetMin {
				budgetMin = trip.BudgetTotal
			}
			if trip.BudgetTotal > budgetMax {
				budgetMax = trip.BudgetTotal
			}
			budgetSum += trip.BudgetTotal
			budgetCount++
		}

		if label := strings.TrimSpace(trip.GroupSize); label != "" {
			patterns.GroupSizes[label]++
		}
	}

	if durationCount > 0 {
		patterns.AverageDuration = durationSum / float64(durationCount)
	}
	if budgetCount > 0 {
		patterns.BudgetRange = BudgetRange{
			Min:     budgetMin,
			Max:     budgetMax,
			Average: budgetSum / float64(budgetCount),
		}
	}

	favorites := make([]DestinationCount, 0, len(destCounts))
	for dest, count := range destCounts {
		favorites = append(favorites, DestinationCount{Destination: dest, Count: count})
	}
	// По убыванию количества, при равенстве - более свежая поездка выше
	sort.SliceStable(favorites, func(i, j int) bool {
		if favorites[i].Count != favorites[j].Count {
			return favorites[i].Count > favorites[j].Count
		}
		return destLastStart[favorites[i].Destination].After(destLastStart[favorites[j].Destination])
	})
	patterns.FavoriteDestinations = favorites

	return patterns
}

func seasonOf(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

// Подборки направлений по стилю путешествий
var curatedDestinations = map[string][]string{
	"luxury": {
		"Dubai, UAE",
		"Maldives",
		"Paris, France",
		"Santorini, Greece",
		"Zurich, Switzerland",
	},
	"budget": {
		"Bangkok, Thailand",
		"Hanoi, Vietnam",
		"Goa, India",
		"Bali, Indonesia",
		"Kathmandu, Nepal",
	},
	"default": {
		"Istanbul, Turkey",
		"Rome, Italy",
		"Barcelona, Spain",
		"Tokyo, Japan",
		"London, UK",
	},
}

const maxDestinationSuggestions = 5

// SuggestDestinations возвращает до 5 подсказок направлений: сначала
// предпочтения пользователя как есть, затем подборка по стилю. Фильтр -
// подстрока без учета регистра, порядок исходный, без пересортировки.
func SuggestDestinations(preferred []string, style, query string) []string {
	curated, ok := curatedDestinations[style]
	if !ok {
		curated = curatedDestinations["default"]
	}

	query = strings.ToLower(strings.TrimSpace(query))
	seen := map[string]bool{}
	suggestions := make([]string, 0, maxDestinationSuggestions)

	for _, candidate := range append(append([]string{}, preferred...), curated...) {
		if len(suggestions) >= maxDestinationSuggestions {
			break
		}
		key := strings.ToLower(candidate)
		if seen[key] {
			continue
		}
		if query != "" && !strings.Contains(key, query) {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, candidate)
	}

	return suggestions
}

// Таблица множителей бюджета по ключевым словам направления
var destinationMultipliers = []struct {
	Keywords   []string
	Multiplier float64
}{
	{[]string{"dubai", "maldives", "switzerland", "monaco", "santorini"}, 2.5},
	{[]string{"japan", "singapore", "norway", "iceland"}, 1.8},
	{[]string{"thailand", "vietnam", "india", "indonesia", "nepal"}, 0.6},
}

// Базовый бюджет на неделю, когда истории поездок нет
const defaultWeeklyBudget = 1000.0

func destinationMultiplier(destination string) float64 {
	dest := strings.ToLower(destination)
	for _, entry := range destinationMultipliers {
		for _, keyword := range entry.Keywords {
			if strings.Contains(dest, keyword) {
				return entry.Multiplier
			}
		}
	}
	return 1.0
}

func styleMultiplier(style string) float64 {
	switch style {
	case "luxury":
		return 2.0
	case "budget":
		return 0.5
	default:
		return 1.0
	}
}

// SuggestBudget оценивает бюджет поездки: множитель направления x
// множитель стиля x базовая сумма x days/7, округление до целого.
// Это эвристика, а не статистическая модель.
func SuggestBudget(destination string, days int, averageBudget float64, style string) int {
	base := averageBudget
	if base <= 0 {
		base = defaultWeeklyBudget
	}
	if days <= 0 {
		days = 7
	}
	estimate := destinationMultiplier(destination) * styleMultiplier(style) * base * float64(days) / 7
	return int(math.Round(estimate))
}

// Метка размера группы по умолчанию при пустой истории
const defaultGroupSize = "couple"

// SuggestGroupSize возвращает самую частую метку размера группы
func SuggestGroupSize(patterns TravelPatterns) string {
	best := ""
	bestCount := 0
	for label, count := range patterns.GroupSizes {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	if best == "" {
		return defaultGroupSize
	}
	return best
}

// ConfidenceScore считает показатель уверенности рекомендаций (0-100):
// объем истории min(40, totalTrips*8) + полнота предпочтений (3 проверки
// по 10 баллов) + свежесть min(30, tripsThisYear*15), итог не выше 100.
func ConfidenceScore(pref *models.Preference, patterns TravelPatterns) int {
	score := 0

	historical := patterns.TotalTrips * 8
	if historical > 40 {
		historical = 40
	}
	score += historical

	if pref != nil {
		if len(pref.DestinationList()) > 0 {
			score += 10
		}
		if pref.TravelStyle != "" && pref.TravelStyle != "balanced" {
			score += 10
		}
		if pref.BudgetTotal > 0 {
			score += 10
		}
	}

	recency := patterns.TripsThisYear * 15
	if recency > 30 {
		recency = 30
	}
	score += recency

	if score > 100 {
		score = 100
	}
	return score
}
