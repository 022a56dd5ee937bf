package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anima_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anima_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "collection", "status"},
	)

	HabitCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_habit_completions_total",
			Help: "Habits marked complete, by stat category",
		},
		[]string{"stat"},
	)

	HabitResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_habit_resets_total",
			Help: "Completions undone the same day, by stat category",
		},
		[]string{"stat"},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_shop_items_purchased_total",
			Help: "Units bought from the shop, by item",
		},
		[]string{"item"},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_shop_items_used_total",
			Help: "Consumables used, by item",
		},
		[]string{"item"},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anima_coins_spent_total",
			Help: "Coins spent in the shop",
		},
	)

	DailyResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_daily_resets_total",
			Help: "Day rollovers applied, by whether a streak freeze was consumed",
		},
		[]string{"freeze_used"},
	)

	StreaksBroken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anima_streaks_broken_total",
			Help: "Habit streaks zeroed by a missed day",
		},
	)

	DecayApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anima_decay_applied_total",
			Help: "Inactivity decay penalties applied",
		},
	)

	Evolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_pet_evolutions_total",
			Help: "Pet stage changes, by resulting stage",
		},
		[]string{"stage"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anima_events_published_total",
			Help: "Progression events published, by type and outcome",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, collection string, err error, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, collection, statusOf(err)).Observe(duration.Seconds())
}

func IncrementHabitCompletion(stat string) {
	HabitCompletions.WithLabelValues(stat).Inc()
}

func IncrementHabitReset(stat string) {
	HabitResets.WithLabelValues(stat).Inc()
}

// RecordPurchase counts quantity units of item and the coins paid for them.
func RecordPurchase(item string, quantity, cost int) {
	ItemsPurchased.WithLabelValues(item).Add(float64(quantity))
	CoinsSpent.Add(float64(cost))
}

func IncrementItemUsed(item string) {
	ItemsUsed.WithLabelValues(item).Inc()
}

func RecordDailyReset(freezeUsed bool, streaksBroken int) {
	label := "false"
	if freezeUsed {
		label = "true"
	}
	DailyResets.WithLabelValues(label).Inc()
	StreaksBroken.Add(float64(streaksBroken))
}

func IncrementDecay() {
	DecayApplied.Inc()
}

func IncrementEvolution(stage string) {
	Evolutions.WithLabelValues(stage).Inc()
}

func RecordEventPublished(eventType string, err error) {
	EventsPublished.WithLabelValues(eventType, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
