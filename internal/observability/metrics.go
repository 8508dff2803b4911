package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	onboardingCompletions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "powerlifting",
		Subsystem: "onboarding",
		Name:      "completions_total",
		Help:      "Number of onboarding flows committed successfully.",
	})
	onboardingPartialWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "powerlifting",
		Subsystem: "onboarding",
		Name:      "partial_writes_total",
		Help:      "Onboarding commits where the profile updated but one or more lift seeds failed.",
	})
	liftRecordsSeeded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "powerlifting",
		Subsystem: "onboarding",
		Name:      "lift_records_seeded_total",
		Help:      "Initial PR lift records written during onboarding.",
	})
	profileFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powerlifting",
		Subsystem: "profiles",
		Name:      "fetches_total",
		Help:      "Profile reads by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		onboardingCompletions,
		onboardingPartialWrites,
		liftRecordsSeeded,
		profileFetches,
	)
}

func RecordOnboardingCompleted() {
	onboardingCompletions.Inc()
}

func RecordOnboardingPartialWrite() {
	onboardingPartialWrites.Inc()
}

func RecordLiftRecordSeeded() {
	liftRecordsSeeded.Inc()
}

// RecordProfileFetch tracks reads; outcome is "hit", "miss" or "error".
func RecordProfileFetch(outcome string) {
	profileFetches.WithLabelValues(outcome).Inc()
}
