package ingest

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the ambient observability surface every production Go
// service in the pack carries regardless of domain (SPEC_FULL §4.7.1);
// no Non-goal excludes it. The orchestrator increments these inline in
// the per-game fold.
type Metrics struct {
	GamesIngested    prometheus.Counter
	PositionsRecorded prometheus.Counter
	EmbedderErrors   prometheus.Counter
	GameDuration     prometheus.Histogram
}

// NewMetrics registers the four series on reg. Pass prometheus.NewRegistry()
// in tests to avoid colliding with the global default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chessbuddy_games_ingested_total",
			Help: "Total number of games successfully persisted.",
		}),
		PositionsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chessbuddy_positions_recorded_total",
			Help: "Total number of positions (plies) persisted.",
		}),
		EmbedderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chessbuddy_embedder_errors_total",
			Help: "Total number of position-embedder calls that failed.",
		}),
		GameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "chessbuddy_ingest_game_duration_seconds",
			Help: "Wall-clock time to ingest a single game, from player upsert through detector runs.",
		}),
	}
	reg.MustRegister(m.GamesIngested, m.PositionsRecorded, m.EmbedderErrors, m.GameDuration)
	return m
}
