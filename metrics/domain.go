package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vote results
const (
	ResultAccepted  = "accepted"
	ResultDuplicate = "duplicate"
	ResultClosed    = "closed"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// VoteMetrics counts vote submissions and lottery enrollments.
type VoteMetrics struct {
	VotesSubmitted *prometheus.CounterVec
	LotteryEntries prometheus.Counter
}

// NewVoteMetrics creates and registers vote metrics on the given registry.
func NewVoteMetrics(reg prometheus.Registerer) *VoteMetrics {
	m := &VoteMetrics{
		VotesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_submitted_total",
			Help:      "Total number of vote submissions, by result.",
		}, []string{"result"}),
		LotteryEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lottery_opt_ins_total",
			Help:      "Total number of lottery participants enrolled through a vote.",
		}),
	}

	reg.MustRegister(m.VotesSubmitted, m.LotteryEntries)
	return m
}

// LotteryMetrics counts draw attempts.
type LotteryMetrics struct {
	Draws *prometheus.CounterVec
}

// NewLotteryMetrics creates and registers lottery metrics on the given registry.
func NewLotteryMetrics(reg prometheus.Registerer) *LotteryMetrics {
	m := &LotteryMetrics{
		Draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lottery_draws_total",
			Help:      "Total number of lottery draw attempts, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.Draws)
	return m
}

// SyncMetrics tracks album synchronization from Immich.
type SyncMetrics struct {
	Runs         *prometheus.CounterVec
	AlbumsSynced prometheus.Gauge
}

// NewSyncMetrics creates and registers sync metrics on the given registry.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "album_sync_runs_total",
			Help:      "Total number of album sync runs, by result.",
		}, []string{"result"}),
		AlbumsSynced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "album_sync_last_count",
			Help:      "Number of albums returned by the last successful sync.",
		}),
	}

	reg.MustRegister(m.Runs, m.AlbumsSynced)
	return m
}
