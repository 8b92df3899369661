package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesTotal counts vote attempts by outcome: accepted, closed, duplicate, missing_project, rate_limited, error.
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openspace_votes_total",
		Help: "Vote attempts by result.",
	}, []string{"result"})

	GithubLinksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "openspace_github_links_total",
		Help: "GitHub accounts linked successfully.",
	})

	PendingConversionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "openspace_pending_conversions_total",
		Help: "Pending project memberships converted to real memberships.",
	})

	VotingWindowsClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "openspace_voting_windows_expired_total",
		Help: "Voting windows closed by the expiry sweep.",
	})
)
