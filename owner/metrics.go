package owner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	valuesAdopted = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "owner_values_adopted_total",
		Help: "The total number of values whose ownership was taken by an owner",
	})

	valuesDestroyed = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "owner_values_destroyed_total",
		Help: "The total number of owned values destroyed",
	})

	valuesReleased = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "owner_values_released_total",
		Help: "The total number of owned values released back to the caller",
	})

	destroyErrors = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "owner_destroy_errors_total",
		Help: "The total number of errors or panics while destroying owned values",
	})
)
