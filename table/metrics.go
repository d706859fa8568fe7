package table

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tableEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "owner_table_entries",
		Help: "The number of owned values currently stored in the table",
	}, []string{"table"})

	entriesDestroyed = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "owner_table_destroyed_total",
		Help: "The total number of table entries destroyed",
	}, []string{"table"})
)
