package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SalesRecorded counts recordSale outcomes by status
	// (recorded, insufficient_stock, conflict, validation, not_found, error).
	SalesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_sales_recorded_total",
			Help: "Total number of sale recording attempts by outcome",
		},
		[]string{"status"},
	)

	// PurchasesRecorded counts recordPurchase outcomes by status.
	PurchasesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_purchases_recorded_total",
			Help: "Total number of purchase recording attempts by outcome",
		},
		[]string{"status"},
	)

	registerOnce sync.Once
)

func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SalesRecorded)
		prometheus.MustRegister(PurchasesRecorded)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
