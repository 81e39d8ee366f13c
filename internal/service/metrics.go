package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dmr_resolutions_total",
		Help: "Where-used resolutions by classification.",
	}, []string{"classification"})

	linksCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dmr_links_created_total",
		Help: "Sharing links created by document category.",
	}, []string{"category"})

	linksRevokedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dmr_links_revoked_total",
		Help: "Expired sharing links processed by the sweep.",
	}, []string{"result"})

	bundleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dmr_bundle_duration_seconds",
		Help:    "Time spent building a DMR bundle.",
		Buckets: prometheus.DefBuckets,
	})
)
