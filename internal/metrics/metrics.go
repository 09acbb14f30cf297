package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	linksBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calshare_links_built_total",
			Help: "Share links built, by protection",
		},
		[]string{"protected"},
	)

	decrypts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calshare_decrypt_total",
			Help: "Protected-link unlock attempts by outcome",
		},
		[]string{"outcome"},
	)

	icsDownloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "calshare_ics_downloads_total",
			Help: "iCalendar files generated",
		},
	)

	placeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calshare_place_lookups_total",
			Help: "Place autocomplete lookups by result",
		},
		[]string{"result"},
	)
)

// Decrypt outcomes.
const (
	DecryptOK            = "ok"
	DecryptWrongPassword = "wrong_password"
	DecryptInvalidToken  = "invalid_token"
)

// Place lookup results.
const (
	PlaceHit   = "hit"
	PlaceMiss  = "miss"
	PlaceError = "error"
)

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(linksBuilt, decrypts, icsDownloads, placeLookups)
	})
}

// RecordLinkBuilt counts one built share link.
func RecordLinkBuilt(protected bool) {
	label := "false"
	if protected {
		label = "true"
	}
	linksBuilt.WithLabelValues(label).Inc()
}

// RecordDecrypt counts one unlock attempt.
func RecordDecrypt(outcome string) {
	decrypts.WithLabelValues(outcome).Inc()
}

// RecordICSDownload counts one generated .ics file.
func RecordICSDownload() {
	icsDownloads.Inc()
}

// RecordPlaceLookup counts one autocomplete lookup.
func RecordPlaceLookup(result string) {
	placeLookups.WithLabelValues(result).Inc()
}
