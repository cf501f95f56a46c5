package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

var (
	registerOnce sync.Once

	transportPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcctl",
			Subsystem: "transport",
			Name:      "packets_total",
			Help:      "Packets sent or received on the game connection.",
		},
		[]string{"direction", "packet_id"},
	)
	transportBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcctl",
			Subsystem: "transport",
			Name:      "bytes_total",
			Help:      "Frame body bytes sent or received, after compression.",
		},
		[]string{"direction"},
	)
	transportCompressed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcctl",
			Subsystem: "transport",
			Name:      "compressed_frames_total",
			Help:      "Frames carrying a deflated packet.",
		},
		[]string{"direction"},
	)
	rosterSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mcctl",
			Subsystem: "session",
			Name:      "roster_size",
			Help:      "Participants currently known to the session.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(transportPackets, transportBytes, transportCompressed, rosterSize)
	})
}

func RecordPacket(direction string, packetID int32, frameBytes int, compressed bool) {
	RegisterMetrics()
	transportPackets.WithLabelValues(direction, fmt.Sprintf("0x%02x", packetID)).Inc()
	transportBytes.WithLabelValues(direction).Add(float64(frameBytes))
	if compressed {
		transportCompressed.WithLabelValues(direction).Inc()
	}
}

func SetRosterSize(n int) {
	RegisterMetrics()
	rosterSize.Set(float64(n))
}

// ServeMetrics exposes /metrics on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string) error {
	RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics listener started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
