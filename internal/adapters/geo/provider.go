// Package geo supplies a best-effort position for new tasks. There is no
// live location source on a workstation, so the provider answers from a
// fixed pin in the config, overridable through TWODO_LAT / TWODO_LON.
package geo

import (
	"context"
	"os"
	"strconv"

	"github.com/example/twodo/internal/config"
	"github.com/example/twodo/internal/ports/secondary"
)

// PinProvider resolves the last known position from configuration.
type PinProvider struct {
	cfg *config.Config
}

// NewPinProvider creates a provider over a loaded config. A nil config
// means no position is ever known.
func NewPinProvider(cfg *config.Config) *PinProvider {
	return &PinProvider{cfg: cfg}
}

// LastKnownPosition returns the pinned position, or (nil, nil) when none is
// configured. Callers treat a nil position as "leave the task unpinned";
// this mirrors a device that has no location fix yet.
func (p *PinProvider) LastKnownPosition(ctx context.Context) (*secondary.Position, error) {
	if lat, lon, ok := envPosition(); ok {
		return &secondary.Position{Latitude: lat, Longitude: lon}, nil
	}
	if p.cfg != nil && p.cfg.PinLatitude != nil && p.cfg.PinLongitude != nil {
		return &secondary.Position{
			Latitude:  *p.cfg.PinLatitude,
			Longitude: *p.cfg.PinLongitude,
		}, nil
	}
	return nil, nil
}

func envPosition() (float64, float64, bool) {
	latStr, lonStr := os.Getenv("TWODO_LAT"), os.Getenv("TWODO_LON")
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Ensure PinProvider implements the interface
var _ secondary.GeolocationProvider = (*PinProvider)(nil)
