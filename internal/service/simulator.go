package service

import (
	"context"
	"math/rand/v2"
	"time"

	"safety_monitor/internal/logger"
	"safety_monitor/internal/models"
)

// ----------- Simulation ranges -----------
const (
	simAlcoholMax   = 0.1  // [0, 0.1)
	simGasMaxPPM    = 150  // [0, 150)
	simTempBaseC    = 20   // 20 + [0, 40)
	simTempSpanC    = 40   //
	simAQIMax       = 200  // [0, 200)
	simFlameMax     = 100  // [0, 100)
	simSmokeMax     = 10.0 // [0, 10)
	simAccidentOdds = 0.9  // accident when draw > 0.9
	simDriftDeg     = 0.001
)

// ReadingSink is where simulated readings go.
type ReadingSink interface {
	Ingest(ctx context.Context, r models.Reading) (models.Dashboard, error)
	View(ctx context.Context) (models.Dashboard, error)
}

// SimulatorService is the self-simulated Reading Source.
type SimulatorService struct {
	sink ReadingSink
	rnd  *rand.Rand
	log  *logger.Logger
}

// NewSimulatorService returns a simulator. A zero seed picks a random one.
func NewSimulatorService(sink ReadingSink, seed uint64, log *logger.Logger) *SimulatorService {
	if seed == 0 {
		seed = rand.Uint64()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{
		sink: sink,
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:  log,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.step(ctx)
		}
	}
}

// step drifts from the current location and submits one random reading.
func (s *SimulatorService) step(ctx context.Context) {
	view, err := s.sink.View(ctx)
	if err != nil {
		return
	}
	r := s.next(view.Reading.Location)
	if _, err := s.sink.Ingest(ctx, r); err != nil && ctx.Err() == nil {
		s.log.Warnw("simulated_reading_rejected", "err", err)
	}
}

// next draws a fresh reading. TakenAt is left zero so the controller stamps
// it on arrival.
func (s *SimulatorService) next(from models.Location) models.Reading {
	return models.Reading{
		Alcohol:      s.rnd.Float64() * simAlcoholMax,
		GasPPM:       s.rnd.IntN(simGasMaxPPM),
		TemperatureC: float64(simTempBaseC + s.rnd.IntN(simTempSpanC)),
		AirQuality:   s.rnd.IntN(simAQIMax),
		Flame:        s.rnd.IntN(simFlameMax),
		SmokeMgM3:    s.rnd.Float64() * simSmokeMax,
		Accident:     s.rnd.Float64() > simAccidentOdds,
		Location:     s.drift(from),
	}
}

func (s *SimulatorService) drift(l models.Location) models.Location {
	l.Lat = clamp(l.Lat+(s.rnd.Float64()-0.5)*simDriftDeg, -90, 90)
	l.Lon = clamp(l.Lon+(s.rnd.Float64()-0.5)*simDriftDeg, -180, 180)
	return l
}

// helpers
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
