package main

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// simSensor synthesizes a room. CO2 approaches the slider target with a
// first order lag plus a little deterministic noise; temperature and
// humidity drift slowly. Every sample is reported to the UI callback so
// the gauge can follow.
type simSensor struct {
	mu      sync.Mutex
	co2     float64
	target  float64
	failCal bool
	start   time.Time

	onSample func(co2 int)
}

var _ hw.Sensor = (*simSensor)(nil)

func newSimSensor() *simSensor {
	return &simSensor{
		co2:    420,
		target: 800,
		start:  time.Now(),
	}
}

func (s *simSensor) setTarget(ppm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = ppm
}

func (s *simSensor) setFailCalibration(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCal = fail
}

func (s *simSensor) Start(p hw.Profile) {
	log.Printf("sim: sensor start, %s profile", p)
}

func (s *simSensor) Stop() {
	log.Printf("sim: sensor stop")
}

func (s *simSensor) Sample() hw.Reading {
	s.mu.Lock()
	elapsed := time.Since(s.start).Seconds()

	const alpha = 0.25
	s.co2 += alpha * (s.target - s.co2)

	noise := (math.Sin(elapsed) + math.Cos(elapsed*1.3)) * 8
	co2 := int(s.co2 + noise)
	if co2 < 400 {
		co2 = 400
	}
	temp := 225 + int(10*math.Sin(elapsed/60))
	hum := 450 + int(30*math.Cos(elapsed/90))
	s.mu.Unlock()

	if s.onSample != nil {
		s.onSample(co2)
	}
	return hw.Reading{CO2PPM: co2, TempDeciC: temp, HumidityDeciPct: hum}
}

func (s *simSensor) Recalibrate(referencePPM int) bool {
	s.mu.Lock()
	fail := s.failCal
	if !fail {
		s.co2 = float64(referencePPM)
	}
	s.mu.Unlock()

	log.Printf("sim: recalibrate to %d ppm, ok=%v", referencePPM, !fail)
	return !fail
}

func (s *simSensor) Shutdown() {
	log.Printf("sim: sensor shutdown")
}
