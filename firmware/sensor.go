package main

import (
	"errors"
	"log"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/scd4x"
)

const (
	// sampleTimeout bounds the wait for a fresh measurement. The modes
	// call Sample aligned with the sensor's own cadence, so the wait is
	// normally zero; the bound only matters when the clocks drift.
	sampleTimeout     = 6 * time.Second
	readyPollInterval = 100 * time.Millisecond
)

// scdSensor adapts the SCD4x driver to the controller's Sensor
// contract: transport errors are logged and answered with the last
// good reading, never surfaced.
type scdSensor struct {
	dev  *scd4x.Dev
	last hw.Reading
}

var _ hw.Sensor = (*scdSensor)(nil)

func newSensor(dev *scd4x.Dev) *scdSensor {
	return &scdSensor{
		dev: dev,
		// Outdoor baseline until the first real measurement lands.
		last: hw.Reading{CO2PPM: 400, TempDeciC: 200, HumidityDeciPct: 500},
	}
}

func (s *scdSensor) Start(p hw.Profile) {
	var err error
	if p == hw.ProfileLow {
		err = s.dev.StartLowPowerPeriodic()
	} else {
		err = s.dev.StartPeriodic()
	}
	if err != nil {
		log.Printf("Failed to start measurement: %v", err)
	}
}

func (s *scdSensor) Stop() {
	if err := s.dev.StopPeriodic(); err != nil {
		log.Printf("Failed to stop measurement: %v", err)
	}
}

func (s *scdSensor) Sample() hw.Reading {
	deadline := time.Now().Add(sampleTimeout)
	for {
		ready, err := s.dev.DataReady()
		if err != nil {
			log.Printf("Failed to query data ready: %v", err)
			return s.last
		}
		if ready {
			break
		}
		if time.Now().After(deadline) {
			log.Printf("Sensor not ready, keeping last reading")
			return s.last
		}
		time.Sleep(readyPollInterval)
	}

	m, err := s.dev.Read()
	if err != nil {
		log.Printf("Failed to read measurement: %v", err)
		return s.last
	}
	s.last = hw.Reading{CO2PPM: m.CO2PPM, TempDeciC: m.TempDeciC, HumidityDeciPct: m.HumidityDeciPct}
	return s.last
}

func (s *scdSensor) Recalibrate(referencePPM int) bool {
	correction, err := s.dev.ForcedRecalibration(referencePPM)
	if err != nil {
		if errors.Is(err, scd4x.ErrCalibrationFailed) {
			log.Printf("Recalibration rejected by sensor")
		} else {
			log.Printf("Failed to recalibrate: %v", err)
		}
		return false
	}
	log.Printf("Recalibration applied, correction %d ppm", correction)
	return true
}

func (s *scdSensor) Shutdown() {
	if err := s.dev.StopPeriodic(); err != nil {
		log.Printf("Failed to stop measurement: %v", err)
	}
	if err := s.dev.PowerDown(); err != nil {
		log.Printf("Failed to power down sensor: %v", err)
	}
}
