package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/fitimport"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/overload/volume"

	"gopkg.in/yaml.v3"
)

// workoutLog is the YAML layout:
//
//	workouts:
//	  - date: 2024-03-04
//	    exercises:
//	      - exercise: Bench Press
//	        sets:
//	          - {weight: 80, reps: 5, rpe: 8}
type workoutLog struct {
	Workouts []training.Workout `yaml:"workouts"`
}

// loadWorkouts reads a .fit file or a YAML workout log.
func loadWorkouts(path string) ([]training.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workout log: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".fit") {
		return fitimport.Decode(bytes.NewReader(data))
	}

	var wl workoutLog
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse workout log %s: %w", path, err)
	}
	if len(wl.Workouts) == 0 {
		return nil, fmt.Errorf("no workouts in %s", path)
	}
	return wl.Workouts, nil
}

func newCatalog() *catalog.Resolver {
	return catalog.NewResolver(catalog.New(), 1)
}

func weeklyVolume(path string) ([]volume.MuscleGroupVolume, *catalog.Resolver, error) {
	workouts, err := loadWorkouts(path)
	if err != nil {
		return nil, nil, err
	}
	resolver := newCatalog()
	volumes, err := volume.NewTracker(resolver).WeeklyVolume(workouts)
	if err != nil {
		return nil, nil, fmt.Errorf("workout log %s: %w", path, err)
	}
	return volumes, resolver, nil
}
