package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// sampleIndex locates the samples written after the stsd box of a track file.
// Times are in Timescale ticks, offsets are from the start of the file.
type sampleIndex struct {
	Timescale uint32        `yaml:"timescale"`
	Samples   []sampleEntry `yaml:"samples"`
}

type sampleEntry struct {
	Time     uint64 `yaml:"time"`
	Duration uint64 `yaml:"duration"`
	Offset   int64  `yaml:"offset"`
	Size     uint64 `yaml:"size"`
}

func indexPath(track string) string {
	return track + ".yaml"
}

// ticks and duration scale whole seconds and the remainder apart so long
// tracks do not overflow.
func (idx *sampleIndex) ticks(d time.Duration) uint64 {
	ts := uint64(idx.Timescale)
	sec, rem := uint64(d/time.Second), uint64(d%time.Second)
	return sec*ts + rem*ts/uint64(time.Second)
}

func (idx *sampleIndex) duration(ticks uint64) time.Duration {
	ts := uint64(idx.Timescale)
	sec, rem := ticks/ts, ticks%ts
	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/ts)
}

func writeIndex(path string, idx *sampleIndex) error {
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readIndex(path string) (*sampleIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx sampleIndex
	if err = yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if idx.Timescale == 0 {
		return nil, fmt.Errorf("%s: timescale must be positive", path)
	}
	return &idx, nil
}
