package webvtt

import (
	"slices"
	"time"

	"m7s.live/mp4vtt/pkg/box"
)

// TimedSample is one media sample of a WebVTT track.
type TimedSample struct {
	Start    time.Duration
	Duration time.Duration
	box.Sample
}

func (s *TimedSample) End() time.Duration {
	return s.Start + s.Duration
}

// BuildSamples cuts the cues into non-overlapping samples. Every sample holds
// all cues active over its interval; gaps, including one before the first
// cue, become empty samples. A cue spread over several samples carries the
// same source id in each of them and a ctim in all but the first.
func BuildSamples(cues []Cue) (samples []TimedSample) {
	var bounds []time.Duration
	for _, cue := range cues {
		if cue.End > cue.Start {
			bounds = append(bounds, cue.Start, cue.End)
		}
	}
	if len(bounds) == 0 {
		return nil
	}
	bounds = append(bounds, 0)
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	spans := make([]int, len(cues))
	for i := 0; i+1 < len(bounds); i++ {
		for j, cue := range cues {
			if cue.Start <= bounds[i] && bounds[i] < cue.End {
				spans[j]++
			}
		}
	}

	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		sample := TimedSample{Start: start, Duration: end - start}
		for j, cue := range cues {
			if cue.Start > start || start >= cue.End {
				continue
			}
			vttc := box.VTTCueBox{Payload: box.CuePayloadBox{CueText: cue.Payload}}
			if spans[j] > 1 {
				vttc.SourceID = &box.CueSourceIDBox{SourceID: uint32(j + 1)}
			}
			if cue.ID != "" {
				vttc.CueID = &box.CueIDBox{CueID: cue.ID}
			}
			if cue.Start < start {
				vttc.CueTime = &box.CueTimeBox{CurrentTime: FormatTimestamp(start)}
			}
			if cue.Settings != "" {
				vttc.CueSettings = &box.CueSettingsBox{Settings: cue.Settings}
			}
			sample.Cues = append(sample.Cues, vttc)
		}
		samples = append(samples, sample)
	}
	return
}

// Cues rebuilds cues from samples, joining the pieces of a cue that share a
// source id across adjacent samples.
func Cues(samples []TimedSample) (cues []Cue) {
	open := make(map[uint32]int)
	for _, s := range samples {
		for _, vttc := range s.Cues {
			if vttc.SourceID != nil {
				if i, ok := open[vttc.SourceID.SourceID]; ok && cues[i].End == s.Start {
					cues[i].End = s.End()
					continue
				}
			}
			cue := Cue{
				Start:   s.Start,
				End:     s.End(),
				Payload: vttc.Payload.CueText,
			}
			if vttc.CueID != nil {
				cue.ID = vttc.CueID.CueID
			}
			if vttc.CueSettings != nil {
				cue.Settings = vttc.CueSettings.Settings
			}
			if vttc.SourceID != nil {
				open[vttc.SourceID.SourceID] = len(cues)
			}
			cues = append(cues, cue)
		}
	}
	return
}

// SampleEntry describes a track carrying doc.
func SampleEntry(doc *Document, label string) *box.WVTTSampleEntry {
	header := doc.Header
	if header == "" {
		header = Signature
	}
	entry := box.NewWVTTSampleEntry(header)
	if label != "" {
		entry.Label = &box.WebVTTSourceLabelBox{SourceLabel: label}
	}
	return entry
}
