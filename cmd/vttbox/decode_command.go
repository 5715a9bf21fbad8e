package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"m7s.live/mp4vtt/pkg/box"
	"m7s.live/mp4vtt/pkg/webvtt"
)

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "decode <track>",
		Short: "Rebuild a WebVTT file from sample boxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := decodeTrack(ctx, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return webvtt.Render(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err = webvtt.Render(f, doc); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write WebVTT to this file instead of stdout")
	return cmd
}

func decodeTrack(ctx *commandContext, path string) (*webvtt.Document, error) {
	idx, err := readIndex(indexPath(path))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, _, err := box.ReadBox(f)
	if err != nil {
		return nil, err
	}
	stsd, ok := b.(*box.SampleDescriptionBox)
	if !ok {
		return nil, fmt.Errorf("%s: expected stsd box first", path)
	}
	var doc webvtt.Document
	for _, entry := range stsd.Entries {
		if wvtt, ok := entry.(*box.WVTTSampleEntry); ok {
			doc.Header = wvtt.Config.Config
			if wvtt.Label != nil {
				ctx.logger.Info("source label", "label", wvtt.Label.SourceLabel)
			}
			break
		}
	}
	if doc.Header == "" {
		return nil, fmt.Errorf("%s: no wvtt sample entry", path)
	}

	samples := make([]webvtt.TimedSample, 0, len(idx.Samples))
	for i, e := range idx.Samples {
		data := make([]byte, e.Size)
		if n, err := f.ReadAt(data, e.Offset); n < len(data) {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		s, err := box.DecodeSample(data)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		samples = append(samples, webvtt.TimedSample{
			Start:    idx.duration(e.Time),
			Duration: idx.duration(e.Duration),
			Sample:   *s,
		})
	}
	doc.Cues = webvtt.Cues(samples)
	ctx.logger.Debug("decoded", "samples", len(samples), "cues", len(doc.Cues))
	return &doc, nil
}
