package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"m7s.live/mp4vtt/pkg/box"
	"m7s.live/mp4vtt/pkg/webvtt"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <input.vtt> <output>",
		Short: "Convert a WebVTT file into sample boxes",
		Long:  "Writes an stsd box holding the wvtt sample entry followed by the sample data, and a YAML sample index next to the output.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			if conf.Encode.Timescale == 0 {
				return errors.New("encode timescale must be positive")
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			doc, err := webvtt.Parse(in)
			in.Close()
			if err != nil {
				return err
			}
			return encodeTrack(ctx, args[1], doc, conf)
		},
	}
}

func encodeTrack(ctx *commandContext, path string, doc *webvtt.Document, conf *Config) (err error) {
	entry := webvtt.SampleEntry(doc, conf.Encode.Label)
	entry.DataReferenceIndex = conf.Encode.DataReferenceIndex
	stsd := &box.SampleDescriptionBox{Entries: []box.IBox{entry}}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	n, err := stsd.Encode(out)
	if err != nil {
		return err
	}
	offset := int64(n)
	idx := sampleIndex{Timescale: conf.Encode.Timescale}
	for _, s := range webvtt.BuildSamples(doc.Cues) {
		if n, err = s.Encode(out); err != nil {
			return err
		}
		idx.Samples = append(idx.Samples, sampleEntry{
			Time:     idx.ticks(s.Start),
			Duration: idx.ticks(s.Duration),
			Offset:   offset,
			Size:     uint64(n),
		})
		ctx.logger.Debug("sample", "start", webvtt.FormatTimestamp(s.Start), "cues", len(s.Cues), "size", n)
		offset += int64(n)
	}
	if err = writeIndex(indexPath(path), &idx); err != nil {
		return err
	}
	ctx.logger.Info("encoded", "cues", len(doc.Cues), "samples", len(idx.Samples), "bytes", offset)
	return nil
}
