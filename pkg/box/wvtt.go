package box

import (
	"fmt"
	"io"

	"m7s.live/mp4vtt/pkg/util"
)

// aligned(8) abstract class SampleEntry (unsigned int(32) format) extends Box(format){
// 	const unsigned int(8)[6] reserved = 0;
// 	unsigned int(16) data_reference_index;
// }
//
// class WVTTSampleEntry() extends PlainTextSampleEntry('wvtt') {
// 	WebVTTConfigurationBox config;
// 	WebVTTSourceLabelBox label;   // recommended
// 	MPEG4BitRateBox ();           // optional
// }

const sampleEntryLen = 8

// WVTTSampleEntry always writes the reserved bytes as zero, whatever was read.
type WVTTSampleEntry struct {
	DataReferenceIndex uint16                 `json:"data_reference_index"`
	Config             WebVTTConfigurationBox `json:"config"`
	Label              *WebVTTSourceLabelBox  `json:"label,omitempty"`
}

func NewWVTTSampleEntry(config string) *WVTTSampleEntry {
	return &WVTTSampleEntry{
		DataReferenceIndex: 1,
		Config:             WebVTTConfigurationBox{Config: config},
	}
}

func (entry *WVTTSampleEntry) Type() BoxType {
	return TypeWVTT
}

func (entry *WVTTSampleEntry) Size() uint64 {
	size := BasicBoxLen + sampleEntryLen + entry.Config.Size()
	if entry.Label != nil {
		size += entry.Label.Size()
	}
	return size
}

func (entry *WVTTSampleEntry) Decode(r io.ReadSeeker, header *BasicBox) error {
	c, err := openCursor(r, header)
	if err != nil {
		return err
	}
	buf := make([]byte, sampleEntryLen)
	if err = c.ReadFull(buf); err != nil {
		return err
	}
	reader := util.Buffer(buf)
	reader.ReadN(6) // reserved
	decoded := WVTTSampleEntry{
		DataReferenceIndex: reader.ReadUint16(),
	}
	var config *WebVTTConfigurationBox
	for {
		child, err := c.Next()
		if err != nil {
			return err
		}
		if child == nil {
			break
		}
		switch child.Type {
		case TypeVTTC:
			config = &WebVTTConfigurationBox{}
			err = config.Decode(r, child)
		case TypeVLAB:
			decoded.Label = &WebVTTSourceLabelBox{}
			err = decoded.Label.Decode(r, child)
		default:
			err = c.SkipChild(child)
		}
		if err != nil {
			return err
		}
	}
	if config == nil {
		return &MissingChildError{Parent: TypeWVTT, Child: TypeVTTC}
	}
	if err = c.SkipToEnd(); err != nil {
		return err
	}
	decoded.Config = *config
	*entry = decoded
	return nil
}

func (entry *WVTTSampleEntry) Encode(w io.Writer) (n int, err error) {
	size := entry.Size()
	if n, err = NewBasicBox(TypeWVTT, size).Encode(w); err != nil {
		return
	}
	buf := make(util.Buffer, 0, size)
	buf.WriteUint32(0) // reserved
	buf.WriteUint16(0) // reserved
	buf.WriteUint16(entry.DataReferenceIndex)
	if _, err = entry.Config.Encode(&buf); err != nil {
		return
	}
	if entry.Label != nil {
		if _, err = entry.Label.Encode(&buf); err != nil {
			return
		}
	}
	var nn int
	nn, err = w.Write(buf)
	return n + nn, err
}

func (entry *WVTTSampleEntry) Summary() string {
	return fmt.Sprintf("data_reference_index=%d", entry.DataReferenceIndex)
}
