package box

import (
	"bytes"
	"io"

	"m7s.live/mp4vtt/pkg/util"
)

// Sample is one WebVTT media sample. With no cues and no additional text it
// is written as a single VTTEmptyCueBox.
type Sample struct {
	Cues       []VTTCueBox            `json:"cues,omitempty"`
	Additional []VTTAdditionalTextBox `json:"additional,omitempty"`
}

func (s *Sample) IsEmpty() bool {
	return len(s.Cues) == 0 && len(s.Additional) == 0
}

func (s *Sample) boxes() (boxes []IBox) {
	if s.IsEmpty() {
		return []IBox{&VTTEmptyCueBox{}}
	}
	for i := range s.Cues {
		boxes = append(boxes, &s.Cues[i])
	}
	for i := range s.Additional {
		boxes = append(boxes, &s.Additional[i])
	}
	return
}

func (s *Sample) Size() (size uint64) {
	for _, b := range s.boxes() {
		size += b.Size()
	}
	return
}

func (s *Sample) Encode(w io.Writer) (n int, err error) {
	for _, b := range s.boxes() {
		var nn int
		nn, err = b.Encode(w)
		n += nn
		if err != nil {
			return
		}
	}
	return
}

func (s *Sample) Marshal() ([]byte, error) {
	buf := make(util.Buffer, 0, s.Size())
	if _, err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeSample parses the data of one sample. Boxes other than vttc and vtta
// are skipped.
func DecodeSample(data []byte) (*Sample, error) {
	var s Sample
	err := ReadBoxes(bytes.NewReader(data), func(b IBox, _ *BasicBox) error {
		switch v := b.(type) {
		case *VTTCueBox:
			s.Cues = append(s.Cues, *v)
		case *VTTAdditionalTextBox:
			s.Additional = append(s.Additional, *v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
