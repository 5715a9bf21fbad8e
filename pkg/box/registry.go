package box

import (
	"bytes"
	"fmt"
	"io"
)

// NewBox returns an empty box of a known type, nil for any other tag.
func NewBox(boxtype BoxType) IBox {
	switch boxtype {
	case TypeVSID:
		return &CueSourceIDBox{}
	case TypeIDEN:
		return &CueIDBox{}
	case TypeCTIM:
		return &CueTimeBox{}
	case TypeSTTG:
		return &CueSettingsBox{}
	case TypePAYL:
		return &CuePayloadBox{}
	case TypeVLAB:
		return &WebVTTSourceLabelBox{}
	case TypeVTTC:
		return &WebVTTConfigurationBox{}
	case TypeVTTA:
		return &VTTAdditionalTextBox{}
	case TypeVTTE:
		return &VTTEmptyCueBox{}
	case TypeVTTc:
		return &VTTCueBox{}
	case TypeWVTT:
		return &WVTTSampleEntry{}
	case TypeSTSD:
		return &SampleDescriptionBox{}
	}
	return nil
}

// ReadBox decodes the box at the current position of r. Unknown boxes are
// skipped and reported with a nil box and their header.
func ReadBox(r io.ReadSeeker) (IBox, *BasicBox, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, nil, err
	}
	b := NewBox(header.Type)
	if b == nil {
		if header.Size < header.headerSize() {
			return nil, header, fmt.Errorf("%s declares %d bytes: %w", header.Type, header.Size, ErrSizeTooSmall)
		}
		end, err := boxEnd(r, header, header.Offset)
		if err != nil {
			return nil, header, err
		}
		_, err = r.Seek(end, io.SeekStart)
		return nil, header, err
	}
	if err = b.Decode(r, header); err != nil {
		return nil, header, err
	}
	return b, header, nil
}

// ReadBoxes calls yield for every top level box until r is exhausted.
func ReadBoxes(r io.ReadSeeker, yield func(IBox, *BasicBox) error) error {
	for {
		b, header, err := ReadBox(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err = yield(b, header); err != nil {
			return err
		}
	}
}

// Unmarshal decodes exactly one known box from data.
func Unmarshal(data []byte) (IBox, error) {
	b, header, err := ReadBox(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("unknown box type %s", header.Type)
	}
	return b, nil
}
