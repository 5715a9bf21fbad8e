package box

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func rawBox(boxtype string, body ...[]byte) []byte {
	payload := bytes.Join(body, nil)
	buf := make([]byte, BasicBoxLen, BasicBoxLen+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(BasicBoxLen+len(payload)))
	copy(buf[4:], boxtype)
	return append(buf, payload...)
}

func decodeOne(t *testing.T, data []byte, b IBox) (*bytes.Reader, error) {
	t.Helper()
	r := bytes.NewReader(data)
	header, err := ReadHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	if header.Type != b.Type() {
		t.Fatalf("header type %s, want %s", header.Type, b.Type())
	}
	return r, b.Decode(r, header)
}

func sampleCue() *VTTCueBox {
	return &VTTCueBox{
		SourceID:    &CueSourceIDBox{SourceID: 1234},
		CueID:       &CueIDBox{CueID: "1"},
		CueTime:     &CueTimeBox{CurrentTime: "10:53:24"},
		CueSettings: &CueSettingsBox{Settings: "align:center"},
		Payload:     CuePayloadBox{CueText: "test me"},
	}
}

func TestRoundTrip(t *testing.T) {
	label := &WebVTTSourceLabelBox{SourceLabel: "src"}
	entry := NewWVTTSampleEntry("WEBVTT")
	entry.Label = label
	tests := []IBox{
		&CueSourceIDBox{SourceID: 1234},
		&CueIDBox{CueID: "test me"},
		&CueTimeBox{CurrentTime: "00:00:01.000"},
		&CueSettingsBox{Settings: "line:0 position:20%"},
		&CuePayloadBox{CueText: "<v Roger>hello\nworld"},
		&WebVTTSourceLabelBox{SourceLabel: "urn:example"},
		&WebVTTConfigurationBox{Config: "WEBVTT\n\nNOTE header"},
		&VTTAdditionalTextBox{CueAdditionalText: "NOTE between cues"},
		&CuePayloadBox{},
		&VTTEmptyCueBox{},
		sampleCue(),
		&VTTCueBox{Payload: CuePayloadBox{CueText: "only payload"}},
		entry,
		NewWVTTSampleEntry(""),
		&SampleDescriptionBox{Entries: []IBox{entry}},
	}
	for _, src := range tests {
		t.Run(src.Type().String(), func(t *testing.T) {
			buf, err := Marshal(src)
			if err != nil {
				t.Fatal(err)
			}
			if uint64(len(buf)) != src.Size() {
				t.Fatalf("wrote %d bytes, Size() = %d", len(buf), src.Size())
			}
			r := bytes.NewReader(buf)
			header, err := ReadHeader(r)
			if err != nil {
				t.Fatal(err)
			}
			if header.Type != src.Type() || header.Size != src.Size() {
				t.Fatalf("header %s/%d, want %s/%d", header.Type, header.Size, src.Type(), src.Size())
			}
			dst := NewBox(header.Type)
			if err = dst.Decode(r, header); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(src, dst) {
				t.Errorf("got %+v, want %+v", dst, src)
			}
			if r.Len() != 0 {
				t.Errorf("%d bytes left unread", r.Len())
			}
		})
	}
}

func TestEncodeReturnsSize(t *testing.T) {
	src := sampleCue()
	var out bytes.Buffer
	n, err := src.Encode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(n) != src.Size() || out.Len() != n {
		t.Fatalf("Encode returned %d, wrote %d, Size() = %d", n, out.Len(), src.Size())
	}
	// header 8 + vsid 12 + iden 9 + ctim 16 + sttg 20 + payl 15
	if src.Size() != 80 {
		t.Errorf("Size() = %d, want 80", src.Size())
	}
}

func TestCueBoxChildOrder(t *testing.T) {
	buf, err := Marshal(sampleCue())
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	r := bytes.NewReader(buf[BasicBoxLen:])
	for r.Len() > 0 {
		header, err := ReadHeader(r)
		if err != nil {
			t.Fatal(err)
		}
		order = append(order, header.Type.String())
		r.Seek(header.End(), io.SeekStart)
	}
	if got := strings.Join(order, ","); got != "vsid,iden,ctim,sttg,payl" {
		t.Errorf("child order %s", got)
	}
}

func TestTextTruncatedAtNul(t *testing.T) {
	data := rawBox("iden", []byte("ab\x00cd"))
	var iden CueIDBox
	r, err := decodeOne(t, data, &iden)
	if err != nil {
		t.Fatal(err)
	}
	if iden.CueID != "ab" {
		t.Errorf("CueID = %q, want %q", iden.CueID, "ab")
	}
	if r.Len() != 0 {
		t.Errorf("%d bytes left after the box", r.Len())
	}
	if iden.Size() >= uint64(len(data)) {
		t.Errorf("re-encoded size %d should be shorter than %d", iden.Size(), len(data))
	}
}

func TestInvalidText(t *testing.T) {
	var payl CuePayloadBox
	if _, err := decodeOne(t, rawBox("payl", []byte{'o', 0xff, 0xfe}), &payl); !errors.Is(err, ErrInvalidText) {
		t.Errorf("err = %v, want ErrInvalidText", err)
	}
}

func TestSizeTooSmall(t *testing.T) {
	for _, b := range []IBox{
		&CueIDBox{}, &CueSourceIDBox{}, &VTTEmptyCueBox{}, &VTTCueBox{}, &WVTTSampleEntry{}, &SampleDescriptionBox{},
	} {
		t.Run(b.Type().String(), func(t *testing.T) {
			data := make([]byte, 16)
			binary.BigEndian.PutUint32(data, 4)
			copy(data[4:], b.Type().String())
			r, err := decodeOne(t, data, b)
			if !errors.Is(err, ErrSizeTooSmall) {
				t.Fatalf("err = %v, want ErrSizeTooSmall", err)
			}
			if r.Len() != 8 {
				t.Errorf("decoder consumed %d bytes past the header", 8-r.Len())
			}
		})
	}
}

func TestSourceIDTolerance(t *testing.T) {
	t.Run("oversized", func(t *testing.T) {
		data := rawBox("vsid", []byte{0, 0, 4, 210, 9, 9, 9, 9})
		data = append(data, rawBox("free")...)
		var vsid CueSourceIDBox
		r, err := decodeOne(t, data, &vsid)
		if err != nil {
			t.Fatal(err)
		}
		if vsid.SourceID != 1234 {
			t.Errorf("SourceID = %d", vsid.SourceID)
		}
		if r.Len() != BasicBoxLen {
			t.Errorf("stream not at the next box, %d bytes left", r.Len())
		}
	})
	t.Run("undersized", func(t *testing.T) {
		var vsid CueSourceIDBox
		if _, err := decodeOne(t, rawBox("vsid", []byte{0, 1}), &vsid); !errors.Is(err, ErrSizeTooSmall) {
			t.Errorf("err = %v, want ErrSizeTooSmall", err)
		}
	})
}

func TestEmptyCuePadding(t *testing.T) {
	data := rawBox("vtte", []byte{0, 0, 0})
	var vtte VTTEmptyCueBox
	r, err := decodeOne(t, data, &vtte)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 {
		t.Errorf("%d bytes left", r.Len())
	}
}

func TestCueBoxMissingPayload(t *testing.T) {
	data := rawBox("vttc", rawBox("iden", []byte("1")), rawBox("sttg", []byte("align:start")))
	var cue VTTCueBox
	_, err := decodeOne(t, data, &cue)
	if !errors.Is(err, ErrMissingRequiredChild) {
		t.Fatalf("err = %v, want ErrMissingRequiredChild", err)
	}
	var missing *MissingChildError
	if !errors.As(err, &missing) || missing.Child != TypePAYL || missing.Parent != TypeVTTc {
		t.Errorf("err = %#v", err)
	}
}

func TestCueBoxChildLargerThanParent(t *testing.T) {
	data := []byte{0, 0, 0, 20, 'v', 't', 't', 'c', 0, 0, 0, 40, 'p', 'a', 'y', 'l', 'x', 'x', 'x', 'x'}
	var cue VTTCueBox
	if _, err := decodeOne(t, data, &cue); !errors.Is(err, ErrChildLargerThanParent) {
		t.Errorf("err = %v, want ErrChildLargerThanParent", err)
	}
}

func TestCueBoxUnknownAndRepeated(t *testing.T) {
	data := rawBox("vttc",
		rawBox("iden", []byte("first")),
		rawBox("abcd", []byte{1, 2, 3, 4}),
		rawBox("payl", []byte("hello")),
		rawBox("iden", []byte("second")),
		[]byte{0, 0, 0},
	)
	var cue VTTCueBox
	r, err := decodeOne(t, data, &cue)
	if err != nil {
		t.Fatal(err)
	}
	if cue.CueID == nil || cue.CueID.CueID != "second" {
		t.Errorf("CueID = %+v, want second", cue.CueID)
	}
	if cue.Payload.CueText != "hello" || cue.SourceID != nil || cue.CueTime != nil || cue.CueSettings != nil {
		t.Errorf("cue = %+v", cue)
	}
	if r.Len() != 0 {
		t.Errorf("%d bytes left", r.Len())
	}
}

func TestSampleEntryUnknownChild(t *testing.T) {
	data := rawBox("wvtt",
		make([]byte, 6), []byte{0, 1},
		rawBox("vttC", []byte("WEBVTT")),
		rawBox("abcd", []byte{0, 0, 0, 0}),
		rawBox("vlab", []byte("src")),
	)
	var entry WVTTSampleEntry
	if _, err := decodeOne(t, data, &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Config.Config != "WEBVTT" {
		t.Errorf("config = %q", entry.Config.Config)
	}
	if entry.Label == nil || entry.Label.SourceLabel != "src" {
		t.Errorf("label = %+v", entry.Label)
	}
	if entry.DataReferenceIndex != 1 {
		t.Errorf("data_reference_index = %d", entry.DataReferenceIndex)
	}
}

func TestSampleEntryMissingConfig(t *testing.T) {
	data := rawBox("wvtt", make([]byte, 6), []byte{0, 1}, rawBox("vlab", []byte("src")))
	var entry WVTTSampleEntry
	_, err := decodeOne(t, data, &entry)
	var missing *MissingChildError
	if !errors.As(err, &missing) || missing.Child != TypeVTTC {
		t.Errorf("err = %v, want missing vttC", err)
	}
}

func TestSampleEntryReservedIsZeroed(t *testing.T) {
	data := rawBox("wvtt", []byte{1, 2, 3, 4, 5, 6}, []byte{0, 7}, rawBox("vttC", []byte("WEBVTT")))
	var entry WVTTSampleEntry
	if _, err := decodeOne(t, data, &entry); err != nil {
		t.Fatal(err)
	}
	out, err := Marshal(&entry)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out[8:14], make([]byte, 6)) {
		t.Errorf("reserved = %v", out[8:14])
	}
	if entry.DataReferenceIndex != 7 || binary.BigEndian.Uint16(out[14:]) != 7 {
		t.Errorf("data_reference_index not kept")
	}
}

func TestLargeSizeHeader(t *testing.T) {
	data := []byte{0, 0, 0, 1, 'p', 'a', 'y', 'l', 0, 0, 0, 0, 0, 0, 0, 20, 'a', 'b', 'c', 'd'}
	var payl CuePayloadBox
	r, err := decodeOne(t, data, &payl)
	if err != nil {
		t.Fatal(err)
	}
	if payl.CueText != "abcd" || r.Len() != 0 {
		t.Errorf("CueText = %q, %d left", payl.CueText, r.Len())
	}
	var out bytes.Buffer
	if n, _ := NewBasicBox(TypeFREE, 1<<33).Encode(&out); n != 16 {
		t.Errorf("large header is %d bytes", n)
	}
}

func TestReadBoxesSkipsUnknown(t *testing.T) {
	var stream []byte
	for _, b := range []IBox{sampleCue(), &VTTEmptyCueBox{}} {
		buf, _ := Marshal(b)
		stream = append(stream, buf...)
		stream = append(stream, rawBox("zzzz", []byte("ignored"))...)
	}
	var types []string
	err := ReadBoxes(bytes.NewReader(stream), func(b IBox, header *BasicBox) error {
		if b == nil {
			types = append(types, "?"+header.Type.String())
		} else {
			types = append(types, b.Type().String())
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(types, ","); got != "vttc,?zzzz,vtte,?zzzz" {
		t.Errorf("got %s", got)
	}
}

func TestSampleDescriptionSkipsUnknownEntries(t *testing.T) {
	wvtt, _ := Marshal(NewWVTTSampleEntry("WEBVTT"))
	data := rawBox("stsd", []byte{1, 0, 0, 5, 0, 0, 0, 2}, rawBox("tx3g", make([]byte, 8)), wvtt)
	var stsd SampleDescriptionBox
	if _, err := decodeOne(t, data, &stsd); err != nil {
		t.Fatal(err)
	}
	if len(stsd.Entries) != 1 {
		t.Fatalf("%d entries", len(stsd.Entries))
	}
	if stsd.Version != 1 || stsd.Flags != [3]byte{0, 0, 5} {
		t.Errorf("version %d flags %v", stsd.Version, stsd.Flags)
	}
	if entry, ok := stsd.Entries[0].(*WVTTSampleEntry); !ok || entry.Config.Config != "WEBVTT" {
		t.Errorf("entry = %+v", stsd.Entries[0])
	}
}

func TestSample(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var s Sample
		buf, err := s.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf, rawBox("vtte")) {
			t.Errorf("empty sample = %v", buf)
		}
		got, err := DecodeSample(buf)
		if err != nil || !got.IsEmpty() {
			t.Errorf("decoded %+v, %v", got, err)
		}
	})
	t.Run("cues", func(t *testing.T) {
		s := Sample{
			Cues:       []VTTCueBox{*sampleCue(), {Payload: CuePayloadBox{CueText: "second"}}},
			Additional: []VTTAdditionalTextBox{{CueAdditionalText: "NOTE x"}},
		}
		buf, err := s.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		if uint64(len(buf)) != s.Size() {
			t.Fatalf("wrote %d, Size() = %d", len(buf), s.Size())
		}
		got, err := DecodeSample(buf)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(&s, got) {
			t.Errorf("got %+v", got)
		}
	})
}

func TestSummaryAndJSON(t *testing.T) {
	cue := sampleCue()
	if s := cue.Summary(); !strings.Contains(s, "source_id=1234") || !strings.Contains(s, `cue_text="test me"`) {
		t.Errorf("summary %q", s)
	}
	js, err := ToJSON(cue)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"type":"vttc"`, `"size":80`, `"cue_text":"test me"`, `"settings":"align:center"`} {
		if !strings.Contains(js, want) {
			t.Errorf("%s missing %s", js, want)
		}
	}
}

func TestUnmarshal(t *testing.T) {
	b, err := Unmarshal(rawBox("ctim", []byte("00:01.000")))
	if err != nil {
		t.Fatal(err)
	}
	if ctim, ok := b.(*CueTimeBox); !ok || ctim.CurrentTime != "00:01.000" {
		t.Errorf("got %+v", b)
	}
	if _, err = Unmarshal(rawBox("zzzz")); err == nil {
		t.Error("unknown box accepted")
	}
}

func TestCorruptSize(t *testing.T) {
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	for name, data := range map[string][]byte{
		"largesize payl":   append(append([]byte{0, 0, 0, 1, 'p', 'a', 'y', 'l'}, huge...), 'h', 'i'),
		"largesize vttc":   append(append([]byte{0, 0, 0, 1, 'v', 't', 't', 'c'}, huge...), 'h', 'i'),
		"largesize zzzz":   append(append([]byte{0, 0, 0, 1, 'z', 'z', 'z', 'z'}, huge...), 'h', 'i'),
		"32-bit payl":      {0xff, 0xff, 0xff, 0xf0, 'p', 'a', 'y', 'l', 'h', 'i'},
		"past end of vsid": {0, 0, 0, 12, 'v', 's', 'i', 'd', 0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if p := recover(); p != nil {
					t.Fatalf("panic: %v", p)
				}
			}()
			_, _, err := ReadBox(bytes.NewReader(data))
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}
