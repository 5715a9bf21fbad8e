package box

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"m7s.live/mp4vtt/pkg/util"
)

const (
	BasicBoxLen = 8
	FullBoxLen  = 12
	largeBoxLen = 16
)

type BoxType [4]byte

func (t BoxType) String() string {
	return string(t[:])
}

func (t BoxType) MarshalText() ([]byte, error) {
	return t[:], nil
}

func f(s string) BoxType {
	return BoxType([]byte(s))
}

var (
	TypeSTSD = f("stsd")
	TypeFREE = f("free")

	TypeVSID = f("vsid")
	TypeIDEN = f("iden")
	TypeCTIM = f("ctim")
	TypeSTTG = f("sttg")
	TypePAYL = f("payl")
	TypeVLAB = f("vlab")
	TypeVTTC = f("vttC")
	TypeVTTA = f("vtta")
	TypeVTTE = f("vtte")
	TypeVTTc = f("vttc")
	TypeWVTT = f("wvtt")
)

// IBox is implemented by every record of the family. Decode is called after
// the header has been consumed and must leave r at header.Offset+header.Size.
type IBox interface {
	Type() BoxType
	Size() uint64
	Decode(r io.ReadSeeker, header *BasicBox) error
	Encode(w io.Writer) (int, error)
	Summary() string
}

//	aligned(8) class Box (unsigned int(32) boxtype, optional unsigned int(8)[16] extended_type) {
//	    unsigned int(32) size;
//	    unsigned int(32) type = boxtype;
//	    if (size==1) {
//	       unsigned int(64) largesize;
//	    } else if (size==0) {
//	       // box extends to end of file
//	    }
//	}
type BasicBox struct {
	Offset     int64
	Size       uint64
	Type       BoxType
	HeaderSize int
}

func NewBasicBox(boxtype BoxType, size uint64) *BasicBox {
	return &BasicBox{
		Type: boxtype,
		Size: size,
	}
}

// ReadHeader reads a box header at the current position of r.
func ReadHeader(r io.ReadSeeker) (box *BasicBox, err error) {
	box = &BasicBox{}
	if box.Offset, err = r.Seek(0, io.SeekCurrent); err != nil {
		return nil, err
	}
	if _, err = box.Decode(r); err != nil {
		return nil, err
	}
	return
}

func (box *BasicBox) Decode(r io.Reader) (nn int, err error) {
	var buf [8]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return
	}
	box.Size = uint64(binary.BigEndian.Uint32(buf[:4]))
	copy(box.Type[:], buf[4:])
	nn = BasicBoxLen
	if box.Size == 1 {
		if _, err = io.ReadFull(r, buf[:]); err != nil {
			return
		}
		largesize := util.Buffer(buf[:])
		box.Size = largesize.ReadUint64()
		nn += 8
	}
	box.HeaderSize = nn
	return
}

func (box *BasicBox) headerSize() uint64 {
	if box.HeaderSize > 0 {
		return uint64(box.HeaderSize)
	}
	return BasicBoxLen
}

// End is the offset of the first byte after the box.
func (box *BasicBox) End() int64 {
	return box.Offset + int64(box.Size)
}

func (box *BasicBox) Encode(w io.Writer) (int, error) {
	var buf util.Buffer = make([]byte, 0, largeBoxLen)
	if box.Size > 0xFFFFFFFF { //never happens for text boxes
		buf.WriteUint32(1)
		buf.Write(box.Type[:])
		buf.WriteUint64(box.Size)
	} else {
		buf.WriteUint32(uint32(box.Size))
		buf.Write(box.Type[:])
	}
	return w.Write(buf)
}

// aligned(8) class FullBox(unsigned int(32) boxtype, unsigned int(8) v, bit(24) f) extends Box(boxtype) {
//     unsigned int(8) version = v;
//     bit(24) flags = f;
// }

type FullBox struct {
	Version uint8
	Flags   [3]byte
}

func (box *FullBox) Decode(c *Cursor) error {
	buf := make([]byte, 4)
	if err := c.ReadFull(buf); err != nil {
		return err
	}
	box.Version = buf[0]
	copy(box.Flags[:], buf[1:])
	return nil
}

func (box *FullBox) Encode(w io.Writer, boxtype BoxType, size uint64) (n int, err error) {
	if n, err = NewBasicBox(boxtype, size).Encode(w); err != nil {
		return
	}
	var nn int
	nn, err = w.Write([]byte{box.Version, box.Flags[0], box.Flags[1], box.Flags[2]})
	return n + nn, err
}

// Marshal encodes b into a new byte slice.
func Marshal(b IBox) ([]byte, error) {
	buf := make(util.Buffer, 0, b.Size())
	if _, err := b.Encode(&buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ToJSON is a diagnostic dump of b, not part of the wire format.
func ToJSON(b IBox) (string, error) {
	out, err := json.Marshal(struct {
		Type BoxType `json:"type"`
		Size uint64  `json:"size"`
		Box  IBox    `json:"box"`
	}{b.Type(), b.Size(), b})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
