package box

import (
	"fmt"
	"io"

	"m7s.live/mp4vtt/pkg/util"
)

// aligned(8) class SampleDescriptionBox (unsigned int(32) handler_type) extends FullBox('stsd', 0, 0){
// 	int i ;
// 	unsigned int(32) entry_count;
// 	   for (i = 1 ; i <= entry_count ; i++){
// 		  switch (handler_type){
// 			 case 'text': // for text tracks
// 				wvtt
// 				break;
// 		}
// 	}
// }

// SampleDescriptionBox keeps only the entries this package can decode;
// others are skipped and not counted on re-encode.
type SampleDescriptionBox struct {
	FullBox
	Entries []IBox `json:"entries"`
}

func (stsd *SampleDescriptionBox) Type() BoxType {
	return TypeSTSD
}

func (stsd *SampleDescriptionBox) Size() uint64 {
	size := uint64(FullBoxLen + 4)
	for _, entry := range stsd.Entries {
		size += entry.Size()
	}
	return size
}

func (stsd *SampleDescriptionBox) Decode(r io.ReadSeeker, header *BasicBox) error {
	c, err := openCursor(r, header)
	if err != nil {
		return err
	}
	var decoded SampleDescriptionBox
	if err = decoded.FullBox.Decode(c); err != nil {
		return err
	}
	buf := make([]byte, 4)
	if err = c.ReadFull(buf); err != nil {
		return err
	}
	reader := util.Buffer(buf)
	entryCount := reader.ReadUint32()
	for i := uint32(0); i < entryCount; i++ {
		child, err := c.Next()
		if err != nil {
			return err
		}
		if child == nil {
			break
		}
		switch child.Type {
		case TypeWVTT:
			entry := &WVTTSampleEntry{}
			if err = entry.Decode(r, child); err != nil {
				return err
			}
			decoded.Entries = append(decoded.Entries, entry)
		default:
			if err = c.SkipChild(child); err != nil {
				return err
			}
		}
	}
	if err = c.SkipToEnd(); err != nil {
		return err
	}
	*stsd = decoded
	return nil
}

func (stsd *SampleDescriptionBox) Encode(w io.Writer) (n int, err error) {
	size := stsd.Size()
	buf := make(util.Buffer, 0, size)
	if _, err = stsd.FullBox.Encode(&buf, TypeSTSD, size); err != nil {
		return
	}
	buf.WriteUint32(uint32(len(stsd.Entries)))
	for _, entry := range stsd.Entries {
		if _, err = entry.Encode(&buf); err != nil {
			return
		}
	}
	return w.Write(buf)
}

func (stsd *SampleDescriptionBox) Summary() string {
	return fmt.Sprintf("entry_count=%d", len(stsd.Entries))
}
