// Package webvtt reads and writes WebVTT text and maps its cues onto the
// sample boxes of pkg/box.
package webvtt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const Signature = "WEBVTT"

var (
	ErrNoSignature      = errors.New("missing WEBVTT signature")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidTiming    = errors.New("invalid cue timing line")
)

type Cue struct {
	ID       string
	Start    time.Duration
	End      time.Duration
	Settings string
	Payload  string
}

// Document is a parsed WebVTT file. Header holds everything before the first
// cue, signature line included; it becomes the vttC configuration.
type Document struct {
	Header string
	Cues   []Cue
}

type block struct {
	line  int
	lines []string
}

func splitBlocks(text string) (blocks []block) {
	var cur *block
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{line: i + 1})
			cur = &blocks[len(blocks)-1]
		}
		cur.lines = append(cur.lines, line)
	}
	return
}

func (b *block) isCue() bool {
	if strings.Contains(b.lines[0], "-->") {
		return true
	}
	return len(b.lines) > 1 && strings.Contains(b.lines[1], "-->")
}

// Parse reads a WebVTT file. A UTF-8 BOM is dropped. NOTE, STYLE and REGION
// blocks ahead of the first cue stay in the header; later NOTE blocks are
// discarded.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	blocks := splitBlocks(text)
	if len(blocks) == 0 || !isSignature(blocks[0].lines[0]) || blocks[0].line != 1 {
		return nil, ErrNoSignature
	}
	var doc Document
	header := []string{strings.Join(blocks[0].lines, "\n")}
	for _, b := range blocks[1:] {
		if !b.isCue() {
			if len(doc.Cues) == 0 {
				header = append(header, strings.Join(b.lines, "\n"))
			}
			continue
		}
		cue, err := parseCue(&b)
		if err != nil {
			return nil, err
		}
		doc.Cues = append(doc.Cues, cue)
	}
	doc.Header = strings.Join(header, "\n\n")
	return &doc, nil
}

func isSignature(line string) bool {
	rest, ok := strings.CutPrefix(line, Signature)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

func parseCue(b *block) (cue Cue, err error) {
	lines, line := b.lines, b.line
	if !strings.Contains(lines[0], "-->") {
		cue.ID = lines[0]
		lines = lines[1:]
		line++
	}
	start, rest, _ := strings.Cut(lines[0], "-->")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return cue, fmt.Errorf("line %d: %w", line, ErrInvalidTiming)
	}
	if cue.Start, err = ParseTimestamp(strings.TrimSpace(start)); err != nil {
		return cue, fmt.Errorf("line %d: %w", line, err)
	}
	if cue.End, err = ParseTimestamp(fields[0]); err != nil {
		return cue, fmt.Errorf("line %d: %w", line, err)
	}
	if cue.End < cue.Start {
		return cue, fmt.Errorf("line %d: cue ends before it starts: %w", line, ErrInvalidTiming)
	}
	cue.Settings = strings.Join(fields[1:], " ")
	cue.Payload = strings.Join(lines[1:], "\n")
	return cue, nil
}

// ParseTimestamp accepts "mm:ss.ttt" and "hh:mm:ss.ttt".
func ParseTimestamp(s string) (time.Duration, error) {
	hms, frac, ok := strings.Cut(s, ".")
	if !ok || len(frac) != 3 {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
	}
	parts := strings.Split(hms, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	} else if len(parts) != 3 || len(parts[0]) < 2 {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
	}
	var v [4]int
	for i, p := range append(parts, frac) {
		if i > 0 && i < 3 && len(p) != 2 {
			return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
		}
		v[i] = n
	}
	if v[1] > 59 || v[2] > 59 {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
	}
	return time.Duration(v[0])*time.Hour + time.Duration(v[1])*time.Minute +
		time.Duration(v[2])*time.Second + time.Duration(v[3])*time.Millisecond, nil
}

func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// Render writes doc back as WebVTT text.
func Render(w io.Writer, doc *Document) error {
	var sb strings.Builder
	header := doc.Header
	if header == "" {
		header = Signature
	}
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, cue := range doc.Cues {
		if cue.ID != "" {
			sb.WriteString(cue.ID)
			sb.WriteByte('\n')
		}
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		if cue.Settings != "" {
			sb.WriteByte(' ')
			sb.WriteString(cue.Settings)
		}
		sb.WriteByte('\n')
		if cue.Payload != "" {
			sb.WriteString(cue.Payload)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
