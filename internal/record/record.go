// Package record writes and reads streams of normalized pointer events in
// protobuf wire format, each message prefixed by its varint length.
package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// Field numbers of the Entry message.
const (
	fieldID            protowire.Number = 1
	fieldKind          protowire.Number = 2
	fieldType          protowire.Number = 3
	fieldX             protowire.Number = 4
	fieldY             protowire.Number = 5
	fieldFlags         protowire.Number = 6
	fieldTypeFlags     protowire.Number = 7
	fieldMask          protowire.Number = 8
	fieldChangedButton protowire.Number = 9
	fieldRotation      protowire.Number = 10
	fieldPressure      protowire.Number = 11
	fieldTiltX         protowire.Number = 12
	fieldTiltY         protowire.Number = 13
	fieldTargetDisplay protowire.Number = 14
	fieldWindow        protowire.Number = 15
	fieldTimestamp     protowire.Number = 16
)

// maxEntrySize bounds a single message so a corrupt length cannot make the
// reader allocate without limit.
const maxEntrySize = 1 << 16

var ErrCorrupt = errors.New("corrupt record")

// Entry is one recorded event.
type Entry struct {
	Time   time.Time
	Window uint64
	Event  pointer.Event
}

// Marshal encodes e as a protobuf message. Zero fields are omitted.
func Marshal(e Entry) []byte {
	var b []byte
	ev := e.Event

	b = appendVarint(b, fieldID, protowire.EncodeZigZag(int64(ev.ID)))
	b = appendVarint(b, fieldKind, uint64(ev.Kind))
	b = appendVarint(b, fieldType, uint64(ev.Type))
	b = appendFloat(b, fieldX, ev.Position.X)
	b = appendFloat(b, fieldY, ev.Position.Y)
	b = appendVarint(b, fieldFlags, uint64(ev.Aux.Flags))
	b = appendVarint(b, fieldTypeFlags, uint64(ev.Aux.TypeFlags))
	b = appendVarint(b, fieldMask, uint64(ev.Aux.Mask))
	b = appendVarint(b, fieldChangedButton, uint64(ev.Aux.ChangedButton))
	b = appendVarint(b, fieldRotation, uint64(ev.Aux.Rotation))
	b = appendVarint(b, fieldPressure, uint64(ev.Aux.Pressure))
	b = appendVarint(b, fieldTiltX, protowire.EncodeZigZag(int64(ev.Aux.TiltX)))
	b = appendVarint(b, fieldTiltY, protowire.EncodeZigZag(int64(ev.Aux.TiltY)))
	b = appendVarint(b, fieldTargetDisplay, protowire.EncodeZigZag(int64(ev.TargetDisplay)))
	b = appendVarint(b, fieldWindow, e.Window)
	if !e.Time.IsZero() {
		b = appendVarint(b, fieldTimestamp, uint64(e.Time.UnixNano()))
	}
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

// Unmarshal decodes a message produced by Marshal. Unknown fields are
// skipped.
func Unmarshal(b []byte) (Entry, error) {
	var e Entry
	ev := &e.Event

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Entry{}, fmt.Errorf("tag: %w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("field %d: %w: %v", num, ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			setVarint(&e, num, v)
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("field %d: %w: %v", num, ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldX:
				ev.Position.X = math.Float32frombits(v)
			case fieldY:
				ev.Position.Y = math.Float32frombits(v)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Entry{}, fmt.Errorf("field %d: %w: %v", num, ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return e, nil
}

func setVarint(e *Entry, num protowire.Number, v uint64) {
	ev := &e.Event
	switch num {
	case fieldID:
		ev.ID = int32(protowire.DecodeZigZag(v))
	case fieldKind:
		ev.Kind = pointer.Kind(v)
	case fieldType:
		ev.Type = pointer.Type(v)
	case fieldFlags:
		ev.Aux.Flags = uint32(v)
	case fieldTypeFlags:
		ev.Aux.TypeFlags = uint32(v)
	case fieldMask:
		ev.Aux.Mask = uint32(v)
	case fieldChangedButton:
		ev.Aux.ChangedButton = pointer.ButtonChange(v)
	case fieldRotation:
		ev.Aux.Rotation = uint32(v)
	case fieldPressure:
		ev.Aux.Pressure = uint32(v)
	case fieldTiltX:
		ev.Aux.TiltX = int32(protowire.DecodeZigZag(v))
	case fieldTiltY:
		ev.Aux.TiltY = int32(protowire.DecodeZigZag(v))
	case fieldTargetDisplay:
		ev.TargetDisplay = int(protowire.DecodeZigZag(v))
	case fieldWindow:
		e.Window = v
	case fieldTimestamp:
		e.Time = time.Unix(0, int64(v))
	}
}

// Writer appends length-prefixed entries to an io.Writer.
type Writer struct {
	w   io.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(e Entry) error {
	msg := Marshal(e)
	w.buf = protowire.AppendVarint(w.buf[:0], uint64(len(msg)))
	w.buf = append(w.buf, msg...)
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// Reader reads entries written by Writer.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next entry, or io.EOF at a clean end of stream.
func (r *Reader) Next() (Entry, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("read length: %w", err)
	}
	if size > maxEntrySize {
		return Entry{}, fmt.Errorf("entry of %d bytes: %w", size, ErrCorrupt)
	}

	msg := make([]byte, size)
	if _, err := io.ReadFull(r.r, msg); err != nil {
		return Entry{}, fmt.Errorf("read entry: %w", err)
	}
	return Unmarshal(msg)
}

// ReadAll drains r.
func ReadAll(r io.Reader) ([]Entry, error) {
	rd := NewReader(r)
	var entries []Entry
	for {
		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
}
