package persistence

import (
	"io"
	"sort"

	"github.com/hupe1980/gesturestore/model"
)

// Version is the store format version emitted by writers.
const Version int16 = 1

// Store file layout (all integers big-endian):
//
//	Header   int16  version
//	         int32  entryCount
//	Entry    string entryName (uint16 byte length + UTF-8 bytes)
//	         int32  gestureCount
//	Gesture  int64  gestureID
//	         int32  strokeCount
//	Stroke   int32  pointCount
//	Point    f32    x
//	         f32    y
//	         int64  timestamp

// WriteGesture encodes a single gesture.
func WriteGesture(w *Writer, g *model.Gesture) error {
	if err := w.WriteInt64(g.ID()); err != nil {
		return err
	}
	strokes := g.Strokes()
	if err := w.WriteInt32(int32(len(strokes))); err != nil {
		return err
	}
	for _, s := range strokes {
		if err := w.WriteInt32(int32(len(s.Points))); err != nil {
			return err
		}
		for _, p := range s.Points {
			if err := w.WriteFloat32(p.X); err != nil {
				return err
			}
			if err := w.WriteFloat32(p.Y); err != nil {
				return err
			}
			if err := w.WriteInt64(p.T); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadGesture decodes a single gesture. No partial gesture is ever
// returned: any short read fails with a DecodeError naming the missing
// field.
func ReadGesture(r *Reader) (*model.Gesture, error) {
	id, err := r.ReadInt64("gestureID")
	if err != nil {
		return nil, err
	}
	strokeCount, err := r.ReadInt32("strokeCount")
	if err != nil {
		return nil, err
	}
	if strokeCount < 1 {
		// A gesture always carries at least one stroke; anything else
		// is a malformed file, not an empty gesture.
		return nil, &DecodeError{Field: "strokeCount"}
	}
	strokes := make([]model.Stroke, 0, strokeCount)
	for i := int32(0); i < strokeCount; i++ {
		pointCount, err := r.ReadInt32("pointCount")
		if err != nil {
			return nil, err
		}
		if pointCount < 1 {
			// Strokes are non-empty by construction; a zero-point
			// stroke would poison extraction after load.
			return nil, &DecodeError{Field: "pointCount"}
		}
		points := make([]model.Point, pointCount)
		for j := range points {
			if points[j].X, err = r.ReadFloat32("x"); err != nil {
				return nil, err
			}
			if points[j].Y, err = r.ReadFloat32("y"); err != nil {
				return nil, err
			}
			if points[j].T, err = r.ReadInt64("timestamp"); err != nil {
				return nil, err
			}
		}
		strokes = append(strokes, model.Stroke{Points: points})
	}
	return model.NewGestureWithID(id, strokes), nil
}

// WriteStore encodes the whole label mapping in format version 1.
// Entries are written in lexical name order so identical mappings
// produce identical bytes.
func WriteStore(w io.Writer, entries map[string][]*model.Gesture) error {
	bw := NewWriter(w)

	if err := bw.WriteInt16(Version); err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(len(entries))); err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := bw.WriteString(name); err != nil {
			return err
		}
		gestures := entries[name]
		if err := bw.WriteInt32(int32(len(gestures))); err != nil {
			return err
		}
		for _, g := range gestures {
			if err := WriteGesture(bw, g); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// ReadStore decodes a store file. Unknown format versions are not an
// error: the envelope is recognized but no entries are read, leaving
// room for future formats. Version 1 is the only version with a body.
func ReadStore(r io.Reader) (map[string][]*model.Gesture, error) {
	br := NewReader(r)

	version, err := br.ReadInt16("version")
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]*model.Gesture)
	if version != Version {
		return entries, nil
	}

	entryCount, err := br.ReadInt32("entryCount")
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < entryCount; i++ {
		name, err := br.ReadString("entryName")
		if err != nil {
			return nil, err
		}
		gestureCount, err := br.ReadInt32("gestureCount")
		if err != nil {
			return nil, err
		}
		if gestureCount < 0 {
			return nil, &DecodeError{Field: "gestureCount"}
		}
		gestures := make([]*model.Gesture, 0, gestureCount)
		for j := int32(0); j < gestureCount; j++ {
			g, err := ReadGesture(br)
			if err != nil {
				return nil, err
			}
			gestures = append(gestures, g)
		}
		entries[name] = gestures
	}

	return entries, nil
}
