package runtime

import (
	"fmt"
	"io"

	"scriptmem/pkg/color"

	"github.com/fxamacker/cbor/v2"
)

var traceEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("runtime: failed to create CBOR enc mode: %v", err))
	}
	traceEncMode = em
}

// FrameInfo is the diagnostic view of one frame.
type FrameInfo struct {
	Depth  int      `cbor:"1,keyasint"`
	Name   string   `cbor:"2,keyasint"`
	Global bool     `cbor:"3,keyasint"`
	Scopes int      `cbor:"4,keyasint"`
	Stored int      `cbor:"5,keyasint"`
	Vars   []string `cbor:"6,keyasint,omitempty"`
}

// Trace is a snapshot of a thread's call stack, top frame first.
type Trace struct {
	Thread string      `cbor:"1,keyasint"`
	Limit  int         `cbor:"2,keyasint"`
	Frames []FrameInfo `cbor:"3,keyasint"`
}

// Trace captures the thread's frames.
func (t *ThreadStack) Trace() Trace {
	tr := Trace{Thread: t.name, Limit: t.area.Limit()}

	// probe until the stack reports no frame
	for i := 0; ; i++ {
		f, ok := t.FrameFromTop(i)
		if !ok {
			break
		}
		tr.Frames = append(tr.Frames, FrameInfo{
			Depth:  f.Area.Depth(),
			Name:   f.Name(),
			Global: f.Global,
			Scopes: f.Vars.ScopeDepth(),
			Stored: f.Area.Stored(),
			Vars:   f.Vars.Names(),
		})
	}

	return tr
}

// Render writes a human readable trace, eliding the middle of deep stacks.
func (tr Trace) Render(w io.Writer, maxFrames int) error {
	if _, err := fmt.Fprintf(w, "%s %s (%d frames, limit %d)\n",
		color.BoldText("Stack trace of"), color.CyanText(tr.Thread), len(tr.Frames), tr.Limit); err != nil {
		return err
	}

	head, tail := len(tr.Frames), 0
	if maxFrames > 0 && len(tr.Frames) > maxFrames {
		head = maxFrames / 2
		tail = maxFrames - head
	}

	for i, f := range tr.Frames {
		if i >= head && i < len(tr.Frames)-tail {
			if i == head {
				skipped := len(tr.Frames) - head - tail
				if _, err := fmt.Fprintln(w, color.GrayText(fmt.Sprintf("    ... %d frames elided", skipped))); err != nil {
					return err
				}
			}
			continue
		}

		name := f.Name
		if f.Global {
			name = color.YellowText(name)
		}
		if _, err := fmt.Fprintf(w, "  %s %s  stored=%d scopes=%d %v\n",
			color.Position(f.Depth), name, f.Stored, f.Scopes, f.Vars); err != nil {
			return err
		}
	}

	return nil
}

// MarshalBinary encodes the trace as canonical CBOR.
func (tr Trace) MarshalBinary() ([]byte, error) {
	return traceEncMode.Marshal(tr)
}

// DecodeTrace decodes a trace produced by MarshalBinary.
func DecodeTrace(data []byte) (Trace, error) {
	var tr Trace
	if err := cbor.Unmarshal(data, &tr); err != nil {
		return Trace{}, fmt.Errorf("runtime: unmarshal trace: %w", err)
	}
	return tr, nil
}
