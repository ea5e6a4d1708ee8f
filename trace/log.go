package trace

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Call is one recorded entry point with its rendered arguments and result.
type Call struct {
	Seq    int      `cbor:"1,keyasint"`
	Op     string   `cbor:"2,keyasint"`
	Args   []string `cbor:"3,keyasint,omitempty"`
	Result string   `cbor:"4,keyasint,omitempty"`
}

func (c Call) String() string {
	s := fmt.Sprintf("%4d %s(", c.Seq, c.Op)
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	s += ")"
	if c.Result != "" {
		s += " = " + c.Result
	}
	return s
}

// Log is a trace session.
type Log struct {
	Session   string `cbor:"1,keyasint"`
	Name      string `cbor:"2,keyasint,omitempty"`
	StartedAt int64  `cbor:"3,keyasint"`
	Calls     []Call `cbor:"4,keyasint,omitempty"`
}

// Started returns the session start time.
func (l *Log) Started() time.Time { return time.Unix(0, l.StartedAt) }

// Ops returns the operation names in call order.
func (l *Log) Ops() []string {
	ops := make([]string, len(l.Calls))
	for i, c := range l.Calls {
		ops[i] = c.Op
	}
	return ops
}

// ---------------------------------------------------------------------------
// Verification
// ---------------------------------------------------------------------------

// Entry points that are legal while an exception is pending and that never
// raise one themselves.
var exempt = map[string]bool{
	"ExceptionCheck":    true,
	"ExceptionOccurred": true,
	"ExceptionDescribe": true,
	"ExceptionClear":    true,
	"DeleteLocalRef":    true,
}

// Entry points that leave an exception pending on purpose.
var raising = map[string]bool{
	"Throw":    true,
	"ThrowNew": true,
}

// Violation is a break in the call/check pairing found by Verify.
type Violation struct {
	Seq    int
	Op     string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("#%d %s: %s", v.Seq, v.Op, v.Reason)
}

// Verify checks that every entry point that can raise is followed by
// ExceptionCheck before the next such entry point. Only the exempt family
// may run in between. Once an exception is known to be pending, from Throw,
// ThrowNew or an ExceptionCheck that returned true, nothing but the exempt
// family may follow until ExceptionClear or ExceptionDescribe. A trace may
// end with the exception pending.
func Verify(l *Log) []Violation {
	var out []Violation
	var unchecked *Call
	var thrown *Call
	for i := range l.Calls {
		c := &l.Calls[i]
		if exempt[c.Op] {
			switch c.Op {
			case "ExceptionCheck":
				if c.Result == "true" && thrown == nil {
					thrown = c
					if unchecked != nil {
						thrown = unchecked
					}
				}
				unchecked = nil
			case "ExceptionClear", "ExceptionDescribe":
				thrown = nil
			}
			continue
		}
		if unchecked != nil {
			out = append(out, Violation{c.Seq, c.Op,
				fmt.Sprintf("follows #%d %s without an exception check", unchecked.Seq, unchecked.Op)})
		}
		if thrown != nil {
			out = append(out, Violation{c.Seq, c.Op,
				fmt.Sprintf("called while the exception from #%d %s is pending", thrown.Seq, thrown.Op)})
		}
		unchecked, thrown = nil, nil
		if raising[c.Op] {
			thrown = c
		} else {
			unchecked = c
		}
	}
	if unchecked != nil {
		out = append(out, Violation{unchecked.Seq, unchecked.Op, "never checked for an exception"})
	}
	return out
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a Log to canonical CBOR.
func Marshal(l *Log) ([]byte, error) {
	return cborEncMode.Marshal(l)
}

// Unmarshal deserializes a Log from CBOR bytes.
func Unmarshal(data []byte) (*Log, error) {
	var l Log
	if err := cbor.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("trace: unmarshal log: %w", err)
	}
	return &l, nil
}
