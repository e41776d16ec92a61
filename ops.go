package redline

import "fmt"

// Op is the kind of an EditOp.
type Op int

const (
	// OpEqual is a run of identical tokens on both sides.
	OpEqual Op = iota
	// OpInsert is a run of tokens present only in the test sequence.
	OpInsert
	// OpDelete is a run of tokens present only in the source sequence.
	OpDelete
	// OpReplace is a run where source tokens were replaced by test tokens.
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// EditOp describes one contiguous run of the transformation from the source
// token sequence to the test token sequence. [I1, I2) indexes the source
// sequence and [J1, J2) the test sequence; both ranges are half-open.
//
// Across a whole edit script, source ranges are adjacent and cover the
// source sequence exactly, in order, and likewise test ranges. Per kind:
// OpEqual has ranges of equal length with identical token text, OpInsert has
// I1 == I2, OpDelete has J1 == J2, OpReplace is non-empty on both sides.
type EditOp struct {
	Op     Op
	I1, I2 int
	J1, J2 int
}

// validateOps checks the covering invariants of an edit script against the
// token sequences it refers to. Match output always passes; this exists so
// tests (and debugging) can prove it.
func validateOps(ops []EditOp, source, test []Token) error {
	ai, bj := 0, 0
	for n, op := range ops {
		if op.I1 != ai || op.J1 != bj {
			return fmt.Errorf("op %d (%s): starts at (%d,%d), want (%d,%d)", n, op.Op, op.I1, op.J1, ai, bj)
		}
		if op.I2 < op.I1 || op.J2 < op.J1 {
			return fmt.Errorf("op %d (%s): negative range (%d,%d,%d,%d)", n, op.Op, op.I1, op.I2, op.J1, op.J2)
		}
		if op.I2 > len(source) || op.J2 > len(test) {
			return fmt.Errorf("op %d (%s): range (%d,%d,%d,%d) exceeds sequence lengths %d/%d",
				n, op.Op, op.I1, op.I2, op.J1, op.J2, len(source), len(test))
		}
		switch op.Op {
		case OpEqual:
			if op.I2-op.I1 != op.J2-op.J1 {
				return fmt.Errorf("op %d: equal run with mismatched lengths %d/%d", n, op.I2-op.I1, op.J2-op.J1)
			}
			if op.I1 == op.I2 {
				return fmt.Errorf("op %d: empty equal run", n)
			}
			for k := 0; k < op.I2-op.I1; k++ {
				if source[op.I1+k].Text != test[op.J1+k].Text {
					return fmt.Errorf("op %d: equal run differs at offset %d: %q != %q",
						n, k, source[op.I1+k].Text, test[op.J1+k].Text)
				}
			}
		case OpInsert:
			if op.I1 != op.I2 || op.J1 == op.J2 {
				return fmt.Errorf("op %d: malformed insert (%d,%d,%d,%d)", n, op.I1, op.I2, op.J1, op.J2)
			}
		case OpDelete:
			if op.J1 != op.J2 || op.I1 == op.I2 {
				return fmt.Errorf("op %d: malformed delete (%d,%d,%d,%d)", n, op.I1, op.I2, op.J1, op.J2)
			}
		case OpReplace:
			if op.I1 == op.I2 || op.J1 == op.J2 {
				return fmt.Errorf("op %d: malformed replace (%d,%d,%d,%d)", n, op.I1, op.I2, op.J1, op.J2)
			}
		default:
			return fmt.Errorf("op %d: unknown op %d", n, int(op.Op))
		}
		ai, bj = op.I2, op.J2
	}
	if ai != len(source) || bj != len(test) {
		return fmt.Errorf("edit script covers (%d,%d) of (%d,%d) tokens", ai, bj, len(source), len(test))
	}
	return nil
}
