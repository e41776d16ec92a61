package redline

import "sort"

// Match computes the edit script turning source into test. Tokens compare by
// Text only; Kind never makes two tokens unequal.
//
// The algorithm finds the longest contiguous block of matching tokens, then
// treats the regions before and after it the same way, building a covering
// set of matching blocks; gaps between blocks become insert/delete/replace
// runs. Favoring long untouched blocks over a minimal operation count is
// what makes the result read well for prose. The flank regions are processed
// through an explicit work stack, so depth is bounded regardless of input
// shape.
//
// Two fixed policies make the output deterministic and keep changed phrases
// together:
//
//   - Whitespace never anchors a match. KindSpace tokens are left out of the
//     position index, so a matching block starts and chains on words only;
//     once the best block is found it absorbs the content-equal whitespace
//     immediately following it on both sides. The space between two changed
//     words therefore stays inside the changed run ("jumps over " against
//     "walks past " is one replace, not two), while the space after an
//     unchanged word travels with that word.
//   - Ties break earliest: among equally long blocks, the one beginning
//     earliest in source wins, then earliest in test.
//
// Identical sequences short-circuit to a single equal run covering
// everything. Match always returns a valid covering partition; an empty
// script means both inputs were empty.
func Match(source, test []Token) []EditOp {
	if sameTokens(source, test) {
		if len(source) == 0 {
			return nil
		}
		return []EditOp{{Op: OpEqual, I1: 0, I2: len(source), J1: 0, J2: len(test)}}
	}

	// Index of token text -> ascending positions in test, words only.
	b2j := make(map[string][]int)
	for j, tok := range test {
		if tok.Kind == KindSpace {
			continue
		}
		b2j[tok.Text] = append(b2j[tok.Text], j)
	}

	type region struct {
		alo, ahi, blo, bhi int
	}
	stack := []region{{0, len(source), 0, len(test)}}
	var blocks []matchBlock
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m := longestMatch(source, test, b2j, r.alo, r.ahi, r.blo, r.bhi)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		stack = append(stack,
			region{r.alo, m.a, r.blo, m.b},
			region{m.a + m.size, r.ahi, m.b + m.size, r.bhi},
		)
	}

	// The stack yields blocks out of order; restore sequence order, then
	// coalesce blocks that abut on both sides.
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].a != blocks[j].a {
			return blocks[i].a < blocks[j].a
		}
		return blocks[i].b < blocks[j].b
	})
	merged := blocks[:0]
	for _, m := range blocks {
		if n := len(merged); n > 0 && merged[n-1].a+merged[n-1].size == m.a && merged[n-1].b+merged[n-1].size == m.b {
			merged[n-1].size += m.size
			continue
		}
		merged = append(merged, m)
	}
	// Sentinel so the loop below flushes the trailing gap.
	merged = append(merged, matchBlock{a: len(source), b: len(test)})

	var ops []EditOp
	ai, bj := 0, 0
	for _, m := range merged {
		switch {
		case ai < m.a && bj < m.b:
			ops = append(ops, EditOp{Op: OpReplace, I1: ai, I2: m.a, J1: bj, J2: m.b})
		case ai < m.a:
			ops = append(ops, EditOp{Op: OpDelete, I1: ai, I2: m.a, J1: bj, J2: bj})
		case bj < m.b:
			ops = append(ops, EditOp{Op: OpInsert, I1: ai, I2: ai, J1: bj, J2: m.b})
		}
		if m.size > 0 {
			ops = append(ops, EditOp{Op: OpEqual, I1: m.a, I2: m.a + m.size, J1: m.b, J2: m.b + m.size})
		}
		ai, bj = m.a+m.size, m.b+m.size
	}
	return ops
}

// matchBlock is a run of size tokens with source[a:a+size] textually equal
// to test[b:b+size].
type matchBlock struct {
	a, b, size int
}

// longestMatch finds the longest matching block within source[alo:ahi] and
// test[blo:bhi], anchored on word tokens, then extends it rightward over
// content-equal whitespace. size 0 means no word matches and the region
// does not begin with matching whitespace on both sides.
//
// The scan keeps, per position j in test, the length of the longest chain of
// matches ending at the current source position and j; a strict improvement
// test gives the earliest-in-source, then earliest-in-test tie-break.
func longestMatch(source, test []Token, b2j map[string][]int, alo, ahi, blo, bhi int) matchBlock {
	best := matchBlock{a: alo, b: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range b2j[source[i].Text] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > best.size {
				best = matchBlock{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = newj2len
	}
	for best.a+best.size < ahi && best.b+best.size < bhi {
		s, t := source[best.a+best.size], test[best.b+best.size]
		if s.Kind != KindSpace || t.Kind != KindSpace || s.Text != t.Text {
			break
		}
		best.size++
	}
	return best
}

func sameTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
