package redline

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

func TestMatch_EditScripts(t *testing.T) {
	type opExpectation struct {
		op  Op
		src string
		tst string
	}

	const fox = "The quick brown fox jumps over the lazy dog."

	tests := []struct {
		name   string
		source string
		test   string
		want   []opExpectation
	}{
		{
			name:   "equal sentences",
			source: fox,
			test:   fox,
			want:   []opExpectation{{op: OpEqual, src: fox, tst: fox}},
		},
		{
			name:   "replace phrase in middle",
			source: fox,
			test:   "The quick brown fox walks past the lazy dog.",
			want: []opExpectation{
				{op: OpEqual, src: "The quick brown fox ", tst: "The quick brown fox "},
				{op: OpReplace, src: "jumps over ", tst: "walks past "},
				{op: OpEqual, src: "the lazy dog.", tst: "the lazy dog."},
			},
		},
		{
			name:   "delete word",
			source: fox,
			test:   "The quick brown fox jumps over the dog.",
			want: []opExpectation{
				{op: OpEqual, src: "The quick brown fox jumps over the ", tst: "The quick brown fox jumps over the "},
				{op: OpDelete, src: "lazy ", tst: ""},
				{op: OpEqual, src: "dog.", tst: "dog."},
			},
		},
		{
			name:   "insert word",
			source: "The quick brown fox jumps over the dog.",
			test:   fox,
			want: []opExpectation{
				{op: OpEqual, src: "The quick brown fox jumps over the ", tst: "The quick brown fox jumps over the "},
				{op: OpInsert, src: "", tst: "lazy "},
				{op: OpEqual, src: "dog.", tst: "dog."},
			},
		},
		{
			name:   "append sentence",
			source: fox,
			test:   fox + " It was a sunny day.",
			want: []opExpectation{
				{op: OpEqual, src: fox, tst: fox},
				{op: OpInsert, src: "", tst: " It was a sunny day."},
			},
		},
		{
			name:   "remove sentence",
			source: fox + " It was a sunny day.",
			test:   fox,
			want: []opExpectation{
				{op: OpEqual, src: fox, tst: fox},
				{op: OpDelete, src: " It was a sunny day.", tst: ""},
			},
		},
		{
			name:   "case change rewrites the word",
			source: "The cat",
			test:   "the cat",
			want: []opExpectation{
				{op: OpReplace, src: "The ", tst: "the "},
				{op: OpEqual, src: "cat", tst: "cat"},
			},
		},
		{
			name:   "whitespace tightened",
			source: "a  b",
			test:   "a b",
			want: []opExpectation{
				{op: OpEqual, src: "a", tst: "a"},
				{op: OpReplace, src: "  ", tst: " "},
				{op: OpEqual, src: "b", tst: "b"},
			},
		},
		{
			name:   "identical whitespace",
			source: "   ",
			test:   "   ",
			want:   []opExpectation{{op: OpEqual, src: "   ", tst: "   "}},
		},
		{
			name:   "identical newlines",
			source: "\n\n\n",
			test:   "\n\n\n",
			want:   []opExpectation{{op: OpEqual, src: "\n\n\n", tst: "\n\n\n"}},
		},
		{
			name:   "disjoint texts",
			source: "alpha beta",
			test:   "gamma delta",
			want:   []opExpectation{{op: OpReplace, src: "alpha beta", tst: "gamma delta"}},
		},
		{
			name:   "from empty",
			source: "",
			test:   "hello world",
			want:   []opExpectation{{op: OpInsert, src: "", tst: "hello world"}},
		},
		{
			name:   "to empty",
			source: "hello world",
			test:   "",
			want:   []opExpectation{{op: OpDelete, src: "hello world", tst: ""}},
		},
		{
			name:   "whitespace from empty",
			source: "",
			test:   " ",
			want:   []opExpectation{{op: OpInsert, src: "", tst: " "}},
		},
		{
			name:   "both empty",
			source: "",
			test:   "",
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := Tokenize(tc.source)
			tst := Tokenize(tc.test)
			ops := Match(src, tst)
			require.NoError(t, validateOps(ops, src, tst))

			var got []opExpectation
			for _, op := range ops {
				got = append(got, opExpectation{
					op:  op.Op,
					src: joinTokens(src[op.I1:op.I2]),
					tst: joinTokens(tst[op.J1:op.J2]),
				})
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMatch_WhitespaceNeverAnchors(t *testing.T) {
	// A space shared by two changed phrases must not split the change in
	// two. Anchoring on the space would turn "jumps over" -> "walks past"
	// into two one-word replaces around an untouched " ".
	src := Tokenize("jumps over")
	tst := Tokenize("walks past")
	ops := Match(src, tst)
	require.NoError(t, validateOps(ops, src, tst))
	require.Len(t, ops, 1)
	require.Equal(t, OpReplace, ops[0].Op)

	// Same shape with different words on both sides.
	src = Tokenize("p q")
	tst = Tokenize("x y")
	ops = Match(src, tst)
	require.Len(t, ops, 1)
	require.Equal(t, OpReplace, ops[0].Op)

	// Matching whitespace is still kept as equal when it leads into a
	// change: it rides along with the match extension, not as an anchor.
	src = Tokenize(" x")
	tst = Tokenize(" y")
	ops = Match(src, tst)
	require.NoError(t, validateOps(ops, src, tst))
	require.Len(t, ops, 2)
	require.Equal(t, OpEqual, ops[0].Op)
	require.Equal(t, " ", joinTokens(src[ops[0].I1:ops[0].I2]))
	require.Equal(t, OpReplace, ops[1].Op)
}

func TestMatch_EarliestBlockWins(t *testing.T) {
	// "a" appears twice in the source; the match must bind to the first
	// occurrence so repeated runs never flap between equally good blocks.
	src := Tokenize("x a y a z")
	tst := Tokenize("a")
	ops := Match(src, tst)
	require.NoError(t, validateOps(ops, src, tst))

	require.Len(t, ops, 3)
	require.Equal(t, OpDelete, ops[0].Op)
	require.Equal(t, "x ", joinTokens(src[ops[0].I1:ops[0].I2]))
	require.Equal(t, OpEqual, ops[1].Op)
	require.Equal(t, "a", joinTokens(src[ops[1].I1:ops[1].I2]))
	require.Equal(t, OpDelete, ops[2].Op)
	require.Equal(t, " y a z", joinTokens(src[ops[2].I1:ops[2].I2]))

	// Mirrored: twice in the test text, bind to the first occurrence there.
	src = Tokenize("a")
	tst = Tokenize("x a y a z")
	ops = Match(src, tst)
	require.NoError(t, validateOps(ops, src, tst))

	require.Len(t, ops, 3)
	require.Equal(t, OpInsert, ops[0].Op)
	require.Equal(t, "x ", joinTokens(tst[ops[0].J1:ops[0].J2]))
	require.Equal(t, OpEqual, ops[1].Op)
	require.Equal(t, OpInsert, ops[2].Op)
	require.Equal(t, " y a z", joinTokens(tst[ops[2].J1:ops[2].J2]))
}

func TestMatch_ValidOnHardInputs(t *testing.T) {
	// No exact scripts here, just the structural guarantees: every script
	// must partition both token sequences in order, with equal runs
	// actually equal. Shapes chosen to stress repeats, whitespace runs,
	// and mixed line endings.
	pairs := [][2]string{
		{"a a a a a a", "a a a"},
		{"to be or not to be", "not to be or to be"},
		{"one\ntwo\nthree\n", "three\ntwo\none\n"},
		{"crlf\r\nendings\r\nhere", "crlf\nendings\nhere"},
		{"tabs\tand  runs   of spaces", "tabs and runs of spaces"},
		{"¿dónde está la biblioteca? 你好 👍", "¿dónde estaba la biblioteca? 再见 👍"},
		{"word", "word word word word word word word word"},
		{strings.Repeat("lorem ipsum dolor sit amet ", 40), strings.Repeat("lorem ipsum dolor sit amet ", 39) + "consectetur adipiscing elit"},
	}

	for _, p := range pairs {
		for _, pair := range [][2]string{p, {p[1], p[0]}} {
			src := Tokenize(pair[0])
			tst := Tokenize(pair[1])
			ops := Match(src, tst)
			require.NoError(t, validateOps(ops, src, tst), "source %q test %q", pair[0], pair[1])
		}
	}
}

func TestMatch_DifflibParity(t *testing.T) {
	// The block construction follows Python difflib's SequenceMatcher. On
	// sequences with no whitespace tokens the whitespace handling never
	// kicks in, so the scripts must agree with go-difflib opcode for
	// opcode, junk and autojunk disabled.
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "shifted with edits", a: "q a b x c d", b: "a b y c d z"},
		{name: "drop and extend", a: "one two three four", b: "one three four five"},
		{name: "heavy repeats", a: "to be or not to be", b: "to be a bee"},
		{name: "identical", a: "alpha beta gamma", b: "alpha beta gamma"},
		{name: "disjoint", a: "red green blue", b: "cyan magenta yellow"},
		{
			name: "long shuffle",
			a:    "the cat sat on the mat and the dog sat on the rug",
			b:    "the dog sat on the mat and the cat lay on the rug",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			aw := strings.Fields(tc.a)
			bw := strings.Fields(tc.b)

			sm := difflib.NewMatcherWithJunk(aw, bw, false, nil)
			want := sm.GetOpCodes()

			ops := Match(wordTokens(aw), wordTokens(bw))
			require.Len(t, ops, len(want))
			for i, oc := range want {
				require.Equal(t, oc.Tag, difflibTag(ops[i].Op), "op %d", i)
				require.Equal(t, oc.I1, ops[i].I1, "op %d", i)
				require.Equal(t, oc.I2, ops[i].I2, "op %d", i)
				require.Equal(t, oc.J1, ops[i].J1, "op %d", i)
				require.Equal(t, oc.J2, ops[i].J2, "op %d", i)
			}
		})
	}
}

func wordTokens(words []string) []Token {
	toks := make([]Token, len(words))
	for i, w := range words {
		toks[i] = Token{Text: w, Kind: KindWord}
	}
	return toks
}

func difflibTag(op Op) byte {
	switch op {
	case OpEqual:
		return 'e'
	case OpInsert:
		return 'i'
	case OpDelete:
		return 'd'
	case OpReplace:
		return 'r'
	}
	return 0
}
