package redline

// Redline holds a source text and compares successive test texts against
// it. The source is tokenized once at construction; each Compare tokenizes
// the test text, matches, and renders. A Redline is cheap and carries no
// hidden resources, but it is not safe for concurrent use: Compare records
// its results on the session.
type Redline struct {
	opts       Options
	source     string
	sourceToks []Token
	testToks   []Token
	ops        []EditOp
}

// New creates a comparison session for source. opts == nil means the
// default Options. The options are validated up front, so a bad style is
// reported here rather than on first Compare.
func New(source string, opts *Options) (*Redline, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if _, err := o.resolve(); err != nil {
		return nil, err
	}
	return &Redline{
		opts:       o,
		source:     source,
		sourceToks: Tokenize(source),
	}, nil
}

// Compare renders the differences from the session source to test. opts,
// when non-nil, replaces the session options for this call only; it is
// validated before any session state changes. The computed tokens and edit
// script remain available through TestTokens and Ops until the next Compare
// or SetSource.
func (r *Redline) Compare(test string, opts *Options) (string, error) {
	o := r.opts
	if opts != nil {
		o = *opts
		if _, err := o.resolve(); err != nil {
			return "", err
		}
	}
	r.testToks = Tokenize(test)
	r.ops = Match(r.sourceToks, r.testToks)
	return Render(r.ops, r.sourceToks, r.testToks, &o)
}

// Source returns the current source text.
func (r *Redline) Source() string {
	return r.source
}

// SetSource replaces the source text and clears any state from earlier
// Compare calls.
func (r *Redline) SetSource(source string) {
	r.source = source
	r.sourceToks = Tokenize(source)
	r.testToks = nil
	r.ops = nil
}

// SourceTokens returns a copy of the tokenized source.
func (r *Redline) SourceTokens() []Token {
	return append([]Token(nil), r.sourceToks...)
}

// TestTokens returns a copy of the tokens from the most recent Compare, or
// nil if Compare has not been called since the source was set.
func (r *Redline) TestTokens() []Token {
	return append([]Token(nil), r.testToks...)
}

// Ops returns a copy of the edit script from the most recent Compare, or
// nil if Compare has not been called since the source was set.
func (r *Redline) Ops() []EditOp {
	return append([]EditOp(nil), r.ops...)
}

// Compare is the one-shot form: tokenize both texts, match, and render in
// a single call. opts == nil means the default Options.
func Compare(source, test string, opts *Options) (string, error) {
	r, err := New(source, opts)
	if err != nil {
		return "", err
	}
	return r.Compare(test, nil)
}
