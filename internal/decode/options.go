package decode

// Options configures Decode (spec §6.1, §4.10, §5's security limits).
type Options struct {
	// Strict enables strict-mode validation (spec §4.10): table
	// row/field-count mismatches are fatal (E001/E002) instead of
	// best-effort reconstructed. Defaults to true.
	Strict bool

	MaxDocumentBytes int // default 100 MiB, spec §5 E301
	MaxLineBytes     int // default 1 MiB, spec §5 E302
	MaxArrayLen      int // default 1,000,000, spec §5 E303
	MaxObjectKeys    int // default 100,000, spec §5 E304
	MaxDepth         int // default 100, spec §5 DecodeDepth
}

const (
	defaultMaxDocumentBytes = 100 * 1024 * 1024
	defaultMaxLineBytes     = 1 * 1024 * 1024
	defaultMaxArrayLen      = 1_000_000
	defaultMaxObjectKeys    = 100_000
	defaultMaxDepth         = 100
)

// DefaultOptions returns the spec §5/§6.1 defaults: strict mode on,
// limits at their documented defaults.
func DefaultOptions() Options {
	return Options{
		Strict:           true,
		MaxDocumentBytes: defaultMaxDocumentBytes,
		MaxLineBytes:     defaultMaxLineBytes,
		MaxArrayLen:      defaultMaxArrayLen,
		MaxObjectKeys:    defaultMaxObjectKeys,
		MaxDepth:         defaultMaxDepth,
	}
}

// withDefaults fills any zero-valued limit with its spec default,
// leaving an explicitly-set (including deliberately tiny) limit alone.
func (o Options) withDefaults() Options {
	if o.MaxDocumentBytes == 0 {
		o.MaxDocumentBytes = defaultMaxDocumentBytes
	}
	if o.MaxLineBytes == 0 {
		o.MaxLineBytes = defaultMaxLineBytes
	}
	if o.MaxArrayLen == 0 {
		o.MaxArrayLen = defaultMaxArrayLen
	}
	if o.MaxObjectKeys == 0 {
		o.MaxObjectKeys = defaultMaxObjectKeys
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return o
}
