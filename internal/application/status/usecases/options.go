package usecases

const (
	defaultPingHost = "google.com"
	defaultLogLines = 50
	maxLogLines     = 1000
)

// Options tune how the document is assembled.
type Options struct {
	// Parallel evaluates requested topics concurrently.
	Parallel bool
	// StrictEnvelopes reports every envelope carrying an error, and the
	// degraded successes (ping timeout, missing process table, vnstat miss,
	// unknown users action), as status false.
	StrictEnvelopes bool

	DefaultPingHost string
	DefaultLogLines int
	MaxLogLines     int
}

func (o Options) withDefaults() Options {
	if o.DefaultPingHost == "" {
		o.DefaultPingHost = defaultPingHost
	}
	if o.DefaultLogLines <= 0 {
		o.DefaultLogLines = defaultLogLines
	}
	if o.MaxLogLines <= 0 {
		o.MaxLogLines = maxLogLines
	}
	if o.MaxLogLines < o.DefaultLogLines {
		o.MaxLogLines = o.DefaultLogLines
	}
	return o
}
