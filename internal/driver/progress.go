package driver

// ScanStatus tracks one file through the check pipeline.
type ScanStatus uint8

const (
	StatusQueued ScanStatus = iota
	StatusScanning
	StatusClean
	StatusIssues
	StatusError
)

// ScanEvent is published as files move through a check run.
type ScanEvent struct {
	Path   string
	Status ScanStatus
	Diags  int
}

// ProgressSink receives scan events. Implementations must not block.
type ProgressSink interface {
	Publish(ev ScanEvent)
}

// ChannelSink forwards events into a channel, dropping them when the
// receiver lags behind.
type ChannelSink struct {
	Ch chan<- ScanEvent
}

func (s ChannelSink) Publish(ev ScanEvent) {
	if s.Ch == nil {
		return
	}
	select {
	case s.Ch <- ev:
	default:
	}
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(ScanEvent) {}

func publish(sink ProgressSink, ev ScanEvent) {
	if sink != nil {
		sink.Publish(ev)
	}
}

func statusForResult(r CheckResult) ScanStatus {
	switch {
	case r.FileID == 0:
		return StatusError
	case r.Clean():
		return StatusClean
	default:
		return StatusIssues
	}
}
