package driver

import "time"

// Stage describes one step of processing a snapshot file.
type Stage string

const (
	// StageLoad is reading and validating the snapshot.
	StageLoad Stage = "load"
	// StageTransform is applying the requested transforms.
	StageTransform Stage = "transform"
	// StageWrite is writing the result snapshot.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished.
	StatusDone Status = "done"
	// StatusError indicates processing failed.
	StatusError Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must tolerate
// calls from multiple goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
