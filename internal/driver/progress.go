package driver

import "time"

// Stage is a step of the per-file pipeline, in the order files go
// through them.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageAnalyze Stage = "analyze"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached" // ответ из дискового кеша
)

// Final reports whether no more events follow for the file.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event is one progress update for File. Elapsed is set on final events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from CheckFiles workers concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends every event to Ch and blocks while it is full; the
// reader must drain Ch until CheckFiles returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
