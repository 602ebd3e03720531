package generator

// ProgressSink receives "current of total" updates during a bulk run.
// Implementations must not block the generator indefinitely.
type ProgressSink interface {
	Progress(current, total int)
}

// Sink additionally receives the single terminal outcome of a bulk run.
type Sink interface {
	ProgressSink
	Done(result *BulkResult)
	Fail(err error)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(current, total int)

func (f ProgressFunc) Progress(current, total int) {
	f(current, total)
}

type discardProgress struct{}

func (discardProgress) Progress(int, int) {}
