package media

import (
	"sync"
	"time"
)

// Fake is an in-memory Handle for tests. Preparation and completion only
// happen when the test calls Prepare, FailPrepare or Complete.
type Fake struct {
	mu sync.Mutex

	source     string
	sourceErr  error
	preparing  bool
	prepared   bool
	started    bool
	position   time.Duration
	duration   time.Duration
	params     Params
	paramsErr  error
	startCalls int
	resetCalls int
	seekCalls  []time.Duration

	onPrepared   func()
	onCompletion func()
	onError      func(error)
}

// NewFake creates a fake handle whose sources last d once prepared.
func NewFake(d time.Duration) *Fake {
	return &Fake{duration: d, params: NeutralParams}
}

func (f *Fake) SetDataSource(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sourceErr != nil {
		return f.sourceErr
	}
	f.source = path
	return nil
}

func (f *Fake) SetOnPrepared(fn func()) {
	f.mu.Lock()
	f.onPrepared = fn
	f.mu.Unlock()
}

func (f *Fake) SetOnCompletion(fn func()) {
	f.mu.Lock()
	f.onCompletion = fn
	f.mu.Unlock()
}

func (f *Fake) SetOnError(fn func(error)) {
	f.mu.Lock()
	f.onError = fn
	f.mu.Unlock()
}

func (f *Fake) PrepareAsync() {
	f.mu.Lock()
	f.preparing = f.source != ""
	f.mu.Unlock()
}

func (f *Fake) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.prepared {
		f.started = true
	}
}

func (f *Fake) SeekTo(pos time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.prepared {
		return ErrNotPrepared
	}
	f.seekCalls = append(f.seekCalls, pos)
	f.position = pos
	return nil
}

func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetCalls++
	f.source = ""
	f.preparing = false
	f.prepared = false
	f.started = false
	f.position = 0
	f.params = NeutralParams
}

func (f *Fake) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.prepared {
		return 0
	}
	return f.duration
}

func (f *Fake) CurrentPosition() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *Fake) PlaybackParams() Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params
}

func (f *Fake) SetPlaybackParams(p Params) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paramsErr != nil {
		return f.paramsErr
	}
	if !f.prepared {
		return ErrNotPrepared
	}
	f.params = p
	return nil
}

// Test helpers

// Prepare completes a pending PrepareAsync, even one a Reset superseded,
// and runs the prepared callback on the caller's goroutine.
func (f *Fake) Prepare() {
	f.mu.Lock()
	f.preparing = false
	f.prepared = true
	cb := f.onPrepared
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// FailPrepare runs the error callback with err.
func (f *Fake) FailPrepare(err error) {
	f.mu.Lock()
	f.preparing = false
	cb := f.onError
	f.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

// Complete simulates reaching the end of the stream.
func (f *Fake) Complete() {
	f.mu.Lock()
	f.started = false
	f.position = f.duration
	cb := f.onCompletion
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (f *Fake) SetDataSourceError(err error) {
	f.mu.Lock()
	f.sourceErr = err
	f.mu.Unlock()
}

func (f *Fake) SetPlaybackParamsError(err error) {
	f.mu.Lock()
	f.paramsErr = err
	f.mu.Unlock()
}

func (f *Fake) SetPosition(d time.Duration) {
	f.mu.Lock()
	f.position = d
	f.mu.Unlock()
}

func (f *Fake) Source() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.source
}

func (f *Fake) Preparing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preparing
}

func (f *Fake) Started() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *Fake) StartCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls
}

func (f *Fake) ResetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetCalls
}

func (f *Fake) SeekCalls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.seekCalls...)
}

var _ Handle = (*Fake)(nil)
