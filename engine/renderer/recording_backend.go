package renderer

import (
	"slices"
	"sync"
)

// Operation names recorded by RecordingBackend.
const (
	OpCreateVertexBuffer = "CreateVertexBuffer"
	OpCreateIndexBuffer  = "CreateIndexBuffer"
	OpUpdateUniformBlock = "UpdateUniformBlock"
	OpDrawIndexed        = "DrawIndexed"
	OpPresent            = "Present"
	OpClearTargets       = "ClearTargets"
)

// Call is one recorded backend invocation.
type Call struct {
	Op         string
	Block      UniformBlock // UpdateUniformBlock only
	Size       int          // payload size for buffer and uniform uploads
	IndexCount uint32       // DrawIndexed only
	Color      Color        // ClearTargets only
	Err        error        // the injected failure returned by this call, if any
}

// RecordingBackend is an in-memory Backend. It keeps the last payload of every buffer
// and uniform block and a log of calls, and can be told to fail specific operations.
// It backs headless runs and tests.
type RecordingBackend struct {
	mu sync.Mutex

	calls    []Call
	history  int
	vertices []byte
	indices  []byte
	uniforms map[UniformBlock][]byte
	failures map[string][]error
	presents int
	draws    int
}

var _ Backend = &RecordingBackend{}

// RecordingOption is a functional option applied to a RecordingBackend.
type RecordingOption func(*RecordingBackend)

// WithHistory bounds the call log to the most recent n calls. Zero keeps every call.
//
// Parameters:
//   - n: maximum number of calls retained
//
// Returns:
//   - RecordingOption: option function to apply
func WithHistory(n int) RecordingOption {
	return func(r *RecordingBackend) {
		r.history = max(n, 0)
	}
}

// NewRecordingBackend creates an empty RecordingBackend.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - *RecordingBackend: the backend
func NewRecordingBackend(opts ...RecordingOption) *RecordingBackend {
	r := &RecordingBackend{
		uniforms: make(map[UniformBlock][]byte),
		failures: make(map[string][]error),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FailNext queues err to be returned by the next call of op. Queued failures for the
// same op are consumed in order. The call is still recorded, but its payload is dropped.
//
// Parameters:
//   - op: one of the Op* names
//   - err: the error to return
func (r *RecordingBackend) FailNext(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = append(r.failures[op], err)
}

func (r *RecordingBackend) record(c Call) error {
	if queued := r.failures[c.Op]; len(queued) > 0 {
		c.Err = queued[0]
		r.failures[c.Op] = queued[1:]
	}
	r.calls = append(r.calls, c)
	if r.history > 0 && len(r.calls) > r.history {
		r.calls = slices.Delete(r.calls, 0, len(r.calls)-r.history)
	}
	return c.Err
}

func (r *RecordingBackend) CreateVertexBuffer(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record(Call{Op: OpCreateVertexBuffer, Size: len(data)}); err != nil {
		r.vertices = nil
		return err
	}
	r.vertices = slices.Clone(data)
	return nil
}

func (r *RecordingBackend) CreateIndexBuffer(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record(Call{Op: OpCreateIndexBuffer, Size: len(data)}); err != nil {
		r.indices = nil
		return err
	}
	r.indices = slices.Clone(data)
	return nil
}

func (r *RecordingBackend) UpdateUniformBlock(block UniformBlock, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record(Call{Op: OpUpdateUniformBlock, Block: block, Size: len(data)}); err != nil {
		return err
	}
	r.uniforms[block] = slices.Clone(data)
	return nil
}

func (r *RecordingBackend) DrawIndexed(indexCount uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record(Call{Op: OpDrawIndexed, IndexCount: indexCount}); err != nil {
		return err
	}
	r.draws++
	return nil
}

func (r *RecordingBackend) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record(Call{Op: OpPresent}); err != nil {
		return err
	}
	r.presents++
	return nil
}

func (r *RecordingBackend) ClearTargets(color Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.record(Call{Op: OpClearTargets, Color: color})
}

// Calls returns a copy of the call log.
func (r *RecordingBackend) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Ops returns the operation names of the call log in order.
func (r *RecordingBackend) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Vertices returns the last uploaded vertex payload.
func (r *RecordingBackend) Vertices() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.vertices)
}

// Indices returns the last uploaded index payload.
func (r *RecordingBackend) Indices() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.indices)
}

// Uniform returns the last payload written to block.
//
// Parameters:
//   - block: the uniform block
//
// Returns:
//   - []byte: the payload, or nil if the block was never written
func (r *RecordingBackend) Uniform(block UniformBlock) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.uniforms[block])
}

// Draws returns the number of successful DrawIndexed calls.
func (r *RecordingBackend) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// Presents returns the number of successful Present calls.
func (r *RecordingBackend) Presents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

// Reset clears the call log and counters. Stored payloads and queued failures are kept.
func (r *RecordingBackend) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.draws = 0
	r.presents = 0
}
