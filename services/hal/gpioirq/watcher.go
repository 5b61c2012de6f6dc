// services/hal/gpioirq/watcher.go
package gpioirq

import (
	"sync"
	"sync/atomic"

	"joytracker/errcode"
	"joytracker/services/hal/halcore"
	"joytracker/types"
)

// Sink receives button edges directly in interrupt context.
// HandleEdge MUST NOT block, allocate or take locks.
type Sink interface {
	HandleEdge(id types.ButtonID, edge halcore.Edge)
}

// Watcher owns the IRQ registrations of the push buttons and forwards every
// edge to a single Sink. There is no queue: the sink runs in the ISR.
type Watcher struct {
	sink Sink

	mu     sync.Mutex
	inputs map[types.ButtonID]*watch

	calls uint32 // ISR invocations
}

type watch struct {
	id        types.ButtonID
	pin       halcore.IRQPin
	edge      halcore.Edge
	cancelIRQ func()
}

func New(sink Sink) *Watcher {
	return &Watcher{
		sink:   sink,
		inputs: map[types.ButtonID]*watch{},
	}
}

// RegisterButton configures pin as an input with the given pull and routes
// its interrupts to the sink as id. The returned func unregisters it.
func (w *Watcher) RegisterButton(id types.ButtonID, pin halcore.IRQPin, pull halcore.Pull, edge halcore.Edge) (func(), error) {
	if id == types.ButtonUnknown {
		return nil, errcode.UnknownButton
	}
	if edge == halcore.EdgeNone {
		return func() {}, nil
	}

	w.mu.Lock()
	_, taken := w.inputs[id]
	w.mu.Unlock()
	if taken {
		return nil, errcode.PinInUse
	}

	if err := pin.ConfigureInput(pull); err != nil {
		return nil, err
	}

	// ISR handler: count and forward, nothing else.
	handler := func(e halcore.Edge) {
		atomic.AddUint32(&w.calls, 1)
		w.sink.HandleEdge(id, e)
	}
	if err := pin.SetIRQ(edge, handler); err != nil {
		return nil, err
	}

	wh := &watch{
		id:        id,
		pin:       pin,
		edge:      edge,
		cancelIRQ: func() { _ = pin.ClearIRQ() },
	}
	w.mu.Lock()
	w.inputs[id] = wh
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		if cur, ok := w.inputs[id]; ok {
			cur.cancelIRQ()
			delete(w.inputs, id)
		}
		w.mu.Unlock()
	}, nil
}

// Registered reports the edge a button is armed on.
func (w *Watcher) Registered(id types.ButtonID) (halcore.Edge, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wh, ok := w.inputs[id]
	if !ok {
		return halcore.EdgeNone, false
	}
	return wh.edge, true
}

func (w *Watcher) ISRCalls() uint32 { return atomic.LoadUint32(&w.calls) }
