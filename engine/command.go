package engine

import (
	"github.com/fluxgraph/fluxgraph/signal"
	"github.com/fluxgraph/fluxgraph/variant"
)

// Command is one device/function call a fired rule emits.
type Command struct {
	Device   signal.DeviceID
	Function signal.FunctionID
	Args     variant.Map
}

// CommandQueue is a FIFO buffer of commands accumulated across ticks until
// drained. Zero value is an empty queue, ready to use.
type CommandQueue struct {
	items []Command
}

// Push appends cmd to the back of the queue.
func (q *CommandQueue) Push(cmd Command) {
	q.items = append(q.items, cmd)
}

// Drain returns every queued command, in the order they were pushed
// (preserved across ticks until this call), and empties the queue.
func (q *CommandQueue) Drain() []Command {
	drained := q.items
	q.items = nil
	return drained
}

// Len reports the number of commands currently queued.
func (q *CommandQueue) Len() int {
	return len(q.items)
}
