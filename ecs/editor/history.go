package editor

// Command is an undoable editor action. Commands are queued while the GUI
// is drawn and executed together once per frame.
type Command interface {
	Execute()
	Undo()
}

// History queues commands and keeps the undo and redo stacks.
type History struct {
	queue  []Command
	done   []Command
	undone []Command
	limit  int
}

// NewHistory creates a history that keeps at most limit executed commands.
// limit < 1 keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push queues c for the next Flush.
func (h *History) Push(c Command) {
	h.queue = append(h.queue, c)
}

// Pending returns the number of queued commands.
func (h *History) Pending() int {
	return len(h.queue)
}

// Flush executes the queued commands in order and returns how many ran.
// Executing anything drops the redo stack.
func (h *History) Flush() int {
	n := len(h.queue)
	if n == 0 {
		return 0
	}
	// commands may queue further commands while executing
	queue := h.queue
	h.queue = nil
	for _, c := range queue {
		c.Execute()
		h.done = append(h.done, c)
	}
	h.undone = h.undone[:0]
	if h.limit > 0 && len(h.done) > h.limit {
		h.done = append(h.done[:0], h.done[len(h.done)-h.limit:]...)
	}
	return n
}

// Undo reverts the most recent executed command.
func (h *History) Undo() bool {
	if len(h.done) == 0 {
		return false
	}
	c := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	c.Undo()
	h.undone = append(h.undone, c)
	return true
}

// Redo executes the most recently undone command again.
func (h *History) Redo() bool {
	if len(h.undone) == 0 {
		return false
	}
	c := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	c.Execute()
	h.done = append(h.done, c)
	return true
}

func (h *History) CanUndo() bool { return len(h.done) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Clear drops the queue and both stacks.
func (h *History) Clear() {
	h.queue = nil
	h.done = nil
	h.undone = nil
}
