package system

import (
	"sync"
	"time"

	coresys "github.com/reefshot/server/internal/core/system"
	"go.uber.org/zap"
)

// CommandKind identifies a buffered input intent.
type CommandKind uint8

const (
	CmdAim CommandKind = iota + 1
	CmdFireIntent
	CmdBounds
	CmdPause
	CmdResume
	CmdRestart
	CmdTogglePause
)

var commandNames = map[CommandKind]string{
	CmdAim:         "aim",
	CmdFireIntent:  "fire_intent",
	CmdBounds:      "bounds",
	CmdPause:       "pause",
	CmdResume:      "resume",
	CmdRestart:     "restart",
	CmdTogglePause: "toggle_pause",
}

func (k CommandKind) String() string {
	if n, ok := commandNames[k]; ok {
		return n
	}
	return "unknown"
}

// Command is one input captured outside the game loop.
type Command struct {
	Kind CommandKind
	X, Y float64 // aim x; bounds width/height
	Held bool    // fire intent
}

// CommandQueue buffers commands from input goroutines until the next tick.
// Push may be called from any goroutine; Drain only from the game loop.
type CommandQueue struct {
	mu  sync.Mutex
	buf []Command
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{buf: make([]Command, 0, 32)}
}

func (q *CommandQueue) Push(c Command) {
	q.mu.Lock()
	q.buf = append(q.buf, c)
	q.mu.Unlock()
}

// Drain appends all queued commands to dst in arrival order and empties
// the queue.
func (q *CommandQueue) Drain(dst []Command) []Command {
	q.mu.Lock()
	dst = append(dst, q.buf...)
	q.buf = q.buf[:0]
	q.mu.Unlock()
	return dst
}

func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// CommandHandler applies one command to game state.
type CommandHandler interface {
	Apply(Command)
}

// InputSystem drains the command queue and hands each command to the
// controller. Phase 0 (Input).
type InputSystem struct {
	queue   *CommandQueue
	handler CommandHandler
	scratch []Command
	log     *zap.Logger
}

func NewInputSystem(queue *CommandQueue, handler CommandHandler, log *zap.Logger) *InputSystem {
	return &InputSystem{
		queue:   queue,
		handler: handler,
		scratch: make([]Command, 0, 32),
		log:     log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.scratch = s.queue.Drain(s.scratch[:0])
	for _, cmd := range s.scratch {
		s.log.Debug("apply command", zap.Stringer("kind", cmd.Kind))
		s.handler.Apply(cmd)
	}
}
