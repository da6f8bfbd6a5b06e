package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// State is the tri-state handler outcome the dispatcher returns to the
// transport.
type State int

const (
	// StateError: protocol fault. The caller must not transmit anything.
	StateError State = iota
	// StateOK: handled, replies may be sent, session unchanged.
	StateOK
	// StateUpdateSession: handled, replies may be sent, and the caller
	// must persist the session back to the distributed store.
	StateUpdateSession
)

func (s State) String() string {
	switch s {
	case StateError:
		return "Error"
	case StateOK:
		return "OK"
	case StateUpdateSession:
		return "UpdateSession"
	default:
		return "Unknown"
	}
}

// handlerFunc is the signature every packet handler implements.
type handlerFunc func(ctx context.Context, sess *Session, data []byte, reply *Reply) State

// handlers binds the handler methods to their shared dependencies.
type handlers struct {
	deps *Deps
	log  *zap.Logger
}

// dispatchEntry gates a handler on the session's auth state. Only the two
// login packets are callable before authentication.
type dispatchEntry struct {
	fn        handlerFunc
	needsAuth bool
}

// Dispatcher maps packet types to handlers. The table is built once at
// construction and read-only afterwards; Handle is the single entry point
// the transport uses.
type Dispatcher struct {
	table map[packet.Type]dispatchEntry
	log   *zap.Logger
}

func NewDispatcher(deps *Deps) *Dispatcher {
	h := &handlers{deps: deps, log: deps.Log}
	return &Dispatcher{
		log: deps.Log,
		table: map[packet.Type]dispatchEntry{
			packet.CB_LOGIN:              {fn: h.login},
			packet.CB_LOGIN_BY_PASSPORT:  {fn: h.loginByPassport},
			packet.CB_START_BARRACK:      {fn: h.startBarrack, needsAuth: true},
			packet.CB_CURRENT_BARRACK:    {fn: h.currentBarrack, needsAuth: true},
			packet.CB_BARRACKNAME_CHANGE: {fn: h.barrackNameChange, needsAuth: true},
			packet.CB_COMMANDER_CREATE:   {fn: h.commanderCreate, needsAuth: true},
			packet.CB_COMMANDER_DESTROY:  {fn: h.commanderDestroy, needsAuth: true},
			packet.CB_COMMANDER_MOVE:     {fn: h.commanderMove, needsAuth: true},
			packet.CB_START_GAME:         {fn: h.startGame, needsAuth: true},
			packet.CB_LOGOUT:             {fn: h.logout, needsAuth: true},
		},
	}
}

// Handle dispatches one client frame to its handler. Unknown packet types,
// packets sent before login, and handler panics are reported as StateError;
// a fault never propagates across the dispatch boundary.
func (d *Dispatcher) Handle(ctx context.Context, sess *Session, t packet.Type, data []byte, reply *Reply) State {
	entry, ok := d.table[t]
	if !ok {
		d.log.Warn("unknown packet type",
			zap.String("type", t.String()),
			zap.String("sessionKey", sess.Socket.SessionKey),
		)
		return StateError
	}

	if entry.needsAuth && !sess.Socket.Authenticated {
		d.log.Warn("packet not allowed before login",
			zap.String("type", t.String()),
			zap.String("sessionKey", sess.Socket.SessionKey),
		)
		return StateError
	}

	d.log.Debug("packet received",
		zap.String("type", t.String()),
		zap.Int("size", len(data)),
		zap.String("sessionKey", sess.Socket.SessionKey),
	)

	return d.safeCall(ctx, entry.fn, sess, t, data, reply)
}

// safeCall runs a handler with panic recovery so a single bad packet cannot
// take down the worker.
func (d *Dispatcher) safeCall(ctx context.Context, fn handlerFunc, sess *Session, t packet.Type, data []byte, reply *Reply) (st State) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("handler panic recovered",
				zap.String("type", t.String()),
				zap.Any("panic", rec),
			)
			st = StateError
		}
	}()
	return fn(ctx, sess, data, reply)
}
