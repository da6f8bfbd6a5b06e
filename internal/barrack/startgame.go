package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// CB_START_GAME layout: routerId u16, commanderIndex u8.
const cbStartGameSize = 2 + 1

// startGame selects a commander and hands the session off to a zone server:
// persist the full session under its current keys, then atomically relocate
// the game-session record to the target zone's partition. Either store step
// failing restores the session to its pre-call state and aborts.
func (h *handlers) startGame(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbStartGameSize)
	if err != nil {
		h.log.Warn("malformed CB_START_GAME frame", zap.Error(err))
		return StateError
	}
	routerID := r.U16()
	index := r.U8()

	slot := int(index) - 1
	if sess.CommanderAt(slot) == nil {
		// Protocol violation: the client referenced a character it does
		// not own.
		h.log.Warn("selected commander index does not exist in account",
			zap.Uint8("index", index),
			zap.Uint64("accountId", sess.Socket.AccountID),
		)
		return StateError
	}

	zone, ok := h.deps.Zones.Resolve(routerID)
	if !ok {
		h.log.Warn("invalid router id", zap.Uint16("routerId", routerID))
		return StateError
	}

	prevSelected := sess.Selected
	sess.Select(slot)

	// Persist before the move so a concurrent reader never observes the
	// in-flight transition as absent.
	if err := h.deps.Sessions.SaveSession(ctx, sess); err != nil {
		sess.Selected = prevSelected
		h.log.Error("cannot persist session before zone handoff", zap.Error(err))
		return StateError
	}

	from := sess.CurrentGameKey()
	to := GameSessionKey{
		RouterID:  routerID,
		MapID:     mapNone,
		AccountID: sess.Socket.AccountID,
	}
	if err := h.deps.Sessions.MoveGameSession(ctx, from, to); err != nil {
		sess.Selected = prevSelected
		h.log.Error("cannot move game session",
			zap.String("sessionKey", sess.Socket.SessionKey),
			zap.Error(err),
		)
		return StateError
	}

	cur := sess.CurrentCommander()
	h.log.Info("zone handoff",
		zap.Uint64("accountId", sess.Socket.AccountID),
		zap.Uint16("routerId", routerID),
		zap.Uint64("commanderId", cur.CommanderID),
		zap.Uint64("socialInfoId", cur.SocialInfoID),
	)

	buildStartGameOk(reply, sess.Socket.RouterID, zone, cur.MapID, index, cur.SocialInfoID)
	return StateUpdateSession
}
