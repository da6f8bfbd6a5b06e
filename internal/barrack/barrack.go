package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// startBarrack loads the account's commander roster and sends the full
// list. Either database call failing aborts the whole operation: a partial
// roster is never exposed to the client, and the session roster is only
// touched once both calls have succeeded.
func (h *handlers) startBarrack(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	if _, err := packet.NewReader(data, 0); err != nil {
		h.log.Warn("malformed CB_START_BARRACK frame", zap.Error(err))
		return StateError
	}

	accountID := sess.Socket.AccountID

	ids, err := h.deps.Commanders.CommanderIDs(ctx, accountID)
	if err != nil {
		h.log.Error("cannot request commander roster", zap.Uint64("accountId", accountID), zap.Error(err))
		return StateError
	}

	commanders, err := h.deps.Commanders.CommandersByIDs(ctx, ids)
	if err != nil {
		h.log.Error("cannot fetch commanders", zap.Uint64("accountId", accountID), zap.Error(err))
		return StateError
	}

	sess.ClearRoster()
	for i := range commanders {
		if i >= MaxCommandersPerAccount {
			h.log.Warn("account roster exceeds barrack capacity, truncating",
				zap.Uint64("accountId", accountID),
				zap.Int("count", len(commanders)),
			)
			break
		}
		c := commanders[i]
		// Keep the cached display name consistent with account-level
		// renames, and hand out a fresh session-scoped handle.
		c.Appearance.FamilyName = sess.Account.FamilyName
		c.PcID = h.deps.Rand.Uint32()
		sess.PutCommander(i, &c)
	}

	buildCommanderList(reply, sess)
	return StateUpdateSession
}

// currentBarrack is a lightweight refresh with no request-body validation:
// the client appends an ignored float quad. It never mutates the session.
func (h *handlers) currentBarrack(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	buildPetInformation(reply)
	buildZoneTraffics(reply, barrackMapID)
	return StateOK
}

// logout acknowledges the request; server-side teardown belongs to the
// transport on disconnect.
func (h *handlers) logout(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	buildLogoutOk(reply)
	return StateUpdateSession
}
