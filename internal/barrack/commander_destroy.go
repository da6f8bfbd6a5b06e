package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// CB_COMMANDER_DESTROY layout: commanderIndex u8.
const cbCommanderDestroySize = 1

// destroyAllIndex is reserved on the wire for "destroy all commanders".
// Unimplemented; rejected rather than guessed at.
const destroyAllIndex = 0xFF

// commanderDestroy deletes the commander in the given slot. Destroying an
// empty slot is deliberately lenient: the ack is still sent so a double
// destroy is not an error. The in-memory slot is only released after the
// database delete succeeded, so session state never runs ahead of the
// database.
func (h *handlers) commanderDestroy(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbCommanderDestroySize)
	if err != nil {
		h.log.Warn("malformed CB_COMMANDER_DESTROY frame", zap.Error(err))
		return StateError
	}
	index := r.U8()

	if index == destroyAllIndex {
		h.log.Warn("destroy-all commander index is not implemented")
		return StateError
	}
	slot := int(index) - 1
	if slot < 0 || slot >= MaxCommandersPerAccount {
		h.log.Warn("commander index out of range", zap.Uint8("index", index))
		return StateError
	}

	if c := sess.CommanderAt(slot); c != nil {
		if err := h.deps.Commanders.Delete(ctx, c.CommanderID); err != nil {
			h.log.Error("cannot delete commander",
				zap.Uint64("commanderId", c.CommanderID),
				zap.Error(err),
			)
			buildMessage(reply, MsgCustom,
				"There was a problem while deleting your Character. Please try again.")
			return StateOK
		}
		sess.RemoveCommander(slot)
		h.log.Info("commander destroyed",
			zap.Uint64("commanderId", c.CommanderID),
			zap.Uint8("index", index),
		)
	}

	buildCommanderDestroy(reply, index)
	return StateUpdateSession
}
