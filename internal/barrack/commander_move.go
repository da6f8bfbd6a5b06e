package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// CB_COMMANDER_MOVE layout: commanderListId u8, position f32x3,
// angleDestX f32, angleDestY f32.
const cbCommanderMoveSize = 1 + 12 + 8

// commanderMove updates the selected commander's barrack position from the
// client-submitted value. The position is not validated against the barrack
// geometry; that is a known gap, not a contract.
func (h *handlers) commanderMove(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbCommanderMoveSize)
	if err != nil {
		h.log.Warn("malformed CB_COMMANDER_MOVE frame", zap.Error(err))
		return StateError
	}
	index := r.U8()
	pos := Position{X: r.F32(), Y: r.F32(), Z: r.F32()}
	r.Skip(8) // destination angles

	cur := sess.CurrentCommander()
	if cur == nil {
		h.log.Warn("commander move without a selected commander")
		return StateError
	}

	cur.Position = pos

	buildCommanderMoveOk(reply, sess.Socket.AccountID, index, cur.Position)
	return StateUpdateSession
}
