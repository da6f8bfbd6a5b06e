package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// CB_BARRACKNAME_CHANGE layout: barrackName[64].
const cbBarrackNameChangeSize = barrackNameSize

// barrackNameChange renames the account's family name. The client always
// receives a status-carrying reply: on any non-OK status it echoes the
// unchanged prior name, and the session is only reported updated when the
// database accepted the change.
func (h *handlers) barrackNameChange(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbBarrackNameChangeSize)
	if err != nil {
		h.log.Warn("malformed CB_BARRACKNAME_CHANGE frame", zap.Error(err))
		return StateError
	}
	name := r.CString(barrackNameSize)

	if !validName(name) {
		h.log.Warn("invalid barrack name", zap.Uint64("accountId", sess.Socket.AccountID))
		buildBarrackNameChange(reply, NameChangeError, sess.Account.FamilyName)
		return StateOK
	}

	status, err := h.deps.Accounts.SetFamilyName(ctx, sess.Socket.AccountID, name)
	if err != nil {
		h.log.Error("family name change failed", zap.String("name", name), zap.Error(err))
		return StateError
	}
	if status != NameChangeOK {
		buildBarrackNameChange(reply, status, sess.Account.FamilyName)
		return StateOK
	}

	sess.Account.FamilyName = name
	if cur := sess.CurrentCommander(); cur != nil {
		cur.Appearance.FamilyName = name
	}

	buildBarrackNameChange(reply, NameChangeOK, name)
	return StateUpdateSession
}
