package barrack

import (
	"context"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// CB_COMMANDER_CREATE layout: commanderIndex u8, commanderName[65],
// jobId u16, gender u8, position f32x3, hairId u8.
const cbCommanderCreateSize = 1 + commanderNameSize + 2 + 1 + 12 + 1

// commanderCreate validates the submitted character, persists it, and only
// then links it into the session roster. Every domain rejection still
// produces a message reply so the client sees a response, without the
// session being marked updated.
func (h *handlers) commanderCreate(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbCommanderCreateSize)
	if err != nil {
		h.log.Warn("malformed CB_COMMANDER_CREATE frame", zap.Error(err))
		return StateError
	}
	index := r.U8()
	name := r.CString(commanderNameSize)
	job := JobID(r.U16())
	gender := Gender(r.U8())
	r.Skip(12) // client-submitted position; spawn point is server-fixed
	hairID := r.U8()

	if len(name) == 0 {
		buildMessage(reply, MsgCommanderNameTooShort, "")
		return StateOK
	}
	if !validName(name) {
		buildMessage(reply, MsgNameAlreadyExist, "")
		return StateOK
	}

	classID, ok := classForJob(job)
	if !ok {
		h.log.Warn("invalid job code", zap.Uint16("jobId", uint16(job)))
		buildMessage(reply, MsgCreateCommanderFail, "")
		return StateOK
	}

	if !selectableGender(gender) {
		h.log.Warn("invalid gender code", zap.Uint8("gender", uint8(gender)))
		buildMessage(reply, MsgCreateCommanderFail, "")
		return StateOK
	}

	slot := int(index) - 1
	if slot < 0 || slot >= MaxCommandersPerAccount {
		h.log.Warn("commander index out of range", zap.Uint8("index", index))
		return StateError
	}
	if sess.CommanderAt(slot) != nil {
		h.log.Warn("commander slot is not empty", zap.Uint8("index", index))
		buildMessage(reply, MsgCreateCommanderFail, "")
		return StateOK
	}

	c := Commander{
		PcID:         h.deps.Rand.Uint32(),
		SocialInfoID: h.deps.Rand.Uint64(),
		MapID:        barrackMapID,
		Position:     barrackSpawn,
		Appearance: Appearance{
			Name:       name,
			FamilyName: sess.Account.FamilyName,
			AccountID:  sess.Socket.AccountID,
			JobID:      job,
			ClassID:    classID,
			Gender:     gender,
			HairID:     hairID,
		},
	}

	commanderID, err := h.deps.Commanders.Insert(ctx, sess.Socket.AccountID, &c)
	if err != nil {
		h.log.Error("cannot persist commander", zap.String("name", name), zap.Error(err))
		return StateError
	}
	c.CommanderID = commanderID

	dup := c
	sess.PutCommander(slot, &dup)

	h.log.Info("commander created",
		zap.String("name", name),
		zap.Uint64("commanderId", commanderID),
		zap.Uint32("pcId", c.PcID),
		zap.Uint64("socialInfoId", c.SocialInfoID),
	)

	buildCommanderCreate(reply, &dup, index)
	return StateUpdateSession
}
