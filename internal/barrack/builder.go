package barrack

import (
	"github.com/Micenas/R1EMU/internal/packet"
)

// Reply builders. Each builder encodes one BC_* frame and appends it to the
// reply container; the exact field layout is this layer's outgoing contract
// with the client.

// MessageCode enumerates the client's generic message table.
type MessageCode uint8

const (
	MsgCustom MessageCode = iota + 1 // free-form text attached
	MsgUserPassIncorrect
	MsgAccountBlocked
	MsgCommanderNameTooShort
	MsgNameAlreadyExist
	MsgCreateCommanderFail
)

const (
	loginFieldSize    = 33
	tokenFieldSize    = 41
	commanderNameSize = 65
	barrackNameSize   = 64
)

func buildLoginOk(reply *Reply, accountID uint64, login, token string, privilege Privilege) {
	w := packet.NewWriter(packet.BC_LOGINOK)
	w.U64(accountID)
	w.CString(login, loginFieldSize)
	w.CString(token, tokenFieldSize)
	w.U8(uint8(privilege))
	reply.Append(w.Frame())
}

func buildMessage(reply *Reply, code MessageCode, text string) {
	w := packet.NewWriter(packet.BC_MESSAGE)
	w.U8(uint8(code))
	w.CString(text, len(text)+1)
	reply.Append(w.Frame())
}

func buildBarrackNameChange(reply *Reply, status NameChangeStatus, name string) {
	w := packet.NewWriter(packet.BC_BARRACKNAME_CHANGE)
	w.U8(uint8(status))
	w.CString(name, barrackNameSize)
	reply.Append(w.Frame())
}

func writeAppearance(w *packet.Writer, a *Appearance) {
	w.CString(a.Name, commanderNameSize)
	w.CString(a.FamilyName, commanderNameSize)
	w.U64(a.AccountID)
	w.U32(uint32(a.ClassID))
	w.U16(uint16(a.JobID))
	w.U8(uint8(a.Gender))
	w.U8(a.HairID)
}

func writeCommander(w *packet.Writer, c *Commander) {
	writeAppearance(w, &c.Appearance)
	w.U64(c.CommanderID)
	w.U32(c.PcID)
	w.U64(c.SocialInfoID)
	w.U32(uint32(c.MapID))
	w.F32(c.Position.X)
	w.F32(c.Position.Y)
	w.F32(c.Position.Z)
}

func buildCommanderList(reply *Reply, sess *Session) {
	w := packet.NewWriter(packet.BC_COMMANDER_LIST)
	w.U64(sess.Socket.AccountID)
	w.CString(sess.Account.FamilyName, barrackNameSize)
	w.U8(uint8(sess.Account.CommandersCount))
	for slot := 0; slot < MaxCommandersPerAccount; slot++ {
		c := sess.CommanderAt(slot)
		if c == nil {
			continue
		}
		w.U8(uint8(slot + 1))
		writeCommander(w, c)
	}
	reply.Append(w.Frame())
}

func buildCommanderCreate(reply *Reply, c *Commander, index uint8) {
	w := packet.NewWriter(packet.BC_COMMANDER_CREATE)
	w.U8(index)
	writeCommander(w, c)
	reply.Append(w.Frame())
}

func buildCommanderDestroy(reply *Reply, index uint8) {
	w := packet.NewWriter(packet.BC_COMMANDER_DESTROY)
	w.U8(index)
	reply.Append(w.Frame())
}

func buildCommanderMoveOk(reply *Reply, accountID uint64, index uint8, pos Position) {
	w := packet.NewWriter(packet.BC_COMMANDER_MOVE_OK)
	w.U64(accountID)
	w.U8(index)
	w.F32(pos.X)
	w.F32(pos.Y)
	w.F32(pos.Z)
	reply.Append(w.Frame())
}

func buildStartGameOk(reply *Reply, routerID uint16, zone ZoneEndpoint, mapID int32, index uint8, socialInfoID uint64) {
	w := packet.NewWriter(packet.BC_START_GAMEOK)
	w.U16(routerID)
	w.U32(zone.IP)
	w.U16(zone.Port)
	w.U32(uint32(mapID))
	w.U8(index)
	w.U64(socialInfoID)
	w.U8(0) // market entry flag, unused at the barrack
	reply.Append(w.Frame())
}

func buildPetInformation(reply *Reply) {
	w := packet.NewWriter(packet.BC_PET_INFORMATION)
	w.U32(0) // pet count
	reply.Append(w.Frame())
}

func buildZoneTraffics(reply *Reply, mapID int32) {
	w := packet.NewWriter(packet.BC_ZONE_TRAFFICS)
	w.U32(uint32(mapID))
	w.U16(1) // zone count
	w.U16(0) // current players on the zone
	reply.Append(w.Frame())
}

func buildLogoutOk(reply *Reply) {
	w := packet.NewWriter(packet.BC_LOGOUTOK)
	reply.Append(w.Frame())
}
