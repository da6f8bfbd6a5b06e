package packet

import "fmt"

// Type identifies one packet kind on the wire. Client packets are CB_*,
// barrack server replies are BC_*.
type Type uint16

const (
	CB_LOGIN              Type = 3
	CB_LOGIN_BY_PASSPORT  Type = 4
	CB_START_BARRACK      Type = 5
	CB_CURRENT_BARRACK    Type = 6
	CB_BARRACKNAME_CHANGE Type = 7
	CB_COMMANDER_CREATE   Type = 8
	CB_COMMANDER_DESTROY  Type = 9
	CB_COMMANDER_MOVE     Type = 10
	CB_START_GAME         Type = 11
	CB_LOGOUT             Type = 12
)

const (
	BC_LOGINOK            Type = 0x1001
	BC_MESSAGE            Type = 0x1002
	BC_BARRACKNAME_CHANGE Type = 0x1003
	BC_COMMANDER_LIST     Type = 0x1004
	BC_COMMANDER_CREATE   Type = 0x1005
	BC_COMMANDER_DESTROY  Type = 0x1006
	BC_COMMANDER_MOVE_OK  Type = 0x1007
	BC_START_GAMEOK       Type = 0x1008
	BC_PET_INFORMATION    Type = 0x1009
	BC_ZONE_TRAFFICS      Type = 0x100a
	BC_LOGOUTOK           Type = 0x100b
)

func (t Type) String() string {
	switch t {
	case CB_LOGIN:
		return "CB_LOGIN"
	case CB_LOGIN_BY_PASSPORT:
		return "CB_LOGIN_BY_PASSPORT"
	case CB_START_BARRACK:
		return "CB_START_BARRACK"
	case CB_CURRENT_BARRACK:
		return "CB_CURRENT_BARRACK"
	case CB_BARRACKNAME_CHANGE:
		return "CB_BARRACKNAME_CHANGE"
	case CB_COMMANDER_CREATE:
		return "CB_COMMANDER_CREATE"
	case CB_COMMANDER_DESTROY:
		return "CB_COMMANDER_DESTROY"
	case CB_COMMANDER_MOVE:
		return "CB_COMMANDER_MOVE"
	case CB_START_GAME:
		return "CB_START_GAME"
	case CB_LOGOUT:
		return "CB_LOGOUT"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}
