package barrack

// Privilege is the account privilege level carried by the client protocol.
type Privilege uint8

const (
	PrivilegeAdmin  Privilege = 0
	PrivilegeGM     Privilege = 2
	PrivilegePlayer Privilege = 3
)

// JobID is the job code submitted by the client at commander creation.
type JobID uint16

const (
	JobWarrior JobID = 1001
	JobWizard  JobID = 2001
	JobArcher  JobID = 3001
	JobCleric  JobID = 4001
)

// ClassID is the class tied 1:1 to a job code.
type ClassID uint32

const (
	ClassWarrior ClassID = 10001
	ClassArcher  ClassID = 10003
	ClassCleric  ClassID = 10005
	ClassWizard  ClassID = 10006
)

// classForJob maps a submitted job code to its class. The switch is
// exhaustive over the valid job codes; anything else is rejected.
func classForJob(job JobID) (ClassID, bool) {
	switch job {
	case JobWarrior:
		return ClassWarrior, true
	case JobWizard:
		return ClassWizard, true
	case JobArcher:
		return ClassArcher, true
	case JobCleric:
		return ClassCleric, true
	default:
		return 0, false
	}
}

// Gender codes from the wire format. GenderBoth exists on the wire but is
// never a valid creation value.
type Gender uint8

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderBoth   Gender = 3
)

func selectableGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

// Position is a barrack-space 3D position.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Appearance holds the display fields of a commander.
type Appearance struct {
	Name       string  `json:"name"`
	FamilyName string  `json:"familyName"`
	AccountID  uint64  `json:"accountId"`
	JobID      JobID   `json:"jobId"`
	ClassID    ClassID `json:"classId"`
	Gender     Gender  `json:"gender"`
	HairID     uint8   `json:"hairId"`
}

// Commander is one player character.
//
// CommanderID is the persistent identity assigned by the database. PcID is a
// session-scoped random handle regenerated every time the roster is loaded;
// SocialInfoID is a random 64-bit handle assigned at creation.
type Commander struct {
	CommanderID  uint64     `json:"commanderId"`
	PcID         uint32     `json:"pcId"`
	SocialInfoID uint64     `json:"socialInfoId"`
	Appearance   Appearance `json:"appearance"`
	Position     Position   `json:"position"`
	MapID        int32      `json:"mapId"`
}

// Barrack spawn point for newly created commanders.
const barrackMapID int32 = 1002

var barrackSpawn = Position{X: 19.0, Y: 28.0, Z: 29.0}

// validName reports whether a submitted name is non-empty and contains only
// printable ASCII. Control bytes and 8-bit bytes are rejected before any
// database call sees the name.
func validName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return false
		}
	}
	return true
}
