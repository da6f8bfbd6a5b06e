package barrack

// MaxCommandersPerAccount is the number of roster slots in one barrack.
const MaxCommandersPerAccount = 12

// mapNone marks a session that is not bound to any map (barrack screen, or
// the target key of an in-flight zone transition).
const mapNone int32 = -1

// SocketState is the per-connection half of a session. It exists from the
// moment the connection is established, before authentication.
type SocketState struct {
	SessionKey    string `json:"sessionKey"`
	AccountID     uint64 `json:"accountId"`
	Authenticated bool   `json:"authenticated"`
	RouterID      uint16 `json:"routerId"`
	MapID         int32  `json:"mapId"`
}

// AccountState is the authenticated half of a session. It is only
// meaningful once SocketState.Authenticated is set.
//
// Commanders is a fixed-capacity arena: each slot is either nil or owns one
// Commander record. CommandersCount always equals the number of occupied
// slots; mutate the roster only through the Session methods so the invariant
// holds.
type AccountState struct {
	Login           string                              `json:"login"`
	Privilege       Privilege                           `json:"privilege"`
	Banned          bool                                `json:"banned"`
	FamilyName      string                              `json:"familyName"`
	Commanders      [MaxCommandersPerAccount]*Commander `json:"commanders"`
	CommandersCount int                                 `json:"commandersCount"`
}

// Session is the in-memory state of one connected client. It is owned by
// exactly one worker for the duration of a handler call and is never shared
// between goroutines; cross-process visibility goes through the distributed
// store.
//
// Selected is the slot index of the currently selected commander, -1 when
// unset. It is a handle into the roster arena, never a copy, and is cleared
// whenever the slot it references is vacated.
type Session struct {
	Socket   SocketState  `json:"socket"`
	Account  AccountState `json:"account"`
	Selected int          `json:"selected"`
}

// NewSession returns an unauthenticated session with an empty roster,
// homed on the given barrack router.
func NewSession(sessionKey string, routerID uint16) *Session {
	return &Session{
		Socket: SocketState{
			SessionKey: sessionKey,
			RouterID:   routerID,
			MapID:      mapNone,
		},
		Selected: -1,
	}
}

// CommanderAt returns the commander in the given 0-based slot, or nil when
// the slot is empty or out of range.
func (s *Session) CommanderAt(slot int) *Commander {
	if slot < 0 || slot >= MaxCommandersPerAccount {
		return nil
	}
	return s.Account.Commanders[slot]
}

// PutCommander links c into the given slot. The slot must be empty; the
// occupied-slot rule is a handler-level validation, not a silent overwrite.
func (s *Session) PutCommander(slot int, c *Commander) {
	if slot < 0 || slot >= MaxCommandersPerAccount || c == nil {
		return
	}
	if s.Account.Commanders[slot] != nil {
		return
	}
	s.Account.Commanders[slot] = c
	s.Account.CommandersCount++
}

// RemoveCommander vacates the given slot. The count never goes below zero,
// and the selection is cleared if it referenced this slot.
func (s *Session) RemoveCommander(slot int) {
	if s.CommanderAt(slot) == nil {
		return
	}
	s.Account.Commanders[slot] = nil
	if s.Account.CommandersCount > 0 {
		s.Account.CommandersCount--
	}
	if s.Selected == slot {
		s.Selected = -1
	}
}

// ClearRoster empties every slot and drops the selection.
func (s *Session) ClearRoster() {
	for i := range s.Account.Commanders {
		s.Account.Commanders[i] = nil
	}
	s.Account.CommandersCount = 0
	s.Selected = -1
}

// Select makes the given slot the current commander. It fails when the slot
// is empty so the selection can never dangle.
func (s *Session) Select(slot int) bool {
	if s.CommanderAt(slot) == nil {
		return false
	}
	s.Selected = slot
	return true
}

// CurrentCommander resolves the selection handle, or returns nil when no
// commander is selected.
func (s *Session) CurrentCommander() *Commander {
	if s.Selected < 0 {
		return nil
	}
	return s.CommanderAt(s.Selected)
}

// GameSessionKey is the distributed-store partition key identifying where a
// player's live game session resides.
type GameSessionKey struct {
	RouterID  uint16
	MapID     int32
	AccountID uint64
}

// CurrentGameKey returns the partition key the session currently lives
// under in the distributed store.
func (s *Session) CurrentGameKey() GameSessionKey {
	return GameSessionKey{
		RouterID:  s.Socket.RouterID,
		MapID:     s.Socket.MapID,
		AccountID: s.Socket.AccountID,
	}
}
