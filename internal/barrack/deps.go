package barrack

import (
	"context"

	"go.uber.org/zap"
)

// AccountRecord is the database view of an account, as resolved during
// credentialed login.
type AccountRecord struct {
	AccountID  uint64
	Login      string
	Privilege  Privilege
	Banned     bool
	FamilyName string
}

// NameChangeStatus is the explicit outcome of a family-name change. The
// database collaborator reports a named reason, not just success/failure,
// and the reply always carries it back to the client.
type NameChangeStatus uint8

const (
	NameChangeOK           NameChangeStatus = 1
	NameChangeAlreadyTaken NameChangeStatus = 2
	NameChangeError        NameChangeStatus = 3
)

// AccountDB is the account persistence surface the handlers consume.
type AccountDB interface {
	// AccountByCredentials resolves an account by login and compares the
	// client-submitted password digest. ok is false for an unknown login or
	// a wrong password alike; err is reserved for collaborator failures.
	AccountByCredentials(ctx context.Context, login string, passwordDigest []byte) (acct *AccountRecord, ok bool, err error)

	// SetFamilyName changes the account-level family name and reports a
	// named status. err is reserved for collaborator failures; business
	// rejections come back as a non-OK status with a nil error.
	SetFamilyName(ctx context.Context, accountID uint64, familyName string) (NameChangeStatus, error)
}

// CommanderDB is the commander persistence surface the handlers consume.
type CommanderDB interface {
	// CommanderIDs returns the persistent ids of every commander owned by
	// the account, in roster order.
	CommanderIDs(ctx context.Context, accountID uint64) ([]uint64, error)

	// CommandersByIDs fetches full records for the given roster.
	CommandersByIDs(ctx context.Context, ids []uint64) ([]Commander, error)

	// Insert persists a new commander and returns its database-assigned id.
	Insert(ctx context.Context, accountID uint64, c *Commander) (uint64, error)

	// Delete removes a commander by its persistent id.
	Delete(ctx context.Context, commanderID uint64) error
}

// SessionStore is the distributed session store surface the handlers
// consume. Cross-process coordination happens exclusively through its
// atomic operations.
type SessionStore interface {
	// SaveSession persists the full session under its current keys.
	SaveSession(ctx context.Context, sess *Session) error

	// MoveGameSession atomically relocates the game-session record from one
	// partition key to another: a concurrent reader observes the record at
	// exactly one of the two keys at any instant.
	MoveGameSession(ctx context.Context, from, to GameSessionKey) error
}

// ZoneEndpoint is the resolved network address of one zone server. IP is in
// wire order (little-endian packed IPv4, as the client expects it).
type ZoneEndpoint struct {
	IP   uint32
	Port uint16
}

// ZoneDirectory resolves a zone router id to a concrete endpoint.
type ZoneDirectory interface {
	Resolve(routerID uint16) (ZoneEndpoint, bool)
}

// Rand supplies the random identifier bits for pcId/socialInfoId
// assignment. Injected so tests are deterministic.
type Rand interface {
	Uint32() uint32
	Uint64() uint64
}

// Deps holds the shared collaborators injected into all packet handlers.
type Deps struct {
	Accounts   AccountDB
	Commanders CommanderDB
	Sessions   SessionStore
	Zones      ZoneDirectory
	Rand       Rand
	Log        *zap.Logger
}
