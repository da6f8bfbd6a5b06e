package barrack

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// Recording fakes for the handler collaborators.

type fakeAccounts struct {
	acct *AccountRecord
	ok   bool
	err  error

	nameStatus  NameChangeStatus
	nameErr     error
	lastSetName string
}

func (f *fakeAccounts) AccountByCredentials(ctx context.Context, login string, digest []byte) (*AccountRecord, bool, error) {
	return f.acct, f.ok, f.err
}

func (f *fakeAccounts) SetFamilyName(ctx context.Context, accountID uint64, name string) (NameChangeStatus, error) {
	f.lastSetName = name
	return f.nameStatus, f.nameErr
}

type fakeCommanders struct {
	ids    []uint64
	idsErr error

	commanders []Commander
	byIDsErr   error

	insertID  uint64
	insertErr error
	inserted  []Commander

	deleteErr error
	deleted   []uint64
}

func (f *fakeCommanders) CommanderIDs(ctx context.Context, accountID uint64) ([]uint64, error) {
	return f.ids, f.idsErr
}

func (f *fakeCommanders) CommandersByIDs(ctx context.Context, ids []uint64) ([]Commander, error) {
	return f.commanders, f.byIDsErr
}

func (f *fakeCommanders) Insert(ctx context.Context, accountID uint64, c *Commander) (uint64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, *c)
	return f.insertID, nil
}

func (f *fakeCommanders) Delete(ctx context.Context, commanderID uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, commanderID)
	return nil
}

type fakeStore struct {
	saveErr error
	saves   int

	moveErr error
	moves   [][2]GameSessionKey
}

func (f *fakeStore) SaveSession(ctx context.Context, sess *Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return nil
}

func (f *fakeStore) MoveGameSession(ctx context.Context, from, to GameSessionKey) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, [2]GameSessionKey{from, to})
	return nil
}

type fakeZones struct {
	endpoints map[uint16]ZoneEndpoint
}

func (f *fakeZones) Resolve(routerID uint16) (ZoneEndpoint, bool) {
	ep, ok := f.endpoints[routerID]
	return ep, ok
}

// fakeRand hands out a deterministic increasing sequence.
type fakeRand struct {
	n32 uint32
	n64 uint64
}

func (f *fakeRand) Uint32() uint32 { f.n32++; return f.n32 }
func (f *fakeRand) Uint64() uint64 { f.n64++; return f.n64 }

func newTestHandlers(deps *Deps) *handlers {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = &fakeRand{}
	}
	return &handlers{deps: deps, log: deps.Log}
}

// authedSession returns a logged-in session on router 0.
func authedSession(accountID uint64) *Session {
	s := NewSession("test-session-key", 0)
	s.Socket.Authenticated = true
	s.Socket.AccountID = accountID
	s.Account.Login = "tester"
	s.Account.Privilege = PrivilegePlayer
	return s
}

func frameType(t *testing.T, frame []byte) packet.Type {
	t.Helper()
	if len(frame) < 2 {
		t.Fatalf("frame too short: %d bytes", len(frame))
	}
	return packet.Type(binary.LittleEndian.Uint16(frame[:2]))
}

// wantFrames asserts the reply holds exactly the given frame types in order.
func wantFrames(t *testing.T, reply *Reply, types ...packet.Type) {
	t.Helper()
	frames := reply.Frames()
	if len(frames) != len(types) {
		t.Fatalf("got %d frames, want %d", len(frames), len(types))
	}
	for i, want := range types {
		if got := frameType(t, frames[i]); got != want {
			t.Errorf("frame %d: got %s, want %s", i, got, want)
		}
	}
}

// messageCode extracts the code byte of a BC_MESSAGE frame.
func messageCode(t *testing.T, frame []byte) MessageCode {
	t.Helper()
	if frameType(t, frame) != packet.BC_MESSAGE {
		t.Fatalf("not a BC_MESSAGE frame: %s", frameType(t, frame))
	}
	return MessageCode(frame[2])
}
