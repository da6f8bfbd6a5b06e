package barrack

import (
	"context"
	"errors"
	"testing"

	"github.com/Micenas/R1EMU/internal/packet"
)

func namePayload(name string) []byte {
	buf := make([]byte, cbBarrackNameChangeSize)
	copy(buf, name)
	return buf
}

// nameChangeStatus extracts the status byte of a BC_BARRACKNAME_CHANGE frame
// and the name field after it.
func nameChangeReply(t *testing.T, frame []byte) (NameChangeStatus, string) {
	t.Helper()
	if frameType(t, frame) != packet.BC_BARRACKNAME_CHANGE {
		t.Fatalf("not a BC_BARRACKNAME_CHANGE frame: %s", frameType(t, frame))
	}
	status := NameChangeStatus(frame[2])
	name := frame[3:]
	for i, b := range name {
		if b == 0 {
			return status, string(name[:i])
		}
	}
	return status, string(name)
}

func TestNameChangeSuccess(t *testing.T) {
	accounts := &fakeAccounts{nameStatus: NameChangeOK}
	h := newTestHandlers(&Deps{Accounts: accounts})
	sess := authedSession(42)
	sess.Account.FamilyName = "OldName"
	sess.PutCommander(0, &Commander{Appearance: Appearance{FamilyName: "OldName"}})
	sess.Select(0)
	reply := &Reply{}

	st := h.barrackNameChange(context.Background(), sess, namePayload("NewName"), reply)
	if st != StateUpdateSession {
		t.Fatalf("state = %s, want UpdateSession", st)
	}
	if accounts.lastSetName != "NewName" {
		t.Errorf("database received %q, want NewName", accounts.lastSetName)
	}
	if sess.Account.FamilyName != "NewName" {
		t.Errorf("account family name = %q, want NewName", sess.Account.FamilyName)
	}
	if got := sess.CurrentCommander().Appearance.FamilyName; got != "NewName" {
		t.Errorf("selected commander family name = %q, want NewName", got)
	}

	wantFrames(t, reply, packet.BC_BARRACKNAME_CHANGE)
	status, name := nameChangeReply(t, reply.Frames()[0])
	if status != NameChangeOK || name != "NewName" {
		t.Errorf("reply = (%d, %q), want (OK, NewName)", status, name)
	}
}

func TestNameChangeSuccessWithoutSelection(t *testing.T) {
	h := newTestHandlers(&Deps{Accounts: &fakeAccounts{nameStatus: NameChangeOK}})
	sess := authedSession(42)
	sess.PutCommander(0, &Commander{Appearance: Appearance{FamilyName: "Old"}})
	reply := &Reply{}

	if st := h.barrackNameChange(context.Background(), sess, namePayload("New"), reply); st != StateUpdateSession {
		t.Fatalf("state = %s, want UpdateSession", st)
	}
	// No selection: the roster entry keeps its cached name until reload.
	if got := sess.CommanderAt(0).Appearance.FamilyName; got != "Old" {
		t.Errorf("unselected commander family name = %q, want Old", got)
	}
}

func TestNameChangeInvalidName(t *testing.T) {
	accounts := &fakeAccounts{nameStatus: NameChangeOK}
	h := newTestHandlers(&Deps{Accounts: accounts})
	sess := authedSession(42)
	sess.Account.FamilyName = "Prior"
	reply := &Reply{}

	st := h.barrackNameChange(context.Background(), sess, namePayload("bad\x01name"), reply)
	if st != StateOK {
		t.Fatalf("state = %s, want OK", st)
	}
	if accounts.lastSetName != "" {
		t.Error("database must not be called for an invalid name")
	}
	status, name := nameChangeReply(t, reply.Frames()[0])
	if status != NameChangeError || name != "Prior" {
		t.Errorf("reply = (%d, %q), want (Error, Prior)", status, name)
	}
}

func TestNameChangeEmptyName(t *testing.T) {
	h := newTestHandlers(&Deps{Accounts: &fakeAccounts{nameStatus: NameChangeOK}})
	sess := authedSession(42)
	reply := &Reply{}

	if st := h.barrackNameChange(context.Background(), sess, namePayload(""), reply); st != StateOK {
		t.Fatalf("state = %s, want OK", st)
	}
	status, _ := nameChangeReply(t, reply.Frames()[0])
	if status != NameChangeError {
		t.Errorf("status = %d, want Error", status)
	}
}

func TestNameChangeAlreadyTaken(t *testing.T) {
	h := newTestHandlers(&Deps{Accounts: &fakeAccounts{nameStatus: NameChangeAlreadyTaken}})
	sess := authedSession(42)
	sess.Account.FamilyName = "Prior"
	reply := &Reply{}

	st := h.barrackNameChange(context.Background(), sess, namePayload("Taken"), reply)
	if st != StateOK {
		t.Fatalf("state = %s, want OK", st)
	}
	if sess.Account.FamilyName != "Prior" {
		t.Errorf("family name = %q, must stay Prior", sess.Account.FamilyName)
	}
	status, name := nameChangeReply(t, reply.Frames()[0])
	if status != NameChangeAlreadyTaken || name != "Prior" {
		t.Errorf("reply = (%d, %q), want (AlreadyTaken, Prior)", status, name)
	}
}

func TestNameChangeDatabaseError(t *testing.T) {
	h := newTestHandlers(&Deps{Accounts: &fakeAccounts{nameErr: errors.New("db down")}})
	sess := authedSession(42)
	reply := &Reply{}

	if st := h.barrackNameChange(context.Background(), sess, namePayload("Any"), reply); st != StateError {
		t.Fatalf("state = %s, want Error", st)
	}
	if reply.Len() != 0 {
		t.Errorf("no reply on collaborator failure, got %d frames", reply.Len())
	}
}

func TestNameChangeWrongFrameSize(t *testing.T) {
	h := newTestHandlers(&Deps{Accounts: &fakeAccounts{}})
	reply := &Reply{}
	if st := h.barrackNameChange(context.Background(), authedSession(42), make([]byte, 10), reply); st != StateError {
		t.Fatalf("state = %s, want Error", st)
	}
}
