package barrack

import (
	"context"
	"fmt"

	"github.com/Micenas/R1EMU/internal/packet"
	"go.uber.org/zap"
)

// Fixed authentication token echoed to the client on a successful login.
const authToken = "*0FC621B82495C18DEC8D8D956C82297BEAAAA858"

// CB_LOGIN layout: login[33], md5Password[17], clientVersion[5].
const (
	cbLoginSize = loginFieldSize + 17 + 5

	passwordDigestSize = 17
)

func (h *handlers) login(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbLoginSize)
	if err != nil {
		h.log.Warn("malformed CB_LOGIN frame", zap.Error(err))
		return StateError
	}
	login := r.CString(loginFieldSize)
	digest := r.Bytes(passwordDigestSize)
	r.Skip(5) // client version bytes

	acct, ok, err := h.deps.Accounts.AccountByCredentials(ctx, login, digest)
	if err != nil {
		h.log.Error("account lookup failed", zap.String("login", login), zap.Error(err))
		return StateError
	}
	if !ok {
		// Same generic message for unknown login and wrong password.
		buildMessage(reply, MsgUserPassIncorrect, "")
		return StateOK
	}
	if acct.Banned {
		h.log.Info("blocked account attempted to log in", zap.String("login", login))
		buildMessage(reply, MsgAccountBlocked, "")
		return StateOK
	}

	sess.Socket.Authenticated = true
	sess.Socket.AccountID = acct.AccountID
	sess.Account.Login = acct.Login
	sess.Account.Privilege = acct.Privilege
	sess.Account.Banned = acct.Banned
	sess.Account.FamilyName = acct.FamilyName

	h.log.Info("login ok",
		zap.String("login", acct.Login),
		zap.Uint64("accountId", acct.AccountID),
	)

	buildLoginOk(reply, acct.AccountID, acct.Login, authToken, acct.Privilege)
	return StateUpdateSession
}

// CB_LOGIN_BY_PASSPORT layout: header[6], unk1 u32, unk2 u8, unk3 u16,
// passport[1011], unk4 u32, unk5 u16, clientId u64, clientId2 u32.
const (
	passportSize          = 1011
	cbLoginByPassportSize = 6 + 4 + 1 + 2 + passportSize + 4 + 2 + 8 + 4
)

// verifyPassport is a stub: every passport is accepted. Real verification
// is an open question upstream; keeping the stub at one call site keeps it
// visible.
func verifyPassport(passport []byte) error {
	_ = passport
	return nil
}

func (h *handlers) loginByPassport(ctx context.Context, sess *Session, data []byte, reply *Reply) State {
	r, err := packet.NewReader(data, cbLoginByPassportSize)
	if err != nil {
		h.log.Warn("malformed CB_LOGIN_BY_PASSPORT frame", zap.Error(err))
		return StateError
	}
	r.Skip(6 + 4 + 1 + 2)
	passport := r.Bytes(passportSize)
	r.Skip(4 + 2)
	clientID := r.U64()
	r.Skip(4) // second client id

	if err := verifyPassport(passport); err != nil {
		h.log.Warn("passport rejected", zap.Uint64("clientId", clientID), zap.Error(err))
		buildMessage(reply, MsgUserPassIncorrect, "")
		return StateOK
	}

	// Passport accounts get a fresh random identity with admin privilege
	// and a login synthesized from the id's hex form.
	accountID := h.deps.Rand.Uint64()
	sess.Socket.Authenticated = true
	sess.Socket.AccountID = accountID
	sess.Account = AccountState{
		Login:     fmt.Sprintf("%X", accountID),
		Privilege: PrivilegeAdmin,
	}
	sess.Selected = -1

	h.log.Info("passport account generated",
		zap.String("login", sess.Account.Login),
		zap.Uint64("clientId", clientID),
	)

	buildLoginOk(reply, accountID, sess.Account.Login, authToken, sess.Account.Privilege)
	return StateUpdateSession
}
