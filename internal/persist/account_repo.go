package persist

import (
	"context"
	"errors"

	"github.com/Micenas/R1EMU/internal/barrack"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// AccountRepo reads and mutates the accounts table. The stored credential
// is a bcrypt hash computed over the MD5 digest the client submits, so the
// raw digest never sits in the database.
type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// AccountByCredentials resolves an account by login and checks the client
// password digest against the stored hash. Unknown login and wrong password
// both come back as ok=false with no error, so the handler can answer with
// the same generic message for either.
func (r *AccountRepo) AccountByCredentials(ctx context.Context, login string, passwordDigest []byte) (*barrack.AccountRecord, bool, error) {
	var (
		accountID    int64
		passwordHash string
		privilege    int16
		banned       bool
		familyName   string
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT account_id, password_hash, privilege, banned, family_name
		 FROM accounts WHERE login = $1`, login,
	).Scan(&accountID, &passwordHash, &privilege, &banned, &familyName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), passwordDigest) != nil {
		return nil, false, nil
	}

	return &barrack.AccountRecord{
		AccountID:  uint64(accountID),
		Login:      login,
		Privilege:  barrack.Privilege(privilege),
		Banned:     banned,
		FamilyName: familyName,
	}, true, nil
}

// Create inserts a new account. Used by provisioning tools, not by the
// packet handlers.
func (r *AccountRepo) Create(ctx context.Context, login string, passwordDigest []byte, privilege barrack.Privilege) (uint64, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest, bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	var accountID int64
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO accounts (login, password_hash, privilege)
		 VALUES ($1, $2, $3) RETURNING account_id`,
		login, string(hash), int16(privilege),
	).Scan(&accountID)
	if err != nil {
		return 0, err
	}
	return uint64(accountID), nil
}

// SetFamilyName changes the account's family name and reports a named
// status. A unique-constraint hit maps to NameChangeAlreadyTaken; only
// transport-level failures surface as an error.
func (r *AccountRepo) SetFamilyName(ctx context.Context, accountID uint64, familyName string) (barrack.NameChangeStatus, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts SET family_name = $2 WHERE account_id = $1`,
		int64(accountID), familyName,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return barrack.NameChangeAlreadyTaken, nil
		}
		return barrack.NameChangeError, err
	}
	if tag.RowsAffected() == 0 {
		return barrack.NameChangeError, nil
	}
	return barrack.NameChangeOK, nil
}
