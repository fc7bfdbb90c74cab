// Package store caches compiled DFAs in a modernc.org/sqlite database keyed
// by their source formula's canonical content hash, so retranslating the
// same formula twice is a cache hit. It follows server/dao/sqlite's
// connection and schema-migration style: a CREATE TABLE IF NOT EXISTS at
// open time, database/sql against the cgo-free sqlite driver, and a sqlite
// error-translation helper at the boundary.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/serialize"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no cached DFA exists for a hash.
var ErrNotFound = errors.New("no cached DFA for that formula hash")

// Store is a hash-keyed cache of compiled DFAs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dfa_cache (
			formula_hash TEXT NOT NULL PRIMARY KEY,
			formula_text TEXT NOT NULL,
			dfa_data BLOB NOT NULL,
			created INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT NOT NULL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			secret_hash BLOB NOT NULL,
			created INTEGER NOT NULL,
			last_logout INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return wrapDBError(err)
		}
	}
	return nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return wrapDBError(s.db.Close())
}

// Put compiles formula to a hash key via ldlf.Formula's structural Key,
// serializes dfa, and stores both under that key, overwriting any existing
// entry for the same formula.
func (s *Store) Put(ctx context.Context, formula ldlf.Formula, formulaText string, dfa *automaton.DFA) (string, error) {
	hash := formulaHash(formula)
	data := serialize.EncodeDFA(dfa)

	stmt := `INSERT INTO dfa_cache (formula_hash, formula_text, dfa_data, created)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(formula_hash) DO UPDATE SET formula_text=excluded.formula_text, dfa_data=excluded.dfa_data, created=excluded.created;`
	_, err := s.db.ExecContext(ctx, stmt, hash, formulaText, data, time.Now().Unix())
	if err != nil {
		return "", wrapDBError(err)
	}
	return hash, nil
}

// Get retrieves the DFA cached under hash, if any.
func (s *Store) Get(ctx context.Context, hash string) (*automaton.DFA, error) {
	row := s.db.QueryRowContext(ctx, `SELECT dfa_data FROM dfa_cache WHERE formula_hash = ?;`, hash)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError(err)
	}

	dfa, err := serialize.DecodeDFA(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode cached DFA for %s: %w", hash, err)
	}
	return dfa, nil
}

// formulaHash returns formula's canonical content-hash key, used as the
// cache's primary key: structurally equal formulas hash identically.
func formulaHash(formula ldlf.Formula) string {
	return formula.Key()
}

// Account is a holder of a signing-key secret, authenticated by name and
// bcrypt-hashed secret, that the HTTP service issues bearer tokens to.
type Account struct {
	ID         uuid.UUID
	Name       string
	SecretHash []byte
	Created    time.Time
	LastLogout time.Time
}

// ErrAccountNotFound is returned by GetAccountByName and GetAccountByID when
// no account matches.
var ErrAccountNotFound = errors.New("no account with that identifier")

// ErrAccountExists is returned by CreateAccount when an account already
// exists with the requested name.
var ErrAccountExists = errors.New("an account with that name already exists")

// CreateAccount inserts a new account with the given name and pre-hashed
// secret, returning the stored record with its generated ID and timestamps.
func (s *Store) CreateAccount(ctx context.Context, name string, secretHash []byte) (Account, error) {
	acct := Account{
		ID:         uuid.New(),
		Name:       name,
		SecretHash: secretHash,
		Created:    time.Now(),
	}

	stmt := `INSERT INTO accounts (id, name, secret_hash, created, last_logout) VALUES (?, ?, ?, ?, ?);`
	_, err := s.db.ExecContext(ctx, stmt, acct.ID.String(), acct.Name, acct.SecretHash, acct.Created.Unix(), int64(0))
	if err != nil {
		wrapped := wrapDBError(err)
		if errors.Is(wrapped, errConstraintViolation) {
			return Account{}, ErrAccountExists
		}
		return Account{}, wrapped
	}
	return acct, nil
}

// GetAccountByName retrieves the account registered under name.
func (s *Store) GetAccountByName(ctx context.Context, name string) (Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, secret_hash, created, last_logout FROM accounts WHERE name = ?;`, name)
	return scanAccount(row)
}

// GetAccountByID retrieves the account with the given ID.
func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, secret_hash, created, last_logout FROM accounts WHERE id = ?;`, id.String())
	return scanAccount(row)
}

// InvalidateTokens bumps the account's last-logout timestamp, which is
// folded into the signing key for its bearer tokens; any token issued
// before this call stops verifying.
func (s *Store) InvalidateTokens(ctx context.Context, id uuid.UUID) error {
	stmt := `UPDATE accounts SET last_logout = ? WHERE id = ?;`
	res, err := s.db.ExecContext(ctx, stmt, time.Now().Unix(), id.String())
	if err != nil {
		return wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (Account, error) {
	var (
		idStr      string
		name       string
		secretHash []byte
		created    int64
		lastLogout int64
	)
	if err := row.Scan(&idStr, &name, &secretHash, &created, &lastLogout); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, wrapDBError(err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Account{}, fmt.Errorf("store: stored account id %q does not parse: %w", idStr, err)
	}
	return Account{
		ID:         id,
		Name:       name,
		SecretHash: secretHash,
		Created:    time.Unix(created, 0).UTC(),
		LastLogout: time.Unix(lastLogout, 0).UTC(),
	}, nil
}

// errConstraintViolation is the sentinel wrapDBError attaches to a sqlite
// constraint-violation failure (error code 19, covering UNIQUE, NOT NULL,
// and similar checks) so callers can distinguish it from other DB errors
// via errors.Is without depending on modernc.org/sqlite directly.
var errConstraintViolation = errors.New("constraint violation")

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return fmt.Errorf("store: constraint violation: %w: %w", errConstraintViolation, err)
		}
		return fmt.Errorf("store: %s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return err
}
