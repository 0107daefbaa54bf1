// internal/store/accounts.go
//
// Reads and writes for the accounts and account_types tables.
// Uniqueness on username is enforced by the callers' explicit existence
// check before insert, not only by the remote constraint.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

/**
 * CreateAccount inserts a new account row and returns it with the
 * generated identifier. Email may be empty (stored as NULL).
 */
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash, email string, accountTypeID int64) (Account, error) {
	var mail any
	if email != "" {
		mail = email
	}
	id, err := s.db.InsertReturningID(ctx, `
        INSERT INTO accounts (username, password_hash, email, account_type_id)
        VALUES (?,?,?,?)`,
		username, passwordHash, mail, accountTypeID,
	)
	if err != nil {
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	return Account{
		ID:            id,
		Username:      username,
		PasswordHash:  passwordHash,
		Email:         email,
		AccountTypeID: accountTypeID,
	}, nil
}

// AccountByUsername loads one account by its (case-sensitive) username.
func (s *Store) AccountByUsername(ctx context.Context, username string) (Account, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, email, account_type_id
        FROM accounts WHERE username=?`, username)
	return scanAccount(row)
}

// AccountByID loads one account by id.
func (s *Store) AccountByID(ctx context.Context, id int64) (Account, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, email, account_type_id
        FROM accounts WHERE id=?`, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (Account, error) {
	var a Account
	var email sql.NullString
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &email, &a.AccountTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.Email = email.String
	return a, nil
}

// UpdatePasswordHash overwrites the stored hash for a username.
func (s *Store) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash=? WHERE username=?`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AccountTypeByID resolves the administrator flag of an account type.
func (s *Store) AccountTypeByID(ctx context.Context, id int64) (AccountType, error) {
	var t AccountType
	err := s.db.QueryRowContext(ctx,
		`SELECT id, is_admin FROM account_types WHERE id=?`, id).Scan(&t.ID, &t.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return AccountType{}, ErrNotFound
	}
	if err != nil {
		return AccountType{}, fmt.Errorf("scan account type: %w", err)
	}
	return t, nil
}

// AccountsByIDs maps account ids to usernames for the given set.
func (s *Store) AccountsByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username FROM accounts WHERE id IN (`+inPlaceholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, err
		}
		out[id] = username
	}
	return out, rows.Err()
}
