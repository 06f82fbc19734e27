package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrEventNotFound       = errors.New("event not found")
	ErrDuplicateAccessCode = errors.New("access code already in use")
	ErrAlreadyJoined       = errors.New("user already joined event")
	ErrSessionNotFound     = errors.New("session not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrInvalidReference    = errors.New("referenced row does not exist")
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// Unique key names from the migrations.
const (
	keyUsersEmail      = "uq_users_email"
	keyEventAccessCode = "uq_events_access_code"
)

// isDuplicateEntryError reports whether err is a MySQL duplicate entry error
// (1062). When key is non-empty the violated key must match it.
func isDuplicateEntryError(err error, key string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return false
	}
	return key == "" || strings.Contains(me.Message, key)
}

// isForeignKeyError reports whether err is a MySQL missing-parent error (1452).
func isForeignKeyError(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlNoReferencedRow
}
