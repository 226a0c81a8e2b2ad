package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrRolledBack はリモート呼び出しの失敗により楽観的な変更を取り消したことを表します。
	ErrRolledBack = errors.New("coordinator: mutation rolled back")
	// ErrNotFound は対象のエンティティが存在しないことを表します。
	ErrNotFound = errors.New("coordinator: not found")
)

// Op は変更操作の種類です。
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// MutationError は取り消された変更の詳細です。
// errors.Is(err, ErrRolledBack) が真になり、原因のエラーにも到達できます。
type MutationError struct {
	Op  Op
	ID  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %q rolled back: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() []error {
	return []error{ErrRolledBack, e.Err}
}
