package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	invalidTextRepresentationCode = "22P02"
	checkViolationCode            = "23514"
)

// pgErrorCode は err が PostgreSQL のエラーであればその SQLSTATE を返します。
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// validID は id が UUID として解釈できるかを返します。仮 id などは問い合わせ前に弾きます。
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
