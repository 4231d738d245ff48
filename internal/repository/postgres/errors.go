package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aidar/invento-api/internal/domain"
)

// Коды и имена ограничений PostgreSQL, на которые опирается уникальность
const (
	codeUniqueViolation = "23505"

	constraintTeamName    = "teams_team_name_key"
	constraintMemberEmail = "team_members_email_key"
	constraintAdminEmail  = "admins_email_key"
)

// querier общий интерфейс для pgxpool.Pool и pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapUniqueViolation преобразует нарушение уникального индекса в доменную ошибку
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case constraintTeamName:
		return domain.ErrDuplicateTeamName
	case constraintMemberEmail:
		return domain.ErrDuplicateMember
	case constraintAdminEmail:
		return domain.ErrDuplicateAdmin
	default:
		return err
	}
}
