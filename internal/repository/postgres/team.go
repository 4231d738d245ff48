package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/invento-api/internal/domain"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, team_name, college_name, idea, game_name, status, registered_at, updated_at`

// Create сохраняет команду и участников в одной транзакции
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	screenShot := ""
	if team.ScreenShot != nil {
		screenShot = *team.ScreenShot
	}

	query := `
		INSERT INTO teams (id, team_name, college_name, idea, game_name, screenshot, status, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, query,
		team.ID, team.TeamName, team.CollegeName, team.Idea, team.GameName,
		screenShot, team.Status, team.RegisteredAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if err := insertMembers(ctx, tx, team.ID, team.Members); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID получает команду по ID вместе со скриншотом
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return getTeam(ctx, r.db, `WHERE id = $1`, id)
}

// GetByName получает команду по точному названию
func (r *TeamRepository) GetByName(ctx context.Context, teamName string) (*domain.Team, error) {
	return getTeam(ctx, r.db, `WHERE team_name = $1`, teamName)
}

// List возвращает все команды без скриншотов
func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY registered_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []*domain.Team{}
	byID := make(map[string]*domain.Team)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
		byID[team.ID] = team
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Участников подтягиваем одним запросом и раскладываем по командам
	memberRows, err := r.db.Query(ctx, `
		SELECT team_id, name, email, phone, year, class
		FROM team_members
		ORDER BY team_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var teamID string
		var m domain.Member
		if err := memberRows.Scan(&teamID, &m.Name, &m.Email, &m.Phone, &m.Year, &m.Class); err != nil {
			return nil, err
		}
		if team, ok := byID[teamID]; ok {
			team.Members = append(team.Members, m)
		}
	}

	return teams, memberRows.Err()
}

// GetScreenshot возвращает название команды и скриншот оплаты
func (r *TeamRepository) GetScreenshot(ctx context.Context, id string) (*domain.TeamScreenshot, error) {
	var shot domain.TeamScreenshot
	err := r.db.QueryRow(ctx, `SELECT team_name, screenshot FROM teams WHERE id = $1`, id).
		Scan(&shot.TeamName, &shot.ScreenShot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &shot, nil
}

// Update применяет патч к команде; участники при наличии заменяются целиком
func (r *TeamRepository) Update(ctx context.Context, id string, patch *domain.TeamPatch, updatedAt time.Time) (*domain.Team, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	sets := []string{}
	args := []any{id}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.TeamName != nil {
		addSet("team_name", *patch.TeamName)
	}
	if patch.CollegeName != nil {
		addSet("college_name", *patch.CollegeName)
	}
	if patch.Idea != nil {
		addSet("idea", *patch.Idea)
	}
	if patch.GameName != nil {
		addSet("game_name", *patch.GameName)
	}
	if patch.ScreenShot != nil {
		addSet("screenshot", *patch.ScreenShot)
	}
	if patch.Status != nil {
		addSet("status", string(*patch.Status))
	}
	addSet("updated_at", updatedAt)

	query := `UPDATE teams SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrTeamNotFound
	}

	if patch.Members != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, id); err != nil {
			return nil, err
		}
		if err := insertMembers(ctx, tx, id, *patch.Members); err != nil {
			return nil, err
		}
	}

	team, err := getTeam(ctx, tx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete удаляет команду; участники удаляются каскадно
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// CountMembers возвращает количество команд и участников
func (r *TeamRepository) CountMembers(ctx context.Context) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM teams) AS total_teams,
			(SELECT COUNT(*) FROM team_members) AS total_participants
	`

	var teams, participants int
	if err := r.db.QueryRow(ctx, query).Scan(&teams, &participants); err != nil {
		return 0, 0, err
	}
	return teams, participants, nil
}

func insertMembers(ctx context.Context, tx pgx.Tx, teamID string, members []domain.Member) error {
	query := `
		INSERT INTO team_members (team_id, position, name, email, phone, year, class)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, m := range members {
		_, err := tx.Exec(ctx, query, teamID, i+1, m.Name, m.Email, m.Phone, m.Year, m.Class)
		if err != nil {
			return mapUniqueViolation(err)
		}
	}
	return nil
}

func getTeam(ctx context.Context, q querier, where string, arg any) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + `, screenshot FROM teams ` + where

	var screenShot string
	team, err := scanTeam(q.QueryRow(ctx, query, arg), &screenShot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	team.ScreenShot = &screenShot

	rows, err := q.Query(ctx, `
		SELECT name, email, phone, year, class
		FROM team_members
		WHERE team_id = $1
		ORDER BY position
	`, team.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.Name, &m.Email, &m.Phone, &m.Year, &m.Class); err != nil {
			return nil, err
		}
		team.Members = append(team.Members, m)
	}

	return team, rows.Err()
}

// scanTeam читает колонки teamColumns и, если передано, дополнительные поля
func scanTeam(row pgx.Row, extra ...any) (*domain.Team, error) {
	var team domain.Team
	dest := []any{
		&team.ID,
		&team.TeamName,
		&team.CollegeName,
		&team.Idea,
		&team.GameName,
		&team.Status,
		&team.RegisteredAt,
		&team.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	team.Members = []domain.Member{}
	return &team, nil
}
