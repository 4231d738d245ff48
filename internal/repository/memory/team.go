// Package memory содержит in-memory реализации репозиториев.
//
// LockoutStore используется сервером, когда REDIS_URL не задан.
// TeamRepository и AdminRepository служат тестовыми реализациями для
// сервисов и обработчиков: они повторяют правила уникальности схемы
// PostgreSQL и в рабочем сервере не подключаются.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aidar/invento-api/internal/domain"
)

// TeamRepository хранит команды в памяти
type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]*domain.Team
	order []string
}

// NewTeamRepository создает пустой TeamRepository
func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]*domain.Team)}
}

// Create сохраняет команду, проверяя уникальность названия и email
func (r *TeamRepository) Create(_ context.Context, team *domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(team.TeamName, "") {
		return domain.ErrDuplicateTeamName
	}
	if r.emailsTaken(team.Members, "") {
		return domain.ErrDuplicateMember
	}

	r.teams[team.ID] = cloneTeam(team)
	r.order = append(r.order, team.ID)
	return nil
}

// GetByID получает команду по ID
func (r *TeamRepository) GetByID(_ context.Context, id string) (*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return cloneTeam(team), nil
}

// GetByName получает команду по точному названию
func (r *TeamRepository) GetByName(_ context.Context, teamName string) (*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.teams {
		if team.TeamName == teamName {
			return cloneTeam(team), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

// List возвращает команды в порядке регистрации без скриншотов
func (r *TeamRepository) List(_ context.Context) ([]*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]*domain.Team, 0, len(r.order))
	for _, id := range r.order {
		team := cloneTeam(r.teams[id])
		team.ScreenShot = nil
		teams = append(teams, team)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].RegisteredAt.Before(teams[j].RegisteredAt)
	})
	return teams, nil
}

// GetScreenshot возвращает название команды и скриншот
func (r *TeamRepository) GetScreenshot(_ context.Context, id string) (*domain.TeamScreenshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	shot := &domain.TeamScreenshot{TeamName: team.TeamName}
	if team.ScreenShot != nil {
		shot.ScreenShot = *team.ScreenShot
	}
	return shot, nil
}

// Update применяет патч к команде
func (r *TeamRepository) Update(_ context.Context, id string, patch *domain.TeamPatch, updatedAt time.Time) (*domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	if patch.TeamName != nil && r.nameTaken(*patch.TeamName, id) {
		return nil, domain.ErrDuplicateTeamName
	}
	if patch.Members != nil && r.emailsTaken(*patch.Members, id) {
		return nil, domain.ErrDuplicateMember
	}

	team := cloneTeam(current)
	if patch.TeamName != nil {
		team.TeamName = *patch.TeamName
	}
	if patch.CollegeName != nil {
		team.CollegeName = *patch.CollegeName
	}
	if patch.Members != nil {
		team.Members = append([]domain.Member(nil), (*patch.Members)...)
	}
	if patch.Idea != nil {
		team.Idea = *patch.Idea
	}
	if patch.GameName != nil {
		team.GameName = *patch.GameName
	}
	if patch.ScreenShot != nil {
		shot := *patch.ScreenShot
		team.ScreenShot = &shot
	}
	if patch.Status != nil {
		team.Status = *patch.Status
	}
	ts := updatedAt
	team.UpdatedAt = &ts

	r.teams[id] = team
	return cloneTeam(team), nil
}

// Delete удаляет команду
func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[id]; !ok {
		return domain.ErrTeamNotFound
	}
	delete(r.teams, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountMembers возвращает количество команд и участников
func (r *TeamRepository) CountMembers(_ context.Context) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := 0
	for _, team := range r.teams {
		participants += team.Size()
	}
	return len(r.teams), participants, nil
}

func (r *TeamRepository) nameTaken(name, exceptID string) bool {
	for id, team := range r.teams {
		if id != exceptID && team.TeamName == name {
			return true
		}
	}
	return false
}

// emailsTaken повторяет поведение уникального индекса team_members.email:
// дубликат внутри самой заявки тоже считается нарушением
func (r *TeamRepository) emailsTaken(members []domain.Member, exceptID string) bool {
	if _, dup := domain.DuplicateEmail(members); dup {
		return true
	}
	for id, team := range r.teams {
		if id == exceptID {
			continue
		}
		for _, existing := range team.Members {
			for _, m := range members {
				if existing.Email == m.Email {
					return true
				}
			}
		}
	}
	return false
}

func cloneTeam(t *domain.Team) *domain.Team {
	c := *t
	c.Members = append([]domain.Member{}, t.Members...)
	if t.ScreenShot != nil {
		shot := *t.ScreenShot
		c.ScreenShot = &shot
	}
	if t.UpdatedAt != nil {
		ts := *t.UpdatedAt
		c.UpdatedAt = &ts
	}
	return &c
}
