package domain

import "time"

// TeamStatus представляет статус регистрации команды
type TeamStatus string

// StatusRegistered единственный статус, который выставляет сама система
const StatusRegistered TeamStatus = "registered"

// Ограничения на размер команды
const (
	MinTeamSize = 1 // Только лидер
	MaxTeamSize = 5 // Лидер + 4 участника
)

// Member представляет участника команды (первый в списке всегда лидер)
type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Year  string `json:"year"`
	Class string `json:"class"`
}

// Team представляет зарегистрированную команду
type Team struct {
	ID           string     `json:"id"`
	TeamName     string     `json:"team_name"`
	CollegeName  string     `json:"college_name"`
	Members      []Member   `json:"members"`
	Idea         string     `json:"idea"`
	GameName     string     `json:"gameName"`
	ScreenShot   *string    `json:"screenShot,omitempty"` // nil в списках, чтобы не раздувать ответ
	Status       TeamStatus `json:"status"`
	RegisteredAt time.Time  `json:"registeredAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Leader возвращает лидера команды
func (t *Team) Leader() Member {
	if len(t.Members) == 0 {
		return Member{}
	}
	return t.Members[0]
}

// Emails возвращает адреса всех участников в порядке слотов
func (t *Team) Emails() []string {
	emails := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		emails = append(emails, m.Email)
	}
	return emails
}

// Size возвращает количество участников вместе с лидером
func (t *Team) Size() int {
	return len(t.Members)
}

// TeamScreenshot представляет узкую проекцию команды только со скриншотом оплаты
type TeamScreenshot struct {
	TeamName   string `json:"team_name"`
	ScreenShot string `json:"screenShot"`
}

// TeamPatch содержит поля для частичного обновления команды (nil означает "не менять")
type TeamPatch struct {
	TeamName    *string     `json:"team_name,omitempty"`
	CollegeName *string     `json:"college_name,omitempty"`
	Members     *[]Member   `json:"members,omitempty"`
	Idea        *string     `json:"idea,omitempty"`
	GameName    *string     `json:"gameName,omitempty"`
	ScreenShot  *string     `json:"screenShot,omitempty"`
	Status      *TeamStatus `json:"status,omitempty"`
}

// IsEmpty возвращает true если в патче нет ни одного поля
func (p *TeamPatch) IsEmpty() bool {
	return p.TeamName == nil && p.CollegeName == nil && p.Members == nil &&
		p.Idea == nil && p.GameName == nil && p.ScreenShot == nil && p.Status == nil
}

// TeamStats представляет агрегированную статистику по командам
type TeamStats struct {
	TotalTeams        int      `json:"totalTeams"`
	TotalParticipants int      `json:"totalParticipants"`
	AverageTeamSize   Decimal2 `json:"averageTeamSize"`
}
