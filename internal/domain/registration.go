package domain

import (
	"fmt"
	"strings"
	"time"
)

// MemberInput представляет данные участника из формы регистрации
type MemberInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Year  string `json:"year"`
	Class string `json:"class"`
}

func (m *MemberInput) value(f MemberField) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldEmail:
		return m.Email
	case FieldPhone:
		return m.Phone
	case FieldYear:
		return m.Year
	case FieldClass:
		return m.Class
	}
	return ""
}

// populated возвращает true если слот участника должен попасть в команду
func (m *MemberInput) populated() bool {
	return m != nil && strings.TrimSpace(m.Name) != "" && strings.TrimSpace(m.Email) != ""
}

func (m *MemberInput) toMember() Member {
	return Member{
		Name:  strings.TrimSpace(m.Name),
		Email: NormalizeEmail(m.Email),
		Phone: strings.TrimSpace(m.Phone),
		Year:  strings.TrimSpace(m.Year),
		Class: strings.TrimSpace(m.Class),
	}
}

// TeamSubmission представляет тело запроса на регистрацию команды
type TeamSubmission struct {
	TeamName    string       `json:"team_name"`
	CollegeName string       `json:"college_name"`
	Leader      *MemberInput `json:"leader"`
	Member2     *MemberInput `json:"member2,omitempty"`
	Member3     *MemberInput `json:"member3,omitempty"`
	Member4     *MemberInput `json:"member4,omitempty"`
	Member5     *MemberInput `json:"member5,omitempty"`
	Idea        string       `json:"idea"`
	GameName    string       `json:"gameName"`
	ScreenShot  string       `json:"screenShot"`
}

// optionalSlots возвращает необязательные слоты в порядке member2..member5
func (s *TeamSubmission) optionalSlots() []*MemberInput {
	return []*MemberInput{s.Member2, s.Member3, s.Member4, s.Member5}
}

// Validate проверяет заявку; возвращается первое найденное нарушение
func (s *TeamSubmission) Validate(policy LeaderPolicy) error {
	if strings.TrimSpace(s.TeamName) == "" {
		return NewValidationError("team_name", "Team name is required")
	}

	if field, missing := policy.Missing(s.Leader); missing {
		return NewValidationError("leader."+string(field),
			fmt.Sprintf("Leader information (%s) is required", policy.Describe()))
	}

	if strings.TrimSpace(s.CollegeName) == "" {
		return NewValidationError("college_name", "College name is required")
	}

	if !IsValidEmail(strings.TrimSpace(s.Leader.Email)) {
		return NewValidationError("leader.email", "Please provide a valid email for team leader")
	}

	for i, slot := range s.optionalSlots() {
		if slot == nil || strings.TrimSpace(slot.Email) == "" {
			continue
		}
		if !IsValidEmail(strings.TrimSpace(slot.Email)) {
			key := fmt.Sprintf("member%d", i+2)
			return NewValidationError(key+".email", "Please provide a valid email for "+key)
		}
	}

	return nil
}

// Members возвращает участников, которые попадут в команду: лидер плюс слоты,
// в которых заполнены и имя, и email. Частично заполненные слоты отбрасываются.
func (s *TeamSubmission) Members() []Member {
	members := make([]Member, 0, MaxTeamSize)
	if s.Leader != nil {
		members = append(members, s.Leader.toMember())
	}
	for _, slot := range s.optionalSlots() {
		if slot.populated() {
			members = append(members, slot.toMember())
		}
	}
	return members
}

// BuildTeam собирает запись команды для сохранения.
// Название сохраняется как отправлено: уникальность сравнивает его побайтно
func (s *TeamSubmission) BuildTeam(id string, now time.Time) *Team {
	screenShot := s.ScreenShot
	return &Team{
		ID:           id,
		TeamName:     s.TeamName,
		CollegeName:  strings.TrimSpace(s.CollegeName),
		Members:      s.Members(),
		Idea:         s.Idea,
		GameName:     s.GameName,
		ScreenShot:   &screenShot,
		Status:       StatusRegistered,
		RegisteredAt: now,
	}
}

// DuplicateEmail возвращает первый email, который встречается в команде более одного раза
func DuplicateEmail(members []Member) (string, bool) {
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m.Email]; ok {
			return m.Email, true
		}
		seen[m.Email] = struct{}{}
	}
	return "", false
}

// NormalizeMembers приводит список участников из админского обновления к виду хранения
func NormalizeMembers(members []Member) ([]Member, error) {
	if len(members) < MinTeamSize || len(members) > MaxTeamSize {
		return nil, NewValidationError("members",
			fmt.Sprintf("A team must have between %d and %d members", MinTeamSize, MaxTeamSize))
	}
	out := make([]Member, 0, len(members))
	for i, m := range members {
		in := MemberInput(m)
		if !in.populated() {
			return nil, NewValidationError(fmt.Sprintf("members[%d]", i), "Member name and email are required")
		}
		if !IsValidEmail(strings.TrimSpace(in.Email)) {
			return nil, NewValidationError(fmt.Sprintf("members[%d].email", i), "Please provide a valid email")
		}
		out = append(out, in.toMember())
	}
	return out, nil
}
