package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail проверяет что строка имеет вид local@domain.tld
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemberField название поля участника
type MemberField string

// Поля участника, которые могут быть обязательными для лидера
const (
	FieldName  MemberField = "name"
	FieldEmail MemberField = "email"
	FieldPhone MemberField = "phone"
	FieldYear  MemberField = "year"
	FieldClass MemberField = "class"
)

var knownMemberFields = []MemberField{FieldName, FieldEmail, FieldPhone, FieldYear, FieldClass}

// LeaderPolicy задает набор обязательных полей лидера.
// name, email и phone обязательны всегда, year и class зависят от мероприятия.
type LeaderPolicy struct {
	required []MemberField
}

// DefaultLeaderPolicy требует все пять полей
func DefaultLeaderPolicy() LeaderPolicy {
	return LeaderPolicy{required: knownMemberFields}
}

// NewLeaderPolicy собирает политику из списка названий полей
func NewLeaderPolicy(fields []string) (LeaderPolicy, error) {
	set := map[MemberField]bool{FieldName: true, FieldEmail: true, FieldPhone: true}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		field := MemberField(f)
		if !isKnownField(field) {
			return LeaderPolicy{}, fmt.Errorf("unknown leader field %q", f)
		}
		set[field] = true
	}

	// Сохраняем стабильный порядок, чтобы сообщение об ошибке не плавало
	required := make([]MemberField, 0, len(set))
	for _, f := range knownMemberFields {
		if set[f] {
			required = append(required, f)
		}
	}
	return LeaderPolicy{required: required}, nil
}

// Required возвращает список обязательных полей
func (p LeaderPolicy) Required() []MemberField {
	return p.required
}

// Missing возвращает первое незаполненное обязательное поле
func (p LeaderPolicy) Missing(m *MemberInput) (MemberField, bool) {
	if m == nil {
		return FieldName, true
	}
	for _, f := range p.required {
		if strings.TrimSpace(m.value(f)) == "" {
			return f, true
		}
	}
	return "", false
}

// Describe возвращает список полей для сообщения об ошибке, например "name, email, phone"
func (p LeaderPolicy) Describe() string {
	names := make([]string, 0, len(p.required))
	for _, f := range p.required {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func isKnownField(f MemberField) bool {
	for _, k := range knownMemberFields {
		if k == f {
			return true
		}
	}
	return false
}
