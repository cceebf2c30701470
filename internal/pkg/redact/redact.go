// redact маскирует персональные данные пользователя перед записью в лог.
package redact

import "strings"

// Email маскирует e-mail: первые две руны локальной части + "***", домен как есть.
// Локальная часть короче трёх рун и строка без ровно одного '@' скрываются целиком.
//
//	"foobar@example.com" -> "fo***@example.com"
//	"ab@ex.com"          -> "***@ex.com"
//	"no-at"              -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// OptionalEmail — Email для необязательного поля: пустое остаётся пустым.
func OptionalEmail(s string) string {
	if s == "" {
		return ""
	}

	return Email(s)
}
