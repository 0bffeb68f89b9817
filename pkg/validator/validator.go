package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const DateLayout = "2006-01-02"

var (
	clockRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
	dateRegex  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// SplitClock возвращает часы и минуты из строки H:MM или HH:MM в 24-часовом формате.
func SplitClock(value string) (hour, minute int, ok bool) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, false
	}

	for _, r := range m[1] {
		hour = hour*10 + int(r-'0')
	}
	for _, r := range m[2] {
		minute = minute*10 + int(r-'0')
	}

	return hour, minute, true
}

func ValidateDate(value string) bool {
	if !dateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}

// NormalizeText обрезает пробелы, убирает управляющие символы и опасные для разметки знаки.
func NormalizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(SanitizeString(cleaned))
}
