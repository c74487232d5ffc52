package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(\+264|264)?[0-9]{8,9}$`)
	nameRe  = regexp.MustCompile(`^\p{L}[\p{L} '\-]*$`)

	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

func Email(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// Phone accepts Namibian numbers with an optional +264 or 264 prefix.
// Spaces, dashes and parentheses are ignored.
func Phone(phone string) bool {
	return phoneRe.MatchString(NormalizePhone(phone))
}

func NormalizePhone(phone string) string {
	return phoneStripper.Replace(strings.TrimSpace(phone))
}

func Name(name string) bool {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 50 && nameRe.MatchString(name)
}

func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func TeamName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 3 && n <= 50
}

func EventTitle(title string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	return n >= 5 && n <= 100
}

func EventDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 1000
}

func EventLocation(location string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(location))
	return n >= 3 && n <= 150
}

// EventDates checks that the event does not end before it starts and that
// registration, when it has a deadline, closes no later than the start.
func EventDates(start, end, registrationDeadline time.Time) bool {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return false
	}
	return registrationDeadline.IsZero() || !registrationDeadline.After(start)
}

func NewsTitle(title string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	return n >= 5 && n <= 150
}

func JerseyNumber(number int) bool {
	return number >= 1 && number <= 99
}

// Age checks that someone born on dob is between minAge and maxAge years old at now.
func Age(dob, now time.Time, minAge, maxAge int) bool {
	if dob.IsZero() || dob.After(now) {
		return false
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age >= minAge && age <= maxAge
}
