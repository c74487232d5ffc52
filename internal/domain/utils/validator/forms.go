package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

const (
	MinPlayerAge = 5
	MaxPlayerAge = 70
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("strict_email", func(fl playground.FieldLevel) bool {
		return Email(fl.Field().String())
	}))
	must(v.RegisterValidation("nam_phone", func(fl playground.FieldLevel) bool {
		return Phone(fl.Field().String())
	}))
	must(v.RegisterValidation("person_name", func(fl playground.FieldLevel) bool {
		return Name(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

type ProfileForm struct {
	FirstName      string `json:"firstName" validate:"required,person_name"`
	LastName       string `json:"lastName" validate:"required,person_name"`
	Email          string `json:"email" validate:"required,strict_email"`
	PhoneNumber    string `json:"phoneNumber" validate:"omitempty,nam_phone"`
	EmergencyName  string `json:"emergencyName" validate:"omitempty,person_name"`
	EmergencyPhone string `json:"emergencyPhone" validate:"omitempty,nam_phone"`
}

type TeamForm struct {
	Name         string `json:"name" validate:"required,min=3,max=50"`
	Category     string `json:"category" validate:"required,oneof=men women boys girls mixed masters"`
	Division     string `json:"division" validate:"max=50"`
	CoachName    string `json:"coachName" validate:"omitempty,person_name"`
	ManagerName  string `json:"managerName" validate:"omitempty,person_name"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,strict_email"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,nam_phone"`
}

type PlayerForm struct {
	FirstName    string    `json:"firstName" validate:"required,person_name"`
	LastName     string    `json:"lastName" validate:"required,person_name"`
	Email        string    `json:"email" validate:"omitempty,strict_email"`
	PhoneNumber  string    `json:"phoneNumber" validate:"omitempty,nam_phone"`
	Position     string    `json:"position" validate:"required,oneof=goalkeeper defender midfielder forward"`
	JerseyNumber int       `json:"jerseyNumber" validate:"min=1,max=99"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
}

func (f PlayerForm) check(now time.Time, errs map[string]string) {
	if !Age(f.DateOfBirth, now, MinPlayerAge, MaxPlayerAge) {
		errs["dateOfBirth"] = fmt.Sprintf("player must be between %d and %d years old", MinPlayerAge, MaxPlayerAge)
	}
}

type EventForm struct {
	Title                string    `json:"title" validate:"required,min=5,max=100"`
	Description          string    `json:"description" validate:"max=1000"`
	Location             string    `json:"location" validate:"required,min=3,max=150"`
	MaxTeams             int       `json:"maxTeams" validate:"min=0"`
	EntryFee             float64   `json:"entryFee" validate:"min=0"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
}

func (f EventForm) check(_ time.Time, errs map[string]string) {
	if !EventDates(f.StartDate, f.EndDate, f.RegistrationDeadline) {
		errs["endDate"] = "event must end after it starts and registration must close before the start"
	}
}

type NewsForm struct {
	Title    string `json:"title" validate:"required,min=5,max=150"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=general tournament team player announcement"`
}

type RoleRequestForm struct {
	RequestedRole string `json:"requestedRole" validate:"required,oneof=admin coach manager player"`
	Reason        string `json:"reason" validate:"required,min=10,max=500"`
}

type formChecker interface {
	check(now time.Time, errs map[string]string)
}

// ValidateForm validates one of the form structs and returns field -> message.
// An empty map means the form can be submitted.
func ValidateForm(form interface{}, now time.Time) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(form); err != nil {
		validationErrors, ok := err.(playground.ValidationErrors)
		if !ok {
			errs["form"] = err.Error()
			return errs
		}
		for _, fe := range validationErrors {
			errs[fe.Field()] = message(fe)
		}
	}
	if c, ok := form.(formChecker); ok {
		c.check(now, errs)
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "strict_email":
		return "must be a valid email address"
	case "nam_phone":
		return "must be a valid Namibian phone number"
	case "person_name":
		return "must be a valid name"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
