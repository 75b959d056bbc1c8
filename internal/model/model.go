package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type User struct {
	ID        string    `json:"_id" bson:"-" firestore:"-"`
	Username  string    `json:"username" bson:"username" firestore:"username"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type Exercise struct {
	ID          string    `json:"_id" bson:"-" firestore:"-"`
	Username    string    `json:"username" bson:"username" firestore:"username"`
	Description string    `json:"description" bson:"description" firestore:"description"`
	Duration    float64   `json:"duration" bson:"duration" firestore:"duration"`
	Date        time.Time `json:"date" bson:"date" firestore:"date"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type UserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
}

// Normalize trims the username and puts it in NFC form so that visually equal
// usernames collide on the unique index.
func (r *UserRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
}

func (r UserRequest) Validate() error {
	return validate.Struct(r)
}

func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

type ExerciseRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Description string  `json:"description" validate:"required,max=1000"`
	Duration    float64 `json:"duration" validate:"required,gt=0"`
	Date        Date    `json:"date"`
}

func (r *ExerciseRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.Description = strings.TrimSpace(r.Description)
}

func (r ExerciseRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// Exercise builds the stored representation of the request.
func (r ExerciseRequest) Exercise() Exercise {
	return Exercise{
		Username:    r.Username,
		Description: r.Description,
		Duration:    r.Duration,
		Date:        r.Date.Time,
	}
}

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

const dateOnly = "2006-01-02"

func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date{t.UTC()}, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return Date{}, errors.Errorf("invalid date %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("invalid date %s: want a string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return d.Time.MarshalJSON()
}
