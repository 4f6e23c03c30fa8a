package scores

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Record is a persisted high score. Records are never modified after they
// are created.
type Record struct {
	ID         int64  `json:"id"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Lines      int    `json:"lines"`
}

// Submission is the body of a score submission. Numeric fields are pointers
// so a missing field can be told apart from zero.
type Submission struct {
	PlayerName string `json:"playerName" validate:"required,playername"`
	Score      *int   `json:"score" validate:"required,min=0"`
	Level      *int   `json:"level" validate:"required,min=1"`
	Lines      *int   `json:"lines" validate:"required,min=0"`
}

const MaxPlayerNameLength = 32

var ErrInvalid = errors.New("invalid score data")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "playername", validPlayerName)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

func validPlayerName(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n > 0 && n <= MaxPlayerNameLength
}

// NewSubmission builds a submission from plain values.
func NewSubmission(playerName string, score, level, lines int) Submission {
	return Submission{
		PlayerName: playerName,
		Score:      &score,
		Level:      &level,
		Lines:      &lines,
	}
}

// Normalize trims the player name and checks every field. Errors wrap
// ErrInvalid.
func (s Submission) Normalize() (Submission, error) {
	s.PlayerName = strings.TrimSpace(s.PlayerName)
	if err := validate.Struct(s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s, nil
}

func (s Submission) record(id int64) Record {
	return Record{
		ID:         id,
		PlayerName: s.PlayerName,
		Score:      deref(s.Score),
		Level:      deref(s.Level),
		Lines:      deref(s.Lines),
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
