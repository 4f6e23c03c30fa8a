package scores

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestNewValidatorRegistersPlayerName(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Var("Ada", "playername"))
	assert.Error(t, v.Var("   ", "playername"))
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() { mustRegister(v, "", validPlayerName) })
}
