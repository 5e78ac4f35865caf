package services

import (
	"errors"
	"testing"

	"github.com/nived-628/ShopSphere/models"
	"github.com/stretchr/testify/assert"
)

type fakeEffect struct {
	name    string
	err     error
	panics  bool
	applied int
}

func (f *fakeEffect) Name() string { return f.name }

func (f *fakeEffect) Apply(payment *models.Payment, order *models.Order) error {
	f.applied++
	if f.panics {
		panic("effect exploded")
	}
	return f.err
}

func TestRunEffectsAllSucceed(t *testing.T) {
	first := &fakeEffect{name: "first"}
	second := &fakeEffect{name: "second"}

	warnings := RunEffects([]PostCommitEffect{first, second}, &models.Payment{OrderID: "ORD-1"}, &models.Order{})

	assert.Empty(t, warnings)
	assert.Equal(t, 1, first.applied)
	assert.Equal(t, 1, second.applied)
}

func TestRunEffectsFailureDoesNotStopTheRest(t *testing.T) {
	failing := &fakeEffect{name: "email", err: errors.New("smtp down")}
	after := &fakeEffect{name: "audit"}

	warnings := RunEffects([]PostCommitEffect{failing, after}, &models.Payment{OrderID: "ORD-1"}, &models.Order{})

	assert.Equal(t, []string{"email: smtp down"}, warnings)
	assert.Equal(t, 1, after.applied, "later effects still run")
}

func TestRunEffectsRecoversPanics(t *testing.T) {
	panicking := &fakeEffect{name: "tracking", panics: true}
	after := &fakeEffect{name: "audit"}

	warnings := RunEffects([]PostCommitEffect{panicking, after}, &models.Payment{OrderID: "ORD-1"}, &models.Order{})

	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "tracking: panic")
	assert.Equal(t, 1, after.applied)
}

func TestRunEffectsNoEffects(t *testing.T) {
	warnings := RunEffects(nil, &models.Payment{OrderID: "ORD-1"}, &models.Order{})
	assert.Empty(t, warnings)
}
