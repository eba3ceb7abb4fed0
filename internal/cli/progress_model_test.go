package cli

import (
	"errors"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/service"
	"github.com/aadhamashraf/intentgen/internal/teatest"
	"github.com/stretchr/testify/assert"
)

func TestProgressModel_TracksProgress(t *testing.T) {
	d := teatest.New(t, newProgressModel(), teatest.WithSize(100, 20))
	d.DrainInit()

	d.Send(progressMsg{done: 3, total: 12})
	m := d.Model.(progressModel)
	assert.InDelta(t, 0.25, m.percent(), 1e-9)
	assert.Equal(t, maxBarWidth, m.bar.Width)
	assert.Contains(t, d.View(), "3/12")
	assert.Contains(t, d.View(), "25%")
}

func TestProgressModel_NarrowTerminal(t *testing.T) {
	d := teatest.New(t, newProgressModel(), teatest.WithSize(25, 10))
	assert.Equal(t, 10, d.Model.(progressModel).bar.Width)
}

func TestProgressModel_DoneQuits(t *testing.T) {
	d := teatest.New(t, newProgressModel())
	res := &service.GenerateResult{}
	d.Send(generateDoneMsg{result: res})

	assert.True(t, d.Quitting)
	m := d.Model.(progressModel)
	assert.Same(t, res, m.result)
	assert.True(t, m.finished)
	assert.Empty(t, d.View())

	d.Send(progressMsg{done: 1, total: 1})
	assert.Zero(t, d.Model.(progressModel).done, "messages after quit are dropped")
}

func TestProgressModel_CarriesError(t *testing.T) {
	d := teatest.New(t, newProgressModel())
	boom := errors.New("boom")
	d.Send(generateDoneMsg{err: boom})
	assert.ErrorIs(t, d.Model.(progressModel).err, boom)
}

func TestProgressModel_CtrlCCancels(t *testing.T) {
	d := teatest.New(t, newProgressModel())
	d.Send(progressMsg{done: 1, total: 10})
	d.PressCtrlC()

	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(progressModel).cancelled)
	assert.Contains(t, d.View(), "cancelled")
}

func TestProgressModel_ZeroTotal(t *testing.T) {
	assert.Zero(t, newProgressModel().percent())
}
