package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/smart-lamp/internal/diagnostics"
	"github.com/coreman2200/smart-lamp/internal/driver/fake"
	"github.com/coreman2200/smart-lamp/internal/layout"
	"github.com/coreman2200/smart-lamp/internal/sequence"
)

type reports struct{ got []diag.Diagnostic }

func (r *reports) Report(d diag.Diagnostic) { r.got = append(r.got, d) }

func newCore(t *testing.T, o Options) (*Core, *fake.Driver) {
	t.Helper()
	drv := &fake.Driver{}
	o.Driver = drv
	if o.Layout.Width == 0 {
		o.Layout = layout.New(8, 10)
	}
	c, err := InitCore(o)
	require.NoError(t, err)
	return c, drv
}

func TestBootShowsGreenAtBrightness(t *testing.T) {
	_, drv := newCore(t, Options{Brightness: 64, SwitchEvery: 100})
	assert.Equal(t, 80, drv.InitCount)
	assert.Equal(t, uint8(64), drv.Brightness)
	require.Equal(t, 1, drv.Shows)
	for _, c := range drv.Last {
		require.Equal(t, BootColor, c)
	}
}

func TestRotationOrder(t *testing.T) {
	c, _ := newCore(t, Options{SwitchEvery: 100})
	assert.Equal(t, []string{"snow", "colors", "matrix", "fire"}, c.Sched.Names())
}

func TestStepSwitchesEveryHundredTicks(t *testing.T) {
	rep := &reports{}
	c, drv := newCore(t, Options{SwitchEvery: 100, Seed: 1, Reporter: rep})
	c.Seq.Start()
	for i := 0; i < 99; i++ {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, "snow", c.Sched.Effect().Name())
	require.NoError(t, c.Step())
	assert.Equal(t, "colors", c.Sched.Effect().Name())
	for i := 0; i < 300; i++ {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, "snow", c.Sched.Effect().Name(), "rotation wraps")
	assert.Equal(t, uint32(400), c.Sched.Seed())
	assert.Equal(t, 401, drv.Shows)

	require.Len(t, rep.got, 4)
	assert.Equal(t, "SEQ.SWITCH", rep.got[0].Code)
	assert.Equal(t, "colors", rep.got[0].Evidence["effect"])
}

func TestCalibrateHolds(t *testing.T) {
	c, _ := newCore(t, Options{SwitchEvery: 100, Calibrate: true})
	c.Seq.Start()
	for i := 0; i < 250; i++ {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, "calib", c.Sched.Effect().Name())
	assert.Zero(t, c.Seq.Switches())
}

func TestJump(t *testing.T) {
	c, _ := newCore(t, Options{SwitchEvery: 100})
	assert.True(t, c.Jump("fire"))
	assert.Equal(t, "fire", c.Sched.Effect().Name())
	assert.True(t, c.Jump("snow"))
	assert.Equal(t, 0, c.Sched.Current())
	assert.False(t, c.Jump("plasma"))
}

func TestRunKeepsGoingAfterFlushErrors(t *testing.T) {
	rep := &reports{}
	c, drv := newCore(t, Options{SwitchEvery: 100, Reporter: rep})
	drv.ShowErr = errors.New("bus fault")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	err := c.Run(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Greater(t, c.Sched.Seed(), uint32(1))
	require.NotEmpty(t, rep.got)
	assert.Equal(t, "LED.FLUSH", rep.got[0].Code)
	assert.Equal(t, sequence.Idle, c.Seq.State, "Run stops the player on exit")
}

func TestRunRejectsBadInterval(t *testing.T) {
	c, _ := newCore(t, Options{})
	assert.Error(t, c.Run(context.Background(), 0))
}

func TestInitCoreErrors(t *testing.T) {
	_, err := InitCore(Options{Layout: layout.New(0, 10), Driver: &fake.Driver{}})
	assert.Error(t, err)
	_, err = InitCore(Options{Layout: layout.New(8, 10), Driver: &fake.Driver{ShowErr: errors.New("x")}})
	assert.Error(t, err)
}
