package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/taliesin/internal/config"
	"github.com/jmylchreest/taliesin/internal/keys"
	"github.com/jmylchreest/taliesin/internal/notify"
)

const ms = time.Millisecond

func testConfig(delay, ignore time.Duration) *config.Config {
	return &config.Config{
		Keys:           keys.NewSet(keys.A),
		CancelKeys:     keys.NewSet(keys.Escape),
		File:           "beep.wav",
		Delay:          delay,
		IgnoreDuration: ignore,
		Volume:         0.5,
	}
}

func kinds(events []notify.Event) []notify.Kind {
	out := make([]notify.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestMachine_StartsDisabled(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	assert.Equal(t, Disabled, m.State())
	assert.Equal(t, "disabled", m.State().String())
}

func TestMachine_TriggerPressStartsTimer(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))

	events := m.Step(5*ms, keys.NewSet(keys.A))
	require.Len(t, events, 1)
	assert.Equal(t, notify.TimerStarted, events[0].Kind)
	assert.Equal(t, "beep.wav", events[0].File)
	assert.Equal(t, 1000*ms, events[0].Delay)
	assert.Equal(t, Counting(0), m.State())
}

func TestMachine_UnchangedSnapshotsNeverChangeState(t *testing.T) {
	tests := []struct {
		name     string
		snapshot keys.Set
	}{
		{"empty", keys.NewSet()},
		{"trigger held", keys.NewSet(keys.A)},
		{"cancel held", keys.NewSet(keys.Escape)},
		{"unrelated", keys.NewSet(keys.Z)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(testConfig(time.Hour, 0))
			m.Observe(tt.snapshot)
			before := m.State()

			for i := 0; i < 50; i++ {
				events := m.Observe(tt.snapshot.Clone())
				assert.Empty(t, events)
				assert.Equal(t, before, m.State())
			}
		})
	}
}

func TestMachine_FiresAtFirstIterationReachingDelay(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	held := keys.NewSet(keys.A)
	m.Step(0, held)

	// 9 x 110ms = 990ms: not yet.
	for i := 0; i < 9; i++ {
		assert.Empty(t, m.Step(110*ms, held))
	}
	assert.Equal(t, Counting(990*ms), m.State())

	events := m.Step(10*ms, held)
	assert.Equal(t, []notify.Kind{notify.Played}, kinds(events))
	assert.Equal(t, "beep.wav", events[0].File)
	assert.Equal(t, Disabled, m.State())

	// Holding the key does not re-arm.
	assert.Empty(t, m.Step(500*ms, held))
	assert.Equal(t, Disabled, m.State())
}

func TestMachine_OvershootStillFiresOnce(t *testing.T) {
	m := NewMachine(testConfig(100*ms, 0))
	m.Step(0, keys.NewSet(keys.A))

	events := m.Step(5*time.Second, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.Played}, kinds(events))
	assert.Equal(t, Disabled, m.State())
}

func TestMachine_ZeroDelayFiresOnNextIteration(t *testing.T) {
	m := NewMachine(testConfig(0, 0))
	m.Step(0, keys.NewSet(keys.A))
	assert.Equal(t, Counting(0), m.State())

	events := m.Step(0, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.Played}, kinds(events))
}

func TestMachine_CancelAfterTriggerPreventsPlayback(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(100*ms, keys.NewSet())

	events := m.Step(100*ms, keys.NewSet(keys.Escape))
	assert.Equal(t, []notify.Kind{notify.TimerCleared}, kinds(events))
	assert.Equal(t, Disabled, m.State())

	for i := 0; i < 20; i++ {
		assert.Empty(t, m.Step(100*ms, keys.NewSet()))
	}
}

func TestMachine_TriggerWinsOverCancelInSameSnapshot(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(300*ms, keys.NewSet())

	events := m.Step(0, keys.NewSet(keys.A, keys.Escape))
	assert.Equal(t, []notify.Kind{notify.TimerStarted}, kinds(events))
	assert.Equal(t, Counting(0), m.State())
}

func TestMachine_IgnoreDurationGatesRestart(t *testing.T) {
	m := NewMachine(testConfig(10*time.Second, 500*ms))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(200*ms, keys.NewSet())
	assert.Equal(t, Counting(200*ms), m.State())

	// Within the cooldown: no restart, the countdown keeps going.
	events := m.Step(10*ms, keys.NewSet(keys.A))
	assert.Empty(t, events)
	assert.Equal(t, Counting(210*ms), m.State())

	// Elapsed equal to the ignore duration is still gated.
	m.Step(290*ms, keys.NewSet())
	assert.Equal(t, Counting(500*ms), m.State())
	assert.Empty(t, m.Step(0, keys.NewSet(keys.A)))

	// Past the cooldown the same press restarts mid-countdown.
	m.Step(1*ms, keys.NewSet())
	events = m.Step(0, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.TimerStarted}, kinds(events))
	assert.Equal(t, Counting(0), m.State())
}

func TestMachine_IgnoreDurationNeverGatesDisabledTimer(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, time.Hour))

	events := m.Step(0, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.TimerStarted}, kinds(events))
}

func TestMachine_GatedTriggerPressCanStillCancel(t *testing.T) {
	m := NewMachine(testConfig(10*time.Second, 500*ms))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(100*ms, keys.NewSet())

	events := m.Step(0, keys.NewSet(keys.A, keys.Escape))
	assert.Equal(t, []notify.Kind{notify.TimerCleared}, kinds(events))
	assert.Equal(t, Disabled, m.State())
}

func TestMachine_CancelWhileDisabledIsNoop(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))

	events := m.Step(10*ms, keys.NewSet(keys.Escape))
	assert.Empty(t, events)
	assert.Equal(t, Disabled, m.State())
}

func TestMachine_CoarseEdgeDetection(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(400*ms, keys.NewSet(keys.A))
	assert.Equal(t, Counting(400*ms), m.State())

	// A stays held; pressing an unrelated key changes the snapshot and re-arms.
	events := m.Step(0, keys.NewSet(keys.A, keys.Z))
	assert.Equal(t, []notify.Kind{notify.TimerStarted}, kinds(events))
	assert.Equal(t, Counting(0), m.State())

	// Releasing the unrelated key while A is held re-arms again.
	m.Step(300*ms, keys.NewSet(keys.A, keys.Z))
	events = m.Step(0, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.TimerStarted}, kinds(events))
}

func TestMachine_ReleasingTriggerDoesNotRestart(t *testing.T) {
	m := NewMachine(testConfig(1000*ms, 0))
	m.Step(0, keys.NewSet(keys.A))

	events := m.Step(100*ms, keys.NewSet())
	assert.Empty(t, events)
	assert.Equal(t, Counting(100*ms), m.State())
}

func TestMachine_FireAndRearmInSameIteration(t *testing.T) {
	m := NewMachine(testConfig(100*ms, 0))
	m.Step(0, keys.NewSet(keys.A))
	m.Step(50*ms, keys.NewSet())

	events := m.Step(60*ms, keys.NewSet(keys.A))
	assert.Equal(t, []notify.Kind{notify.Played, notify.TimerStarted}, kinds(events))
	assert.Equal(t, Counting(0), m.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "counting(250ms)", Counting(250*ms).String())
	assert.True(t, Counting(0).IsCounting())
	assert.False(t, Disabled.IsCounting())
	assert.Equal(t, time.Duration(0), Disabled.Elapsed())
}
