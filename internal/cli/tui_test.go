package cli

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/config"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
	"github.com/alexanderramin/trailog/internal/service"
	"github.com/alexanderramin/trailog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_StartupCentersMapOnHome(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	assert.Equal(t, service.StateMapReady, d.Controller().State())
	assert.Equal(t, testHome, d.Canvas().center)
	assert.Equal(t, 13, d.Canvas().zoom)
	assert.Equal(t, PanelMap, d.Focus())
	assert.NotContains(t, d.View(), "Locating…")
	assert.Contains(t, d.View(), "No workouts yet.")
}

func TestTUI_StartupReplaysSavedWorkouts(t *testing.T) {
	a := testApp(t)
	first := testutil.NewTestWorkout()
	second := testutil.NewTestWorkout(testutil.WithCoords(39.75, -104.98), testutil.WithElevationGain(120))
	seedWorkouts(t, a, first, second)

	d := NewTestDriver(t, a)

	assert.Equal(t, []string{first.ID, second.ID}, d.RowIDs())
	assert.Len(t, d.Canvas().markers, 2)
	assert.Equal(t, 2, d.Controller().Markers().Len())
	view := d.View()
	assert.Contains(t, view, "Running on April")
	assert.Contains(t, view, "Cycling on April")
}

func TestTUI_LocationUnavailable(t *testing.T) {
	a := testApp(t, func(c *config.Config) { c.HasHome = false })
	d := NewTestDriver(t, a)

	assert.Equal(t, service.StateAwaitingLocation, d.Controller().State())
	assert.Equal(t, app.NoticeError, d.Status().level)
	assert.Contains(t, d.View(), "Could not get your position.")
	assert.Contains(t, d.View(), "Locating…")

	// Clicks do nothing until there is a map.
	d.PressEnter()
	assert.False(t, d.Form().visible)
	assert.False(t, d.Controller().FormOpen())
}

func TestTUI_CorruptSavedStateStartsEmpty(t *testing.T) {
	a := testApp(t)
	require.NoError(t, a.KV.Set(context.Background(), a.Config.StorageKey, "not-json"))

	d := NewTestDriver(t, a)

	assert.Equal(t, service.StateMapReady, d.Controller().State())
	assert.Equal(t, app.NoticeWarn, d.Status().level)
	assert.Contains(t, d.Status().message, "could not be read")
	assert.Empty(t, d.RowIDs())
}

func TestTUI_LogRunFromMap(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	d.PressEnter()
	require.True(t, d.Form().visible)
	at, ok := d.Controller().PendingCoords()
	require.True(t, ok)
	assert.Equal(t, testHome, at)
	assert.Contains(t, d.View(), "Distance")

	d.FillForm("5", "30", "150")

	assert.False(t, d.Form().visible)
	assert.False(t, d.Controller().FormOpen())
	_, pending := d.Controller().PendingCoords()
	assert.False(t, pending)

	ws := listWorkouts(t, a)
	require.Len(t, ws, 1)
	w := ws[0]
	assert.Equal(t, domain.ActivityRunning, w.Type)
	assert.Equal(t, testHome, w.Coords)
	assert.Equal(t, 6.0, w.Running.Pace)
	assert.Equal(t, 150.0, w.Running.Cadence)

	assert.Equal(t, []string{w.ID}, d.RowIDs())
	require.Len(t, d.Canvas().markers, 1)
	assert.Equal(t, w.Popup(), d.Canvas().open.popup)
	assert.Equal(t, app.NoticeInfo, d.Status().level)
	assert.Contains(t, d.Status().message, "logged")

	// The form comes back empty next time.
	d.PressEnter()
	assert.Empty(t, d.Form().distance)
	assert.Empty(t, d.Form().cadence)
}

func TestTUI_SwitchToCyclingShowsElevation(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	d.PressEnter()
	d.PressShiftTab() // back to the type select
	d.PressDown()
	assert.Equal(t, domain.ActivityCycling, d.Form().Type())
	assert.Equal(t, app.ExtraElevation, d.Form().extra)

	d.PressEnter() // on to distance
	d.FillForm("20", "60", "-30")

	ws := listWorkouts(t, a)
	require.Len(t, ws, 1)
	assert.Equal(t, domain.ActivityCycling, ws[0].Type)
	assert.Equal(t, -30.0, ws[0].Cycling.ElevationGain)
	assert.Equal(t, 20.0, ws[0].Cycling.Speed)
	assert.Empty(t, d.Form().cadence)
}

func TestTUI_InvalidInputKeepsFormOpen(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	d.PressEnter()
	d.FillForm("abc", "30", "150")

	assert.True(t, d.Form().visible)
	assert.True(t, d.Controller().FormOpen())
	at, ok := d.Controller().PendingCoords()
	require.True(t, ok)
	assert.Equal(t, testHome, at)
	assert.Equal(t, app.NoticeError, d.Status().level)
	assert.Equal(t, "Invalid input, check distance", d.Status().message)
	assert.Empty(t, listWorkouts(t, a))

	// Values are kept, so fixing distance is enough.
	d.PressBackspace(3)
	d.Type("5")
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()

	assert.False(t, d.Form().visible)
	assert.Len(t, listWorkouts(t, a), 1)
}

func TestTUI_EscCancelsForm(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	d.PressEnter()
	d.Type("5")
	d.PressEsc()

	assert.False(t, d.Form().visible)
	assert.False(t, d.Controller().FormOpen())
	assert.Empty(t, d.Form().distance)
	assert.Empty(t, listWorkouts(t, a))
	assert.Empty(t, d.RowIDs())
}

func TestTUI_ClickUsesCursorPosition(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)

	d.PressRight()
	d.PressRight()
	d.PressUp()
	d.PressEnter()

	at, ok := d.Controller().PendingCoords()
	require.True(t, ok)
	assert.Greater(t, at.Lng, testHome.Lng)
	assert.Greater(t, at.Lat, testHome.Lat)
	assert.Equal(t, d.Canvas().CursorCoords(), at)
}

func TestTUI_ListEnterPansToWorkout(t *testing.T) {
	a := testApp(t)
	near := testutil.NewTestWorkout()
	far := testutil.NewTestWorkout(testutil.WithCoords(51.5074, -0.1278))
	seedWorkouts(t, a, near, far)
	d := NewTestDriver(t, a)

	d.PressTab()
	require.Equal(t, PanelList, d.Focus())
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, far.Coords, d.Canvas().center)
	assert.Equal(t, 13, d.Canvas().zoom)
	require.NotNil(t, d.Canvas().open)
	assert.Equal(t, far.Popup(), d.Canvas().open.popup)
	assert.False(t, d.Form().visible, "panning never opens the form")
}

func TestTUI_DeleteFromList(t *testing.T) {
	a := testApp(t)
	keep := testutil.NewTestWorkout()
	drop := testutil.NewTestWorkout(testutil.WithCoords(40, -105))
	seedWorkouts(t, a, keep, drop)
	d := NewTestDriver(t, a)

	d.PressTab()
	d.PressDown()
	d.PressKey('d')

	assert.Equal(t, []string{keep.ID}, d.RowIDs())
	assert.Len(t, d.Canvas().markers, 1)
	assert.False(t, d.Controller().Markers().Has(drop.ID))
	ws := listWorkouts(t, a)
	require.Len(t, ws, 1)
	assert.Equal(t, keep.ID, ws[0].ID)
}

func TestTUI_ResetNeedsConfirmation(t *testing.T) {
	a := testApp(t)
	seedWorkouts(t, a, testutil.NewTestWorkout(), testutil.NewTestWorkout())
	d := NewTestDriver(t, a)

	d.PressKey('R')
	assert.Equal(t, app.NoticeWarn, d.Status().level)
	d.PressKey('n')
	assert.Equal(t, "Nothing cleared.", d.Status().message)
	assert.Len(t, d.RowIDs(), 2)

	d.PressKey('R')
	d.PressKey('y')
	assert.Empty(t, d.RowIDs())
	assert.Empty(t, d.Canvas().markers)
	assert.Empty(t, listWorkouts(t, a))

	_, ok, err := a.KV.Get(context.Background(), repository.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, ok, "record removed")
}

func TestTUI_FormSettlesAfterSubmit(t *testing.T) {
	a := testApp(t, func(c *config.Config) { c.FormSettle = time.Second })
	d := NewTestDriver(t, a)

	d.PressEnter()
	d.FillForm("5", "30", "150")

	require.True(t, d.Form().settling)
	assert.Contains(t, d.View(), "✔ Saved")

	d.Send(formSettledMsg{gen: d.Form().gen - 1})
	assert.True(t, d.Form().settling, "stale tick is ignored")

	d.Send(formSettledMsg{gen: d.Form().gen})
	assert.False(t, d.Form().settling)
	assert.NotContains(t, d.View(), "✔ Saved")
}

func TestTUI_ZoomKeys(t *testing.T) {
	a := testApp(t, func(c *config.Config) { c.Zoom = 18 })
	d := NewTestDriver(t, a)

	d.PressKey('+')
	assert.Equal(t, 18, d.Canvas().zoom, "clamped at max")
	d.PressKey('-')
	assert.Equal(t, 17, d.Canvas().zoom)
}

func TestTUI_Quit(t *testing.T) {
	a := testApp(t)

	d := NewTestDriver(t, a)
	d.PressKey('q')
	assert.True(t, d.IsQuitting())

	d = NewTestDriver(t, a)
	d.PressEnter()
	d.PressCtrlC()
	assert.True(t, d.IsQuitting(), "ctrl+c quits even with the form open")
}

func TestTUI_FormGettersReturnNaNForText(t *testing.T) {
	f := newWorkoutForm(&SharedState{})
	f.distance = " 5.5 "
	f.duration = "half an hour"

	assert.Equal(t, 5.5, f.Distance())
	assert.True(t, math.IsNaN(f.Duration()))
	assert.True(t, math.IsNaN(f.Cadence()))
}

func TestTUI_TabSwitchesPanelAndClearsNotice(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a)
	d.PressEnter()
	d.FillForm("5", "30", "150")
	require.NotEmpty(t, d.Status().message)

	d.PressTab()
	assert.Equal(t, PanelList, d.Focus())
	assert.Empty(t, d.Status().message)
	assert.Contains(t, d.View(), "› workouts")

	d.PressTab()
	assert.Equal(t, PanelMap, d.Focus())
}
