package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/config"
	"github.com/alexanderramin/trailog/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoHomePosition = errors.New("no home position configured (set TRAILOG_HOME_LAT and TRAILOG_HOME_LNG)")

var _ app.LocationProvider = (*configLocation)(nil)

// locationResultMsg carries a finished lookup back into Update, where the
// callbacks run on the event loop.
type locationResultMsg struct {
	at        domain.Coords
	err       error
	onSuccess func(domain.Coords)
	onFailure func(error)
}

func (m locationResultMsg) deliver() {
	if m.err != nil {
		m.onFailure(m.err)
		return
	}
	m.onSuccess(m.at)
}

// configLocation reports the home position from config. The lookup runs
// as a tea.Cmd so results arrive the same way a real position source's
// would.
type configLocation struct {
	state *SharedState
	home  domain.Coords
	ok    bool
}

func newConfigLocation(state *SharedState, cfg config.Config) *configLocation {
	return &configLocation{state: state, home: cfg.Home, ok: cfg.HasHome}
}

func (l *configLocation) RequestCurrentPosition(ctx context.Context, onSuccess func(domain.Coords), onFailure func(error)) {
	l.state.Enqueue(func() tea.Msg {
		msg := locationResultMsg{onSuccess: onSuccess, onFailure: onFailure}
		switch {
		case ctx.Err() != nil:
			msg.err = ctx.Err()
		case !l.ok:
			msg.err = errNoHomePosition
		default:
			msg.at = l.home
		}
		return msg
	})
}
