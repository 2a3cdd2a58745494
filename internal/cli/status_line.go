package cli

import (
	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
)

var _ app.Notifier = (*statusLine)(nil)

// statusLine is the app.Notifier. It shows the latest notice above the
// key hints until the next one replaces it.
type statusLine struct {
	level   app.NoticeLevel
	message string
}

func (s *statusLine) Notify(level app.NoticeLevel, message string) {
	s.level = level
	s.message = message
}

func (s *statusLine) Clear() {
	s.message = ""
}

func (s *statusLine) View() string {
	if s.message == "" {
		return ""
	}
	switch s.level {
	case app.NoticeError:
		return formatter.StyleRed.Render("✖ " + s.message)
	case app.NoticeWarn:
		return formatter.StyleYellow.Render("! " + s.message)
	default:
		return formatter.StyleGreen.Render("✔ " + s.message)
	}
}
