package server

import (
	"aggregat4/gonewtab/internal/domain"
	"html/template"
	"time"

	"github.com/aggregat4/go-baselib/lang"
	"github.com/microcosm-cc/bluemonday"
)

var welcomePolicy = bluemonday.UGCPolicy()

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"clock":      formatClock,
		"longDate":   formatLongDate,
		"welcome":    welcomeHtml,
		"ifElse":     func(cond bool, a, b string) string { return lang.IfElse(cond, a, b) },
		"wallpapers": func() []domain.Wallpaper { return domain.Wallpapers },
	}
}

func formatClock(t time.Time, use24HourFormat bool) string {
	return t.Format(lang.IfElse(use24HourFormat, "15:04", "3:04 PM"))
}

func formatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// welcomeHtml renders the user supplied welcome message. Basic formatting survives, scripts and
// event handlers do not.
func welcomeHtml(message *string) template.HTML {
	if message == nil {
		return ""
	}
	return template.HTML(welcomePolicy.Sanitize(*message))
}
