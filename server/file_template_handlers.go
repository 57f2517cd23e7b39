package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var pageTemplates = []string{
	"index.html",
	"map.html",
	"leaderboard.html",
	"account.html",
	"scan.html",
	"login.html",
	"signup.html",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"readableTime": readableTime,
	"statusLabel":  func(s backend.ConservationStatus) string { return s.Label() },
	"statusClass":  statusClass,
	"endangered":   func(s backend.ConservationStatus) bool { return s.Endangered() },
	"oneDecimal":   func(f float64) string { return fmt.Sprintf("%.1f", f) },
}

// ParseTemplate parses a page from the embedded filesystem inside the shared layout
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

func parsePageTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, apperrors.Wrapf(err, "parse %s", name)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// readableTime formats a Unix timestamp in seconds, e.g. "Mar 4, 2025, 3:07 PM".
func readableTime(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("Jan 2, 2006, 3:04 PM")
}

// statusClass maps a conservation status to its badge class. Codes the
// backend may add later fall back to a neutral badge.
func statusClass(s backend.ConservationStatus) string {
	if !s.Valid() {
		return "status-unknown"
	}
	return "status-" + strings.ToLower(string(s))
}
