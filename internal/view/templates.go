package view

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/pkg/maps"
	"Purchase-Tracker/web"
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CurrentPath string
	Error       string
	Maps        maps.Config
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template. Output is buffered so a failing template
// never writes a partial page.
func (e *Engine) Render(w io.Writer, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(v string) string {
			t, err := time.Parse(domain.DateLayout, v)
			if err != nil {
				return v
			}
			return t.Format("02 Jan 2006")
		},
		"formatMoney": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
		"formatNumber": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"coord": func(v *float64) string {
			if v == nil {
				return ""
			}
			return strconv.FormatFloat(*v, 'f', -1, 64)
		},
		"mapsLink": func(lat *float64, lng *float64) string {
			if lat == nil || lng == nil {
				return ""
			}
			return maps.ExternalLink(*lat, *lng)
		},
		"selected": func(a string, b string) bool {
			return a == b
		},
	}
}
