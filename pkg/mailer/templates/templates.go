package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names
const (
	ResetPassword = "reset_password"
)

// ResetPasswordData feeds the reset_password templates.
type ResetPasswordData struct {
	Email     string
	Link      string
	ExpiresIn time.Duration
}

var funcs = map[string]any{
	"minutes": func(d time.Duration) string { return fmt.Sprintf("%g", d.Minutes()) },
}

// Every *.tmpl file is parsed once; subject and text parts go through
// text/template, html parts through html/template.
var (
	textSet = texttpl.Must(texttpl.New("").Funcs(texttpl.FuncMap(funcs)).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("").Funcs(htmpl.FuncMap(funcs)).ParseFS(FS, "*.html.tmpl"))
)

func execText(name string, data any) (string, error) {
	if textSet.Lookup(name) == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := textSet.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func execHTML(name string, data any) (string, error) {
	if htmlSet.Lookup(name) == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := htmlSet.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render renders <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
// The subject is trimmed to a single line.
func Render(name string, data any) (subject string, text string, html string, err error) {
	if subject, err = execText(name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execText(name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execHTML(name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
