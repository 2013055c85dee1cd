package notifier

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	TemplateBotStopped          = "bot_stopped"
	TemplateWithdrawalInitiated = "withdrawal_initiated"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func lookupTemplate(name string) (*template.Template, error) {
	tpl := templates.Lookup(name + ".html")
	if tpl == nil {
		return nil, fmt.Errorf("unknown notification template %q", name)
	}
	return tpl, nil
}

func render(name string, data any) (string, error) {
	tpl, err := lookupTemplate(name)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err = tpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return body.String(), nil
}
