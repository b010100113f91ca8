package notifier

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	texttemplate "text/template"

	gopkgmail "gopkg.in/gomail.v2"
)

//go:embed templates/*
var builtinTemplates embed.FS

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
	// TMPLDir overrides the built-in templates when it holds <name>.html / <name>.txt.
	TMPLDir string
}

// Notification is one rendered-on-send e-mail.
type Notification struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type Mailer interface {
	Send(n Notification) error
}

type EmailSender struct {
	cfg  SMTPConfig
	send func(m *gopkgmail.Message) error
}

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	s := &EmailSender{cfg: cfg}
	s.send = func(m *gopkgmail.Message) error {
		d := gopkgmail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		d.SSL = cfg.SSL
		return d.DialAndSend(m)
	}
	return s
}

func (s *EmailSender) Send(n Notification) error {
	m, err := s.Build(n)
	if err != nil {
		return err
	}
	return s.send(m)
}

// Build renders both bodies and assembles the message without sending it.
func (s *EmailSender) Build(n Notification) (*gopkgmail.Message, error) {
	htmlBody, err := s.renderHTML(n.Template, n.Data)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(n.Template, n.Data)
	if err != nil {
		return nil, fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m, nil
}

func (s *EmailSender) load(name string) ([]byte, error) {
	if s.cfg.TMPLDir != "" {
		content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, name))
		if err == nil {
			return content, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return builtinTemplates.ReadFile("templates/" + name)
}

func (s *EmailSender) renderHTML(tmplName string, data map[string]any) (string, error) {
	content, err := s.load(tmplName + ".html")
	if err != nil {
		return "", err
	}
	tmpl, err := htmltemplate.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailSender) renderPlain(tmplName string, data map[string]any) (string, error) {
	content, err := s.load(tmplName + ".txt")
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
