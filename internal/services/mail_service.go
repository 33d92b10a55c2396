package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
)

type IMailService interface {
	SendNotification(to, subject, body string) error
	SendReminder(to, userName, label, clock string) error
	SendTestEmail(to, userName string) error
}

// SMTPConfig holds SMTP credentials and branding.
type SMTPConfig struct {
	Host       string
	Port       int // 587 for STARTTLS, 465 with UseSSL
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool

	AppName    string
	AppBaseURL string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type smtpMailService struct {
	cfg     SMTPConfig
	log     *zap.Logger
	htmlTpl *htmltemplate.Template
	textTpl *texttemplate.Template
	sendFn  func(to, subject, htmlBody, textBody string) error
}

func NewSMTPMailService(cfg SMTPConfig, log *zap.Logger) (IMailService, error) {
	htmlTpl, err := htmltemplate.New("mailHTML").Parse(baseHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	textTpl, err := texttemplate.New("mailText").Parse(plainTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	s := &smtpMailService{
		cfg:     cfg,
		log:     log.Named("mail"),
		htmlTpl: htmlTpl,
		textTpl: textTpl,
	}
	s.sendFn = s.send
	if !cfg.configured() {
		s.log.Warn("SMTP credentials missing, emails will be logged instead of sent")
		s.sendFn = s.mockSend
	}
	return s, nil
}

func (s *smtpMailService) SendNotification(to, subject, body string) error {
	return s.deliver(to, EmailData{
		Title: subject,
		Intro: body,
	})
}

func (s *smtpMailService) SendReminder(to, userName, label, clock string) error {
	if userName == "" {
		userName = "User"
	}
	return s.deliver(to, EmailData{
		Title:    "Reminder: " + label,
		Greeting: fmt.Sprintf("Hello %s,", userName),
		Intro:    "This is your scheduled reminder:",
		Label:    label,
		Clock:    clock,
		Outro:    "Stay healthy and on track!",
	})
}

func (s *smtpMailService) SendTestEmail(to, userName string) error {
	if userName == "" {
		userName = "User"
	}
	return s.deliver(to, EmailData{
		Title:    "Test Notification",
		Greeting: fmt.Sprintf("Hello %s,", userName),
		Intro:    "This is a test email from " + s.appName() + ". Your email notifications are working.",
	})
}

type EmailData struct {
	Title    string
	Greeting string
	Intro    string
	Label    string
	Clock    string
	Outro    string
	AppName  string
	Year     int

	DashboardURL string
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 24px auto; background: #ffffff; border: 1px solid #e2e8f0; border-radius: 12px; overflow: hidden; }
    .header { background: #3b82f6; color: #ffffff; padding: 20px; text-align: center; }
    .content { padding: 30px; line-height: 1.6; color: #334155; }
    .time-box { background: #f8fafc; padding: 15px; border-radius: 8px; margin: 20px 0; text-align: center; border: 1px solid #e2e8f0; }
    .label { font-size: 24px; font-weight: bold; color: #1e293b; margin-bottom: 10px; }
    .clock { font-size: 18px; color: #64748b; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #94a3b8; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h2>{{.AppName}}</h2></div>
    <div class="content">
      {{if .Greeting}}<p>{{.Greeting}}</p>{{end}}
      <p>{{.Intro}}</p>
      {{if .Label}}
      <div class="time-box">
        <div class="label">{{.Label}}</div>
        <div class="clock">Scheduled at: {{.Clock}}</div>
      </div>
      {{end}}
      {{if .Outro}}<p>{{.Outro}}</p>{{end}}
      {{if .DashboardURL}}<p><a href="{{.DashboardURL}}">Open your dashboard</a></p>{{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}} - Your AI Health Assistant</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{if .Greeting}}{{.Greeting}}

{{end}}{{.Intro}}
{{if .Label}}
{{.Label}} at {{.Clock}}
{{end}}{{if .Outro}}
{{.Outro}}
{{end}}{{if .DashboardURL}}
Open your dashboard: {{.DashboardURL}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) appName() string {
	if s.cfg.AppName == "" {
		return "Apna Doctor"
	}
	return s.cfg.AppName
}

// dashboardURL links mails back to the web app; empty when APP_BASE_URL is unset.
func (s *smtpMailService) dashboardURL() string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.AppBaseURL), "/")
	if base == "" {
		return ""
	}
	return base + "/dashboard"
}

func (s *smtpMailService) deliver(to string, data EmailData) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	data.AppName = s.appName()
	data.Year = time.Now().Year()
	data.DashboardURL = s.dashboardURL()

	html, text, err := s.renderEmail(data)
	if err != nil {
		return err
	}
	return s.sendFn(to, data.Title, html, text)
}

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) mockSend(to, subject, _, textBody string) error {
	s.log.Info("mock email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(textBody)))
	return nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
