package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	vo "github.com/qreserve/qreserve/internal/domain/notification/valueobjects"
)

// TemplateData is what email templates can reference.
type TemplateData struct {
	*Message
	RecipientDisplayName string
	TicketURL            string
	ProductName          string
}

// RenderedEmail is a fully rendered email ready for the SMTP sender.
type RenderedEmail struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailTemplate renders one notification kind. Subject and text body use
// text/template; the HTML body uses html/template so user input is escaped.
type EmailTemplate struct {
	kind    vo.Kind
	subject *template.Template
	text    *template.Template
	html    *htmltemplate.Template
}

func NewEmailTemplate(kind vo.Kind, subject, text, html string) (*EmailTemplate, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid notification kind: %s", kind)
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject template is required")
	}

	subjectTmpl, err := template.New(kind.String() + ".subject").Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject template: %w", err)
	}
	textTmpl, err := template.New(kind.String() + ".text").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	htmlTmpl, err := htmltemplate.New(kind.String() + ".html").Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template: %w", err)
	}

	return &EmailTemplate{kind: kind, subject: subjectTmpl, text: textTmpl, html: htmlTmpl}, nil
}

func (t *EmailTemplate) Kind() vo.Kind {
	return t.kind
}

func (t *EmailTemplate) Render(data TemplateData) (*RenderedEmail, error) {
	if data.Message == nil {
		return nil, fmt.Errorf("message is required")
	}
	if data.Kind != t.kind {
		return nil, fmt.Errorf("template %s cannot render %s message", t.kind, data.Kind)
	}

	var subject, text, html bytes.Buffer
	if err := t.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}
	if err := t.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := t.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}

	return &RenderedEmail{
		To:       data.RecipientEmail,
		Subject:  strings.TrimSpace(subject.String()),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

const (
	ticketCreatedText = `Hello {{.RecipientDisplayName}},

Your ticket has been created successfully.

Ticket ID: #{{.TicketID}}
Subject: {{.TicketSubject}}

You can view your ticket at: {{.TicketURL}}

Thank you for using {{.ProductName}}!
`
	ticketCreatedHTML = `<html>
  <body>
    <h2>New Ticket Created</h2>
    <p>Hello {{.RecipientDisplayName}},</p>
    <p>Your ticket has been created successfully.</p>
    <p><strong>Ticket ID:</strong> #{{.TicketID}}</p>
    <p><strong>Subject:</strong> {{.TicketSubject}}</p>
    <p>You can view your ticket at: <a href="{{.TicketURL}}">{{.TicketURL}}</a></p>
    <br>
    <p>Thank you for using {{.ProductName}}!</p>
  </body>
</html>
`
	statusChangedText = `Your ticket status has been updated.

Ticket ID: #{{.TicketID}}
Subject: {{.TicketSubject}}
New Status: {{.Status}}

You can view your ticket at: {{.TicketURL}}

Thank you for using {{.ProductName}}!
`
	statusChangedHTML = `<html>
  <body>
    <h2>Ticket Status Updated</h2>
    <p>Your ticket status has been updated.</p>
    <p><strong>Ticket ID:</strong> #{{.TicketID}}</p>
    <p><strong>Subject:</strong> {{.TicketSubject}}</p>
    <p><strong>New Status:</strong> {{.Status}}</p>
    <p>You can view your ticket at: <a href="{{.TicketURL}}">{{.TicketURL}}</a></p>
    <br>
    <p>Thank you for using {{.ProductName}}!</p>
  </body>
</html>
`
	commentCreatedText = `Someone has commented on your ticket.

Ticket ID: #{{.TicketID}}
Subject: {{.TicketSubject}}
Commenter: {{.CommenterName}}

You can view the comment at: {{.TicketURL}}

Thank you for using {{.ProductName}}!
`
	commentCreatedHTML = `<html>
  <body>
    <h2>New Comment on Your Ticket</h2>
    <p>Someone has commented on your ticket.</p>
    <p><strong>Ticket ID:</strong> #{{.TicketID}}</p>
    <p><strong>Subject:</strong> {{.TicketSubject}}</p>
    <p><strong>Commenter:</strong> {{.CommenterName}}</p>
    <p>You can view the comment at: <a href="{{.TicketURL}}">{{.TicketURL}}</a></p>
    <br>
    <p>Thank you for using {{.ProductName}}!</p>
  </body>
</html>
`
)

// DefaultTemplates returns the built-in templates for every kind.
func DefaultTemplates() (map[vo.Kind]*EmailTemplate, error) {
	defs := []struct {
		kind          vo.Kind
		subject, text string
		html          string
	}{
		{vo.KindTicketCreated, "Ticket #{{.TicketID}} Created - {{.TicketSubject}}", ticketCreatedText, ticketCreatedHTML},
		{vo.KindTicketStatusChanged, "Ticket #{{.TicketID}} Status Updated - {{.TicketSubject}}", statusChangedText, statusChangedHTML},
		{vo.KindCommentCreated, "New Comment on Ticket #{{.TicketID}} - {{.TicketSubject}}", commentCreatedText, commentCreatedHTML},
	}

	templates := make(map[vo.Kind]*EmailTemplate, len(defs))
	for _, d := range defs {
		t, err := NewEmailTemplate(d.kind, d.subject, d.text, d.html)
		if err != nil {
			return nil, err
		}
		templates[d.kind] = t
	}
	return templates, nil
}
