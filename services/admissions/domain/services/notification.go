// Package services contains stateless domain services for the admissions bounded context.
// They compose staff notification content from an Application and have no
// external dependencies beyond stdlib and the domain layer.
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/magmaminds/admissions/services/admissions/domain/models"
)

// SubmittedAtLayout renders timestamps the way the en-IN locale does,
// e.g. "15/10/2026, 2:04:05 pm".
const SubmittedAtLayout = "2/1/2006, 3:04:05 pm"

// EmailContent is the staff email for one application, minus addressing.
type EmailContent struct {
	Subject string
	HTML    string
	Text    string
}

var emailHTML = template.Must(template.New("application").Parse(`
<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <h2 style="color: #58aecb;">New Application Received</h2>
  <p>You have a new course application from <strong>{{.Name}}</strong>.</p>
  <hr style="border: 0; border-top: 1px solid #eee;">
  <h3>Applicant Details:</h3>
  <ul style="list-style-type: none; padding: 0;">
    <li><strong>Name:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></li>
    <li><strong>Phone:</strong> {{.Phone}}</li>
    <li><strong>Selected Course:</strong> {{.Course}}</li>
  </ul>
  <br>
  <p style="font-size: 0.9em; color: #777;">
    This is an automated notification. You can review the full application in your dashboard.
  </p>
</div>
`))

// ComposeEmail builds the staff email. Applicant values are HTML-escaped in
// the HTML part and copied verbatim into the plain-text part.
func ComposeEmail(a *models.Application) (EmailContent, error) {
	var buf bytes.Buffer
	if err := emailHTML.Execute(&buf, a); err != nil {
		return EmailContent{}, fmt.Errorf("render email html: %w", err)
	}

	return EmailContent{
		Subject: fmt.Sprintf("New Application: %s - %s", a.Name, a.Course),
		HTML:    buf.String(),
		Text: fmt.Sprintf(
			"New application received from %s for the %s course. Details: Name: %s, Email: %s, Phone: %s, Course: %s.",
			a.Name, a.Course, a.Name, a.Email, a.Phone, a.Course,
		),
	}, nil
}

// ComposeWhatsApp builds the staff WhatsApp message body, stamping it with
// at rendered in loc.
func ComposeWhatsApp(a *models.Application, at time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf(`📩 *New Application Received!*

👤 *Name:* %s
📧 *Email:* %s
📱 *Phone:* %s
📚 *Course:* %s

🕒 Submitted on: %s`,
		a.Name, a.Email, a.Phone, a.Course, at.In(loc).Format(SubmittedAtLayout))
}
