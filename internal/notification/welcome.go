package notification

import (
	"bytes"
	"html/template"
)

const WelcomeSubject = "Welcome to Employee Management System"

type WelcomeData struct {
	Name     string
	Email    string
	Password string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>Your account on the Employee Management System has been created.</p>
    <p>You can sign in with the credentials below:</p>
    <table cellpadding="6">
      <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
      <tr><td><strong>Password</strong></td><td>{{.Password}}</td></tr>
    </table>
    <p>Please change your password after your first login.</p>
  </body>
</html>`))

// RenderWelcome builds the HTML body sent after onboarding step 1.
func RenderWelcome(data WelcomeData) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
