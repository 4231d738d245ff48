package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// RegistrationSubject тема письма-подтверждения
const RegistrationSubject = "Registration Confirmed - Welcome to Invento! 🎉"

// RegistrationData данные для шаблона подтверждения регистрации
type RegistrationData struct {
	MemberName  string
	TeamName    string
	CollegeName string
	Role        string
}

var registrationTemplate = template.Must(template.New("registration").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Registration Confirmation - Invento</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 32px;">INVENTO</h1>
                            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 16px;">Innovation &amp; Technology Festival</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px 40px;">
                            <h2 style="color: #333333; font-size: 24px; text-align: center;">Registration Successful!</h2>
                            <p style="color: #666666; font-size: 16px;">Dear <strong>{{.MemberName}}</strong>,</p>
                            <p style="color: #666666; font-size: 16px;">
                                Congratulations! You have been successfully registered for <strong>Invento</strong>
                                as the <strong>{{.Role}}</strong> of team <strong>"{{.TeamName}}"</strong>.
                            </p>
                            <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f8f9fa; border-radius: 6px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <h3 style="margin: 0 0 15px 0; color: #333333; font-size: 18px;">Team Details</h3>
                                        <p style="margin: 8px 0; color: #666666; font-size: 14px;"><strong>Team Name:</strong> {{.TeamName}}</p>
                                        {{- if .CollegeName}}
                                        <p style="margin: 8px 0; color: #666666; font-size: 14px;"><strong>College:</strong> {{.CollegeName}}</p>
                                        {{- end}}
                                        <p style="margin: 8px 0; color: #666666; font-size: 14px;"><strong>Your Role:</strong> {{.Role}}</p>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #666666; font-size: 16px;">
                                Get ready to showcase your innovation and creativity! Further details about the event schedule,
                                rules, and guidelines will be shared with you soon.
                            </p>
                            <p style="color: #856404; font-size: 14px;">
                                <strong>Important:</strong> Please keep this email for your records. You may be required to present
                                this confirmation during the event.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8f9fa; padding: 30px; text-align: center;">
                            <p style="margin: 0 0 10px 0; color: #666666; font-size: 14px;">Best regards,<br><strong>Team Invento</strong></p>
                            <p style="margin: 15px 0 0 0; color: #999999; font-size: 12px;">This is an automated email. Please do not reply to this message.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`))

// RenderRegistration рендерит HTML письма-подтверждения
func RenderRegistration(data RegistrationData) (string, error) {
	var buf bytes.Buffer
	if err := registrationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render registration email: %w", err)
	}
	return buf.String(), nil
}
