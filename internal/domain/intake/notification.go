package intake

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// Routing is the operator side of a notification: where leads go and who
// they come from.
type Routing struct {
	To       string
	From     string
	FromName string
}

// Notification is one outbound email.
type Notification struct {
	From     string
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

const (
	acknowledgementSubject = "Recibimos tu solicitud en ANNiA"
	acknowledgementText    = "¡Gracias por tu interés! Recibimos tu solicitud y el equipo de ANNiA te contactará pronto con el overview y próximos pasos."
	acknowledgementHTML    = "<p>¡Gracias por tu interés!</p><p>Recibimos tu solicitud y el equipo de ANNiA te contactará pronto con el overview y próximos pasos.</p>"
)

// Submitted values are plain text; the strict policy strips any markup and
// escapes the rest before they are placed in the HTML body.
var htmlPolicy = bluemonday.StrictPolicy()

// OperatorNotification carries every submitted field to the operator inbox.
// Replies go straight to the submitter.
func OperatorNotification(s *Submission, r Routing) Notification {
	text := fmt.Sprintf("Nombre: %s\nCorreo: %s\nRol/Organización: %s\nInterés: %s",
		s.Name, s.Email, s.RoleOrganization, s.Interest)

	html := fmt.Sprintf(`
  <h2>Nueva solicitud rápida</h2>
  <p><strong>Nombre:</strong> %s</p>
  <p><strong>Correo:</strong> %s</p>
  <p><strong>Rol / Organización:</strong> %s</p>
  <p><strong>Interés:</strong> %s</p>
`,
		htmlPolicy.Sanitize(s.Name),
		htmlPolicy.Sanitize(s.Email),
		htmlPolicy.Sanitize(s.RoleOrganization),
		htmlPolicy.Sanitize(s.Interest))

	return Notification{
		From:     r.From,
		FromName: r.FromName,
		To:       r.To,
		ReplyTo:  s.Email,
		Subject:  "Nueva solicitud rápida: " + s.Name,
		Text:     text,
		HTML:     html,
	}
}

// Acknowledgement is the fixed confirmation sent back to the submitter. It
// echoes none of the submitted data.
func Acknowledgement(s *Submission, r Routing) Notification {
	return Notification{
		From:     r.From,
		FromName: r.FromName,
		To:       s.Email,
		Subject:  acknowledgementSubject,
		Text:     acknowledgementText,
		HTML:     acknowledgementHTML,
	}
}
