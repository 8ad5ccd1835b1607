// Package mail is the outbound notification boundary. The reset workflow
// treats delivery as best-effort: failures are logged by the caller and never
// roll back persisted state.
package mail

import (
	"context"
	"fmt"
)

// Mailer delivers a single HTML notification.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, html string) error
}

// ResetEmail renders the password-reset notification body around the
// redemption link.
func ResetEmail(link string) string {
	return nice(fmt.Sprintf(
		`Your password reset token is here!
		<br/><br/>
		<a href=%q>Click here to reset your password</a>`, link))
}

func nice(text string) string {
	return fmt.Sprintf(`
	<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
		<h2>Hello there,</h2>
		<p>%s</p>
		<p>😘, Stitchmart</p>
	</div>`, text)
}
