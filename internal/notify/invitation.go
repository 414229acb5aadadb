package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// AcceptURL builds the link an invitee follows to accept an invitation.
func AcceptURL(appURL, email, token string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return strings.TrimRight(appURL, "/") + "/users/invitations/accept?" + q.Encode()
}

// InvitationMessage is the mail sent to a newly invited user. token is the
// plaintext token; it is only available at issue time.
func InvitationMessage(appURL, email, token string) Message {
	return Message{
		To:      email,
		Subject: "You have been invited to Artwork",
		Body: fmt.Sprintf(
			"Hello,\n\nyou have been invited to join Artwork.\n\nFollow this link to set up your account:\n%s\n\nIf you did not expect this invitation you can ignore this email.\n",
			AcceptURL(appURL, email, token),
		),
	}
}
