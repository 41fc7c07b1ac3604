package service

import "fmt"

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Find a book box near you, mark your visits and
share your finds with the community.

Get started: %s

Best,
The %s Team`, name, appURL, appName)

	return subject, body
}

func forgotPasswordEmailTemplate(name, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Use this link to choose a new one:
%s

The link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your
password won't be changed.

Best,
The %s Team`, name, resetURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account and all data associated with it have been deleted. Boxes
you registered, your favorites, visits and reviews are gone with it.

Sorry to see you go.

The %s Team`, name, appName)

	return subject, body
}
