package loginsvc

import "github.com/mkrupp/homecase-sessiongate/internal/domain"

// RejectedNotice is shown when the authenticator refuses the credentials.
func RejectedNotice() domain.Notice {
	return domain.Notice{
		Kind:    domain.NoticeRejected,
		Title:   "Login failed",
		Message: "Invalid username or password. Please try again.",
		Actions: []domain.NoticeAction{
			{Text: "Cancel", Cancel: true},
			{Text: "Try again"},
		},
	}
}

// ConnectionNotice is shown when the authenticator cannot be reached.
func ConnectionNotice() domain.Notice {
	return domain.Notice{
		Kind:    domain.NoticeConnection,
		Title:   "Connection problem",
		Message: "We couldn't reach the server. Check your internet and try again.",
		Actions: []domain.NoticeAction{{Text: "OK"}},
	}
}

// SignInIncompleteNotice is shown when accepted credentials could not be
// turned into a stored session.
func SignInIncompleteNotice() domain.Notice {
	return domain.Notice{
		Kind:    domain.NoticeSignInIncomplete,
		Title:   "Sign-in incomplete",
		Message: "We could not complete sign-in on this device. Please try again.",
		Actions: []domain.NoticeAction{{Text: "OK"}},
	}
}
