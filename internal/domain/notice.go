package domain

// NoticeKind classifies a blocking, dismissible notice shown to the user.
type NoticeKind string

const (
	// NoticeRejected tells the user the credentials were refused.
	NoticeRejected NoticeKind = "rejected"
	// NoticeConnection tells the user the authenticator could not be reached.
	NoticeConnection NoticeKind = "connection"
	// NoticeSignInIncomplete tells the user the session could not be stored locally.
	NoticeSignInIncomplete NoticeKind = "sign_in_incomplete"
)

// NoticeAction is a button offered by a notice.
type NoticeAction struct {
	Text   string `json:"text"`
	Cancel bool   `json:"cancel,omitempty"` // Dismisses without further action
}

// Notice is a blocking, dismissible message presented by the host application.
type Notice struct {
	Kind    NoticeKind     `json:"kind"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Actions []NoticeAction `json:"actions"`
}
