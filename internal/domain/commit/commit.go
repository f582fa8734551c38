package commit

import (
	"strings"
	"time"
)

const shortSHALength = 8

type Commit struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	AuthorDate  time.Time
	Subject     string
	Body        string
}

func (c Commit) ShortSHA() string {
	if len(c.SHA) <= shortSHALength {
		return c.SHA
	}
	return c.SHA[:shortSHALength]
}

// Message returns the subject and body joined the way git stores them.
func (c Commit) Message() string {
	body := strings.TrimSpace(c.Body)
	if body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + body
}
