package views

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// NoticeKind says how a status message is presented
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a status message shown above a screen
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notice lifetimes. Errors raised inside a modal are not notices; they stay
// in the modal until it is closed.
const (
	SuccessNoticeTTL = 3 * time.Second
	ErrorNoticeTTL   = 5 * time.Second
)

// Notices keeps the current status message per screen key and drops it once
// its lifetime is over
type Notices struct {
	cache *cache.Cache
}

// NewNotices creates an empty notice board
func NewNotices() *Notices {
	return &Notices{cache: cache.New(SuccessNoticeTTL, 0)}
}

// Success posts a success message for key
func (n *Notices) Success(key, text string) {
	n.cache.Set(key, Notice{Kind: NoticeSuccess, Text: text}, SuccessNoticeTTL)
}

// Error posts an error message for key
func (n *Notices) Error(key, text string) {
	n.cache.Set(key, Notice{Kind: NoticeError, Text: text}, ErrorNoticeTTL)
}

// Current returns the live message for key
func (n *Notices) Current(key string) (Notice, bool) {
	v, ok := n.cache.Get(key)
	if !ok {
		return Notice{}, false
	}
	return v.(Notice), true
}

// Dismiss removes the message for key
func (n *Notices) Dismiss(key string) {
	n.cache.Delete(key)
}
