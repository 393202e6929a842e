// Package events defines the topics and payload types published on the
// process-local event bus.
package events

import (
	"fmt"
	"time"
)

const (
	uploadTopic = "event.upload"
	keyTopic    = "event.key"
)

func TopicUpload(origin string) string {
	return fmt.Sprintf("%s:%s", uploadTopic, origin)
}

func TopicKey(origin string) string {
	return fmt.Sprintf("%s:%s", keyTopic, origin)
}

// UploadRecorded is published after an upload is written to the history
// store.
type UploadRecorded struct {
	Ident    string
	Checksum string
	Location string
	At       time.Time
}

// KeyCached is published when a public key revision lands in the local key
// cache.
type KeyCached struct {
	Origin   string
	Revision string
	Path     string
}
