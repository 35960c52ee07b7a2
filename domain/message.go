// Package domain contains core concepts of the relay.
// This file defines the ChatMessage value and related rules.
// Messages are immutable: they are stamped once at intake and never
// mutated afterwards, so a later name change cannot rewrite history.
package domain

import "time"

// SystemName is the reserved sender name used for synthesized
// join/leave notices. It is not reachable through the handshake.
const SystemName = "SYSTEM"

// ChatMessage represents one immutable chat event.
//
// SenderID is the opaque connection identity (the remote socket
// address). It is only ever used as a broadcast-exclusion key and is
// never shown to users.
type ChatMessage struct {
	SenderID   string
	SenderName string
	SentAt     time.Time
	Body       string
}

// NewChatMessage stamps a freshly decoded body with the session's own
// identity, name and clock. The client never supplies these fields.
func NewChatMessage(senderID, senderName, body string) ChatMessage {
	return ChatMessage{
		SenderID:   senderID,
		SenderName: senderName,
		SentAt:     time.Now(),
		Body:       body,
	}
}

// NewSystemNotice builds a join/leave notice attributed to SystemName.
// The subject peer's identity is kept as SenderID so the peer the
// notice is about is excluded from its own announcement.
func NewSystemNotice(subjectID, body string) ChatMessage {
	return ChatMessage{
		SenderID:   subjectID,
		SenderName: SystemName,
		SentAt:     time.Now(),
		Body:       body,
	}
}

// IsSystem reports whether the message is a synthesized notice.
func (m ChatMessage) IsSystem() bool {
	return m.SenderName == SystemName
}
