package models

import "sort"

// DirectMessage is one message inside a conversation. CreatedAt is the
// export's ISO-8601 timestamp, which sorts chronologically as a string.
type DirectMessage struct {
	ID          string `json:"id"`
	SenderID    string `json:"senderId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
	Text        string `json:"text,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ParticipantsEvent records users joining or leaving a group conversation.
type ParticipantsEvent struct {
	Initiator string   `json:"initiatingUserId,omitempty"`
	UserIDs   []string `json:"userIds,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// DMEvent is one entry of a conversation's event sequence. Exactly one of
// the member pointers is set.
type DMEvent struct {
	MessageCreate        *DirectMessage     `json:"messageCreate,omitempty"`
	WelcomeMessageCreate *DirectMessage     `json:"welcomeMessageCreate,omitempty"`
	ParticipantsJoin     *ParticipantsEvent `json:"participantsJoin,omitempty"`
	ParticipantsLeave    *ParticipantsEvent `json:"participantsLeave,omitempty"`
}

// Key identifies an event for de-duplication. Message events key on the
// message id; participant events have no id and key on kind plus timestamp.
func (e DMEvent) Key() string {
	switch {
	case e.MessageCreate != nil:
		return "m:" + e.MessageCreate.ID
	case e.WelcomeMessageCreate != nil:
		return "w:" + e.WelcomeMessageCreate.ID
	case e.ParticipantsJoin != nil:
		return "j:" + e.ParticipantsJoin.CreatedAt
	case e.ParticipantsLeave != nil:
		return "l:" + e.ParticipantsLeave.CreatedAt
	}
	return ""
}

// Timestamp returns the event's creation time string.
func (e DMEvent) Timestamp() string {
	switch {
	case e.MessageCreate != nil:
		return e.MessageCreate.CreatedAt
	case e.WelcomeMessageCreate != nil:
		return e.WelcomeMessageCreate.CreatedAt
	case e.ParticipantsJoin != nil:
		return e.ParticipantsJoin.CreatedAt
	case e.ParticipantsLeave != nil:
		return e.ParticipantsLeave.CreatedAt
	}
	return ""
}

// Conversation is the archive-side message store entry. Messages and Events
// may overlap: a message can appear both directly and as a messageCreate
// event, depending on how the export was parsed.
type Conversation struct {
	ID       string          `json:"conversationId"`
	Messages []DirectMessage `json:"messages,omitempty"`
	Events   []DMEvent       `json:"events,omitempty"`
}

// ConversationBundle is the normalized save-side shape of one conversation.
type ConversationBundle struct {
	ConversationID string    `json:"conversationId"`
	Messages       []DMEvent `json:"messages"`
}

// DMFile is the layout of a GDPR conversation-file document (dm.json).
type DMFile []ConversationBundle

// Flatten merges the conversation's direct messages and auxiliary events
// into a single de-duplicated event sequence in chronological order.
func (c *Conversation) Flatten() ConversationBundle {
	events := make([]DMEvent, 0, len(c.Messages)+len(c.Events))
	for i := range c.Messages {
		msg := c.Messages[i]
		events = append(events, DMEvent{MessageCreate: &msg})
	}
	events = append(events, c.Events...)

	seen := make(map[string]struct{}, len(events))
	merged := events[:0]
	for _, ev := range events {
		key := ev.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, ev)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].Timestamp(), merged[j].Timestamp()
		if ti != tj {
			return ti < tj
		}
		return merged[i].Key() < merged[j].Key()
	})

	return ConversationBundle{ConversationID: c.ID, Messages: merged}
}
