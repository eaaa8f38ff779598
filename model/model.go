package model

import "time"

// Scenario labels the type of access-change request a message documents.
type Scenario string

const (
	ScenarioAdd    Scenario = "add"
	ScenarioRemove Scenario = "remove"
	ScenarioModify Scenario = "modify"
)

// Location names the part of a message that produced a matching identifier.
type Location string

const (
	LocationNone       Location = ""
	LocationSubject    Location = "Subject"
	LocationBody       Location = "Body"
	LocationAttachment Location = "Attachment"
)

// NoMatchEvidence is the fixed evidence marker for roster rows with no
// supporting message.
const NoMatchEvidence = "no message matched"

// AttachmentUnit is one attachment of a parsed message. Text is empty when
// extraction failed or the format was disallowed or oversized.
type AttachmentUnit struct {
	Filename string
	Text     string
}

// Message is a single parsed message from the archive. It is immutable once
// parsed and safe to share across concurrent resolutions.
type Message struct {
	File        string
	Subject     string
	Body        string
	Date        *time.Time
	Attachments []AttachmentUnit
}

// Resolution is the terminal decision for one roster row.
type Resolution struct {
	Matched     bool
	Location    Location
	Scenario    Scenario
	Evidence    string
	MessageFile string
}
