package logging

import "time"

// Message is the event payload for a log record.
type Message struct {
	Time       time.Time
	Level      string
	Message    string `json:"msg"`
	Attributes []Attr

	// Serial uniquely identifies the message within the scope of the logger
	// it was emitted from. The higher the serial the newer the message.
	Serial uint
}

type Attr struct {
	Key   string
	Value string
}

// BySerialDesc sorts log messages newest first.
func BySerialDesc(i, j Message) int {
	switch {
	case i.Serial < j.Serial:
		return 1
	case i.Serial > j.Serial:
		return -1
	default:
		return 0
	}
}
