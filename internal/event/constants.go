package event

// EventSchemaVersion is the version stamped onto every published event
const EventSchemaVersion = "1.0"

// Log messages
const (
	LogMsgHandlerFailed   = "Event handler returned error"
	LogMsgHandlerPanicked = "Event handler panicked"
)
