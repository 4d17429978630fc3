package figtext

// Message types exchanged between the host UI and the extractor.
const (
	MessageExtractText   = "extract-text"
	MessageClose         = "close"
	MessageExtractedText = "extracted-text"
	MessageCopyText      = "copy-text"
	MessageError         = "error"
)

// User-facing error messages. Internal error details are logged, never sent.
const (
	MsgNoMatchingFrame  = "No matching frame found."
	MsgNoMatchingFrames = "No matching frames found."
	MsgExtractionFailed = "An error occurred during text extraction. Please check the logs for details."
	MsgUnknownMessage   = "Unsupported message type."
	MsgMalformedMessage = "Malformed message."
	MsgNoDocumentLoaded = "No document is loaded."
)

// Request is a tagged message sent by the host.
//
// An extract-text request with FrameNames selects named-target mode;
// without FrameNames it selects whole-page mode.
type Request struct {
	Type string `json:"type"`

	// Named-target mode.
	FrameNames             []string `json:"frameNames,omitempty"`
	SkipComponentInstances []string `json:"skipComponentInstances,omitempty"`

	// Whole-page mode.
	ExcludedComponents []string `json:"excludedComponents,omitempty"`
	ExcludedSections   []string `json:"excludedSections,omitempty"`

	// Page selects a page by name; empty means the first page.
	Page string `json:"page,omitempty"`
}

// IsWholePage reports whether the request selects whole-page mode.
func (r Request) IsWholePage() bool {
	return len(r.FrameNames) == 0
}

// Validate returns an error if the request is not well formed.
func (r Request) Validate() error {
	switch r.Type {
	case MessageExtractText, MessageClose:
		return nil
	case "":
		return Errorf(EINVALID, "message type required")
	}
	return Errorf(EINVALID, "unsupported message type %q", r.Type)
}

// Response is a tagged message sent back to the host.
type Response struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse returns an error response with a user-facing message.
func ErrorResponse(message string) Response {
	return Response{Type: MessageError, Message: message}
}

// NotFoundMessage returns the user-facing message for a failed lookup of
// the given number of target names.
func NotFoundMessage(n int) string {
	if n > 1 {
		return MsgNoMatchingFrames
	}
	return MsgNoMatchingFrame
}
