package audio

// Kind identifies the container format of an encoded artifact.
type Kind string

const (
	KindWAV Kind = "wav"
	KindMP3 Kind = "mp3"
)

// MIMEType returns the content type for the container format.
func (k Kind) MIMEType() string {
	switch k {
	case KindWAV:
		return "audio/wav"
	case KindMP3:
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// Artifact is an immutable encoded audio container produced by one of the
// encoders. Data is never modified after the encoder returns it.
type Artifact struct {
	Kind Kind
	Data []byte
}
