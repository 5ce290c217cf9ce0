package matching

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Kind tells which variant an Input holds.
type Kind int

const (
	KindText Kind = iota
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRecord:
		return "record"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Record is the structured resume form accepted by the matcher.
type Record struct {
	RawText string `mapstructure:"raw_text"`
}

// Input is either plain resume text or a structured record carrying the text
// under raw_text.
type Input struct {
	kind   Kind
	text   string
	record map[string]any
}

// TextInput wraps plain resume text.
func TextInput(text string) Input {
	return Input{kind: KindText, text: text}
}

// RecordInput wraps a structured resume record.
func RecordInput(record map[string]any) Input {
	return Input{kind: KindRecord, record: record}
}

func (i Input) Kind() Kind {
	return i.kind
}

// Resolve returns the canonical text of the input. A record without raw_text
// resolves to empty text; a raw_text that is not a string is an error.
func (i Input) Resolve() (string, error) {
	if i.kind == KindText {
		return i.text, nil
	}

	var rec Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &rec,
		TagName: "mapstructure",
	})
	if err != nil {
		return "", err
	}
	if err := decoder.Decode(i.record); err != nil {
		return "", fmt.Errorf("decoding resume record: %w", err)
	}

	return rec.RawText, nil
}

// Text is Resolve with decode errors mapped to empty text.
func (i Input) Text() string {
	text, err := i.Resolve()
	if err != nil {
		return ""
	}
	return text
}
