package lesson

import (
	"encoding/json"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WidgetKind discriminates the stored widget payload. The set is
// closed; anything else fails to decode.
type WidgetKind = string

const (
	KindTitle       WidgetKind = "title"
	KindText        WidgetKind = "text"
	KindTable       WidgetKind = "table"
	KindTranslation WidgetKind = "translation"
)

var ErrUnknownWidgetKind = errors.New("unknown widget kind", errors.CategoryValidation).
	WithTextCode("UNKNOWN_WIDGET_KIND").
	WithCode(errors.CodeBadRequest)

var ErrMalformedWidget = errors.New("malformed widget payload", errors.CategoryValidation).
	WithTextCode("MALFORMED_WIDGET").
	WithCode(errors.CodeBadRequest)

// Widget is one ordered block of lesson content. The payload is stored
// as JSON and interpreted through Kind.
type Widget struct {
	bun.BaseModel `bun:"table:lesson_widgets,alias:lwg"`

	ID       uuid.UUID       `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	LessonID uuid.UUID       `bun:"lesson_id,notnull,type:uuid" json:"lesson_id,omitempty"`
	Position int             `bun:"position,notnull" json:"position"`
	Kind     WidgetKind      `bun:"kind,notnull" json:"kind,omitempty"`
	Payload  json.RawMessage `bun:"payload,type:jsonb" json:"payload,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// TitleContent is a section heading.
type TitleContent struct {
	Text string `json:"text"`
}

// TextContent is a free-form paragraph.
type TextContent struct {
	Text      string `json:"text"`
	Alignment string `json:"alignment,omitempty"`
}

// TableContent is a grid of cells, optionally with a header row.
type TableContent struct {
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows"`
}

// TranslationContent pairs a source phrase with its translation.
type TranslationContent struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

// Decode interprets the payload according to Kind and returns one of
// the *Content types above.
func (w *Widget) Decode() (any, error) {
	switch w.Kind {
	case KindTitle:
		return decodePayload[TitleContent](w.Payload)
	case KindText:
		return decodePayload[TextContent](w.Payload)
	case KindTable:
		return decodePayload[TableContent](w.Payload)
	case KindTranslation:
		return decodePayload[TranslationContent](w.Payload)
	default:
		clone := ErrUnknownWidgetKind.Clone()
		clone.Source = ErrUnknownWidgetKind
		return nil, clone.WithMetadata(map[string]any{
			"kind": w.Kind,
		})
	}
}

func decodePayload[T any](raw json.RawMessage) (*T, error) {
	content := new(T)
	if err := json.Unmarshal(raw, content); err != nil {
		return nil, ErrMalformedWidget
	}
	return content, nil
}

// Encode builds a widget from one of the *Content types.
func Encode(position int, content any) (*Widget, error) {
	var kind WidgetKind
	switch content.(type) {
	case *TitleContent, TitleContent:
		kind = KindTitle
	case *TextContent, TextContent:
		kind = KindText
	case *TableContent, TableContent:
		kind = KindTable
	case *TranslationContent, TranslationContent:
		kind = KindTranslation
	default:
		return nil, ErrUnknownWidgetKind
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, ErrMalformedWidget
	}

	return &Widget{
		ID:       uuid.New(),
		Position: position,
		Kind:     kind,
		Payload:  payload,
	}, nil
}
