package editor

import (
	"catalog-admin/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultPreview is shown in place of the product image until an upload
// succeeds.
const DefaultPreview = "assets/upload-photo-here.png"

// SuccessNotice is set after a product has been submitted.
const SuccessNotice = "Product added successfully!"

// Session is a single add-product flow. It owns its form state and the
// uploaded image reference; nothing is shared between sessions.
type Session struct {
	id     uuid.UUID
	form   Form
	image  string
	err    error
	notice string
	logger zerolog.Logger
}

// NewSession starts an empty add-product flow.
func NewSession(logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		logger: logger.With().Str("component", "editor").Str("editor_session", id.String()).Logger(),
	}
}

// ID identifies the flow in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Form returns a copy of the current form state.
func (s *Session) Form() Form { return s.form }

func (s *Session) SetTitle(v string)       { s.form.Title = v; s.touch() }
func (s *Session) SetPrice(v string)       { s.form.Price = v; s.touch() }
func (s *Session) SetCategory(v string)    { s.form.Category = v; s.touch() }
func (s *Session) SetDescription(v string) { s.form.Description = v; s.touch() }
func (s *Session) SetRate(v string)        { s.form.Rate = v; s.touch() }
func (s *Session) SetCount(v string)       { s.form.Count = v; s.touch() }

// SetImage records the location of an uploaded image.
func (s *Session) SetImage(ref string) {
	s.image = ref
	s.touch()
}

// ClearImage drops the image reference, reverting the preview to the
// placeholder.
func (s *Session) ClearImage() {
	s.image = ""
}

// Image returns the uploaded image reference, or "" when none.
func (s *Session) Image() string { return s.image }

// Preview returns the image to display for the form.
func (s *Session) Preview() string {
	if s.image == "" {
		return DefaultPreview
	}
	return s.image
}

// Err returns the validation error of the last submit, if any.
func (s *Session) Err() error { return s.err }

// Message returns the single line shown under the form: the current error,
// the success notice, or "".
func (s *Session) Message() string {
	if s.err != nil {
		return s.err.Error()
	}
	return s.notice
}

// Submit validates the form. On failure the form is kept as typed and the
// error is retained. On success the form and image are reset.
func (s *Session) Submit() (model.Product, error) {
	p, err := Validate(s.form, s.image)
	if err != nil {
		s.err = err
		s.notice = ""
		s.logger.Debug().Err(err).Msg("product form rejected")
		return model.Product{}, err
	}

	s.form = Form{}
	s.image = ""
	s.err = nil
	s.notice = SuccessNotice
	s.logger.Debug().Str("title", p.Title).Msg("product form accepted")

	return p, nil
}

func (s *Session) touch() {
	s.err = nil
	s.notice = ""
}
