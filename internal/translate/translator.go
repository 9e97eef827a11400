package translate

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the translation provider could not be
// reached or did not answer in time. It is recoverable: callers are
// expected to fall back to the untranslated text.
var ErrUnavailable = errors.New("translation provider unavailable")

// Translator defines the boundary to the machine translation provider.
// sourceLang and targetLang are short ISO 639-1 codes (e.g. "de", "en").
// Implementations must enforce a bounded timeout of their own, even when
// the underlying provider does not.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
