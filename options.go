package charsniff

import (
	"sync"

	perr "charsniff/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Options control one detection call. The zero value is rejected; start
// from DefaultOptions and adjust
type Options struct {
	// Steps is how many sample windows a large input contributes
	Steps int `validate:"gt=0"`

	// ChunkSize is the byte width of one sample window
	ChunkSize int `validate:"gt=0"`

	// Threshold is the highest mess ratio still accepted
	Threshold float64 `validate:"gte=0,lte=1"`

	// DisableLanguageDetection skips coherence scoring of accepted matches
	DisableLanguageDetection bool

	// IgnoreBOM disables the signature short-circuit and forces candidate
	// trials even on marked input
	IgnoreBOM bool

	// IsolateTo restricts trials to exactly these encodings, by canonical
	// name or alias. Unknown names are logged and skipped
	IsolateTo []string

	// Exclude removes encodings from whichever candidate set applies
	Exclude []string

	// Explain emits a debug log line for every trial of this call
	Explain bool
}

// DefaultOptions returns the documented defaults: 5 windows of 512 bytes,
// mess threshold 0.20, language detection on, BOM honored
func DefaultOptions() Options {
	return Options{
		Steps:     5,
		ChunkSize: 512,
		Threshold: 0.20,
	}
}

// validatorSvc holds a singleton validator and translator
type validatorSvc struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func validatorSingleton() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &validatorSvc{validate: v, trans: trans}
	})
	return vSvc
}

// Validate rejects configurations the engine refuses to run with.
// The returned error carries the first offending field and a readable
// message
func (o Options) Validate() error {
	svc := validatorSingleton()
	err := svc.validate.Struct(o)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(
			perr.Validationf("invalid options: %s", fe.Translate(svc.trans)),
			fe.Field(),
		)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "invalid options")
}
