package signup

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/talenthub/account-service/internal/domain"
)

// newValidator builds the validator used for step payloads: json tag names
// as field names and english translations so the UI gets readable messages.
func newValidator() (*validator.Validate, ut.Translator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, nil, errors.New("missing en translator")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, err
	}

	return v, trans, nil
}

// checkPayload validates a step payload and converts validator failures into
// a single field-keyed validation error. Nested fields keep their path
// ("address.city") so the UI can attach messages to the right input.
func checkPayload(v *validator.Validate, trans ut.Translator, payload any) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.ErrInternal(err)
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldPath(fe)] = fe.Translate(trans)
	}
	return domain.ErrInvalidFields(fields)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
