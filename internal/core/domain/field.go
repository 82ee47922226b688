package domain

import (
	"fmt"
	"time"
)

// Kind tags the variant a Field holds.
type Kind int

const (
	KindName Kind = iota
	KindPhone
	KindBirthday
)

// BirthdayLayout is the only accepted birthday format (YYYY-MM-DD).
const BirthdayLayout = "2006-01-02"

const phoneLength = 10

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindBirthday:
		return "birthday"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// validators maps each kind to the rule applied on every write. Names accept anything.
var validators = map[Kind]func(string) error{
	KindPhone:    validatePhone,
	KindBirthday: validateBirthday,
}

// Field is a single validated scalar attribute of a contact.
// The zero value is an empty name.
type Field struct {
	kind  Kind
	value string
}

func newField(kind Kind, value string) (Field, error) {
	f := Field{kind: kind}
	if err := f.SetValue(value); err != nil {
		return Field{}, err
	}

	return f, nil
}

// NewName never fails.
func NewName(value string) Field {
	return Field{kind: KindName, value: value}
}

func NewPhone(value string) (Field, error) {
	return newField(KindPhone, value)
}

func NewBirthday(value string) (Field, error) {
	return newField(KindBirthday, value)
}

func (f Field) Kind() Kind {
	return f.kind
}

func (f Field) Value() string {
	return f.value
}

// SetValue validates value against the field's kind and only stores it if it passes.
func (f *Field) SetValue(value string) error {
	if validate, ok := validators[f.kind]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	f.value = value
	return nil
}

func (f Field) String() string {
	return f.value
}

// Date parses a birthday field. It fails for any other kind.
func (f Field) Date() (time.Time, error) {
	if f.kind != KindBirthday {
		return time.Time{}, fmt.Errorf("%w: %s field has no date", ErrValidation, f.kind)
	}

	return time.Parse(BirthdayLayout, f.value)
}

func validatePhone(value string) error {
	if len(value) != phoneLength {
		return fmt.Errorf("%w: phone %q must be exactly %d digits", ErrValidation, value, phoneLength)
	}

	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return fmt.Errorf("%w: phone %q must contain digits only", ErrValidation, value)
		}
	}

	return nil
}

func validateBirthday(value string) error {
	parsed, err := time.Parse(BirthdayLayout, value)

	// the round trip rejects anything time.Parse tolerates that the layout does not spell out
	if err != nil || parsed.Format(BirthdayLayout) != value {
		return fmt.Errorf("%w: birthday %q must use the YYYY-MM-DD format", ErrValidation, value)
	}

	return nil
}
