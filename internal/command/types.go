package command

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// TypeTag is the closed set of semantic field types. It governs both token
// sanitization (internal/sanitize) and result formatting (internal/out).
type TypeTag int

const (
	PlainText TypeTag = iota
	NumberList
	StringList
	BigInteger
	Timestamp
	FileReference
)

// Wire literals used by on-disk definition records.
const (
	tagString     = "string"
	tagNumberList = "Array<number>"
	tagStringList = "Array<string>"
	tagBigInt     = "BN"
	tagDate       = "Date"
	tagJSONFile   = "JsonFile"
)

func (t TypeTag) String() string {
	switch t {
	case PlainText:
		return tagString
	case NumberList:
		return tagNumberList
	case StringList:
		return tagStringList
	case BigInteger:
		return tagBigInt
	case Timestamp:
		return tagDate
	case FileReference:
		return tagJSONFile
	default:
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
}

// TagPtr is a convenience for declaring a definition's output type inline.
func TagPtr(t TypeTag) *TypeTag { return &t }

// ParseTypeTag maps a wire literal to its TypeTag.
func ParseTypeTag(v string) (TypeTag, error) {
	switch v {
	case tagString:
		return PlainText, nil
	case tagNumberList:
		return NumberList, nil
	case tagStringList:
		return StringList, nil
	case tagBigInt:
		return BigInteger, nil
	case tagDate:
		return Timestamp, nil
	case tagJSONFile:
		return FileReference, nil
	default:
		return PlainText, fmt.Errorf("unknown type tag %q", v)
	}
}

// FieldSpec describes one command parameter. Immutable after construction.
// A hidden field is always optional: hidden fields are populated implicitly
// and never typed by the user.
type FieldSpec struct {
	Name        string
	Description string
	Type        TypeTag
	Required    bool
	Hidden      bool
}

// Definition is the static description of one command: its context, name,
// ordered fields and optional declared output type. Built once at startup and
// never mutated.
type Definition struct {
	Context     string
	Name        string
	Description string
	OutputType  *TypeTag
	Fields      []FieldSpec

	// UsesImplicitCredential is derived at construction: true iff the field
	// list contains fields literally named "username" and "password". Both
	// are then forced hidden and optional.
	UsesImplicitCredential bool
}

const (
	credentialUserField = "username"
	credentialPassField = "password"
)

// NewDefinition builds a Definition, deriving the implicit-credential flag
// and forcing the username/password fields hidden+optional when both are
// present. The invariant is enforced here once and never re-checked.
func NewDefinition(context, name, description string, outputType *TypeTag, fields []FieldSpec) Definition {
	hasUser, hasPass := false, false
	for _, f := range fields {
		switch f.Name {
		case credentialUserField:
			hasUser = true
		case credentialPassField:
			hasPass = true
		}
	}
	implicit := hasUser && hasPass

	owned := make([]FieldSpec, len(fields))
	copy(owned, fields)
	for i := range owned {
		if implicit && (owned[i].Name == credentialUserField || owned[i].Name == credentialPassField) {
			owned[i].Hidden = true
			owned[i].Required = false
		}
		if owned[i].Hidden {
			owned[i].Required = false
		}
	}

	return Definition{
		Context:                context,
		Name:                   name,
		Description:            description,
		OutputType:             outputType,
		Fields:                 owned,
		UsesImplicitCredential: implicit,
	}
}

// RequiredFieldCount is the number of raw tokens the user must supply.
func (d Definition) RequiredFieldCount() int {
	n := 0
	for _, f := range d.Fields {
		if f.Required {
			n++
		}
	}
	return n
}

// Usage renders the single-line invocation form plus one line per visible
// field, e.g. "avm send amount assetID to [memo]".
func (d Definition) Usage() string {
	var b strings.Builder
	b.WriteString(d.Context)
	b.WriteByte(' ')
	b.WriteString(d.Name)
	for _, f := range d.Fields {
		if f.Hidden {
			continue
		}
		if f.Required {
			fmt.Fprintf(&b, " %s", f.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", f.Name)
		}
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "\n  %s", d.Description)
	}
	for _, f := range d.Fields {
		if f.Hidden {
			continue
		}
		fmt.Fprintf(&b, "\n  %-14s %s  %s", f.Name, f.Type, f.Description)
	}
	return b.String()
}

// Value is one sanitized argument, positionally aligned with the definition's
// field list. Present is false only for optional fields that had no token; an
// optional field given an empty-string token is indistinguishable from an
// absent one, which downstream formatting relies on.
type Value struct {
	Field   FieldSpec
	Raw     string
	Parsed  any
	Present bool
}

// Invocation carries a resolved command to its handler. Args is nil for
// commands dispatched without a definition; those receive the raw remaining
// tokens verbatim instead.
type Invocation struct {
	Context string
	Method  string
	Args    []Value
	Raw     []string
}

// Arg returns the sanitized value for the named field.
func (inv Invocation) Arg(name string) (Value, bool) {
	for _, v := range inv.Args {
		if v.Field.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

// StringArg returns the parsed text of the named field, or "" when absent.
func (inv Invocation) StringArg(name string) string {
	v, ok := inv.Arg(name)
	if !ok || !v.Present {
		return ""
	}
	s, _ := v.Parsed.(string)
	return s
}

// BigIntArg returns the parsed big integer of the named field, nil when
// absent.
func (inv Invocation) BigIntArg(name string) *big.Int {
	v, ok := inv.Arg(name)
	if !ok || !v.Present {
		return nil
	}
	n, _ := v.Parsed.(*big.Int)
	return n
}

// TimeArg returns the parsed timestamp of the named field; ok is false when
// absent.
func (inv Invocation) TimeArg(name string) (time.Time, bool) {
	v, found := inv.Arg(name)
	if !found || !v.Present {
		return time.Time{}, false
	}
	t, ok := v.Parsed.(time.Time)
	return t, ok
}

// DocArg returns the parsed file-reference document of the named field.
func (inv Invocation) DocArg(name string) any {
	v, ok := inv.Arg(name)
	if !ok || !v.Present {
		return nil
	}
	return v.Parsed
}

// HandlerFunc executes one resolved command.
type HandlerFunc func(ctx context.Context, inv Invocation) (any, error)

// AsyncResult marks handler results that carry a remote operation id the
// dispatcher should record as pending.
type AsyncResult interface {
	OperationID() string
}
