// Package sanitize converts raw input tokens into typed argument values per
// a command definition's field specifications.
package sanitize

import (
	"encoding/json"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avafoundry/ava-cli/internal/command"
	clierr "github.com/avafoundry/ava-cli/internal/errors"
)

// Credential is the session's active keystore credential, substituted for
// implicit username/password fields.
type Credential struct {
	Username string
	Password string
}

const listSeparator = ","

// Validate walks the definition's fields in declared order, coercing one raw
// token per visible field and substituting implicit values for hidden ones.
// The returned slice has one Value per declared field, hidden or not,
// positionally aligned with the field list. Tokens beyond the declared
// fields are ignored.
func Validate(def command.Definition, tokens []string, cred *Credential) ([]command.Value, error) {
	if required := def.RequiredFieldCount(); len(tokens) < required {
		return nil, clierr.InsufficientArguments(required, len(tokens))
	}

	values := make([]command.Value, 0, len(def.Fields))
	cursor := 0
	for _, field := range def.Fields {
		if field.Hidden {
			v, err := implicitValue(def, field, cred)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			continue
		}

		if cursor >= len(tokens) {
			// Optional field with no token left: explicit absent placeholder.
			values = append(values, command.Value{Field: field})
			continue
		}

		raw := tokens[cursor]
		cursor++
		parsed, err := coerce(field, raw)
		if err != nil {
			return nil, err
		}
		values = append(values, command.Value{Field: field, Raw: raw, Parsed: parsed, Present: true})
	}
	return values, nil
}

func implicitValue(def command.Definition, field command.FieldSpec, cred *Credential) (command.Value, error) {
	if def.UsesImplicitCredential {
		switch field.Name {
		case "username":
			if cred == nil {
				return command.Value{}, clierr.NoActiveCredential(field.Name)
			}
			return command.Value{Field: field, Parsed: cred.Username, Present: true}, nil
		case "password":
			if cred == nil {
				return command.Value{}, clierr.NoActiveCredential(field.Name)
			}
			return command.Value{Field: field, Parsed: cred.Password, Present: true}, nil
		}
	}
	// Hidden fields outside the credential convention have no supplier.
	return command.Value{Field: field}, nil
}

func coerce(field command.FieldSpec, raw string) (any, error) {
	switch field.Type {
	case command.PlainText:
		return raw, nil

	case command.NumberList:
		parts := splitList(raw)
		nums := make([]int64, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return nil, clierr.InvalidFieldValue(field.Name, raw, err)
			}
			nums = append(nums, n)
		}
		return nums, nil

	case command.StringList:
		return splitList(raw), nil

	case command.BigInteger:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, clierr.InvalidFieldValue(field.Name, raw, nil)
		}
		return n, nil

	case command.Timestamp:
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, clierr.InvalidFieldValue(field.Name, raw, err)
		}
		return time.Unix(secs, 0).UTC(), nil

	case command.FileReference:
		buf, err := os.ReadFile(raw)
		if err != nil {
			return nil, clierr.InvalidFieldValue(field.Name, raw, err)
		}
		var doc any
		if err := json.Unmarshal(buf, &doc); err != nil {
			return nil, clierr.InvalidFieldValue(field.Name, raw, err)
		}
		return doc, nil

	default:
		return raw, nil
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
