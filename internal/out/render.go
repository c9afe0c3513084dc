// Package out formats handler results for the console per the command's
// declared output type.
package out

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/avafoundry/ava-cli/internal/command"
)

// Render writes one result. The declared output type specializes scalar
// formatting; structured results fall back to indented JSON.
func Render(w io.Writer, outputType *command.TypeTag, result any) error {
	if result == nil {
		return nil
	}

	switch v := result.(type) {
	case string:
		return line(w, formatScalar(outputType, v))
	case *big.Int:
		return line(w, v.String())
	case time.Time:
		return line(w, v.UTC().Format(time.RFC3339))
	case bool:
		return line(w, strconv.FormatBool(v))
	case int64:
		if outputType != nil && *outputType == command.Timestamp {
			return line(w, time.Unix(v, 0).UTC().Format(time.RFC3339))
		}
		return line(w, strconv.FormatInt(v, 10))
	case []string:
		return line(w, strings.Join(v, ", "))
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return line(w, strings.Join(parts, ", "))
	case json.RawMessage:
		return renderJSON(w, v)
	default:
		return renderJSON(w, v)
	}
}

// formatScalar applies the declared type to string results; a BigInteger
// output is re-parsed so the printed digits are exact decimal text.
func formatScalar(outputType *command.TypeTag, v string) string {
	if outputType == nil {
		return v
	}
	switch *outputType {
	case command.BigInteger:
		if n, ok := new(big.Int).SetString(v, 10); ok {
			return n.String()
		}
		return v
	case command.Timestamp:
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC().Format(time.RFC3339)
		}
		return v
	default:
		return v
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func line(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
