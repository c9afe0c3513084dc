package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// On-disk definition record, one per file, grouped by directory = context.
type fileRecord struct {
	Name   string      `json:"name"`
	Desc   string      `json:"desc"`
	Output string      `json:"output,omitempty"`
	Params []fileParam `json:"params"`
}

type fileParam struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// LoadSpecDir reads every context directory under root and returns the
// definitions in directory-enumeration order. A malformed record is fatal:
// the registry must not be built from a partial or ambiguous spec tree. A
// missing root is not an error; the file-derived source is optional.
func LoadSpecDir(root string) ([]Definition, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read spec dir: %w", err)
	}

	var defs []Definition
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		context := entry.Name()
		dir := filepath.Join(root, context)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read spec context %s: %w", context, err)
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, f.Name())
			def, err := loadRecord(context, path)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

func loadRecord(context, path string) (Definition, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read spec record %s: %w", path, err)
	}
	var rec fileRecord
	if err := json.Unmarshal(buf, &rec); err != nil {
		return Definition{}, fmt.Errorf("parse spec record %s: %w", path, err)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return Definition{}, fmt.Errorf("spec record %s: missing name", path)
	}

	var outputType *TypeTag
	if rec.Output != "" {
		tag, err := ParseTypeTag(rec.Output)
		if err != nil {
			return Definition{}, fmt.Errorf("spec record %s: %w", path, err)
		}
		outputType = &tag
	}

	fields := make([]FieldSpec, 0, len(rec.Params))
	for _, p := range rec.Params {
		tag, err := ParseTypeTag(p.Type)
		if err != nil {
			return Definition{}, fmt.Errorf("spec record %s, param %s: %w", path, p.Name, err)
		}
		fields = append(fields, FieldSpec{
			Name:        p.Name,
			Description: p.Desc,
			Type:        tag,
			Required:    !p.Optional,
		})
	}

	return NewDefinition(context, rec.Name, rec.Desc, outputType, fields), nil
}
