package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Op names one model mutation.
type Op string

const (
	OpRename          Op = "rename"
	OpDelete          Op = "delete"
	OpAddModifier     Op = "add-modifier"
	OpRemoveModifier  Op = "remove-modifier"
	OpSetType         Op = "set-type"
	OpAddField        Op = "add-field"
	OpAddParameter    Op = "add-parameter"
	OpAddStatement    Op = "add-statement"
	OpRemoveStatement Op = "remove-statement"
)

var knownOps = map[Op]bool{
	OpRename: true, OpDelete: true, OpAddModifier: true, OpRemoveModifier: true,
	OpSetType: true, OpAddField: true, OpAddParameter: true,
	OpAddStatement: true, OpRemoveStatement: true,
}

// ErrInvalidScript is wrapped by every script decoding or validation error.
var ErrInvalidScript = errors.New("edit: invalid script")

// Edit is one [[edit]] table of a script.
type Edit struct {
	Op        Op       `toml:"op"`
	Target    string   `toml:"target"`
	Name      string   `toml:"name"`
	Type      string   `toml:"type"`
	Value     string   `toml:"value"`
	Text      string   `toml:"text"`
	Modifier  string   `toml:"modifier"`
	Modifiers []string `toml:"modifiers"`
	Varargs   bool     `toml:"varargs"`
	// Index positions inserted parameters and statements and selects the
	// statement to remove. Nil appends, or removes the last statement.
	Index *int `toml:"index"`
}

func (e Edit) String() string {
	return fmt.Sprintf("%s %s", e.Op, e.Target)
}

// Script is an ordered list of edits.
type Script struct {
	Edits []Edit `toml:"edit"`
}

// LoadScript decodes the script at path.
func LoadScript(path string) (*Script, error) {
	var s Script
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScript, path, err)
	}
	return finish(path, &s, meta)
}

// ParseScript decodes a script held in memory; name is used in errors.
func ParseScript(name, data string) (*Script, error) {
	var s Script
	meta, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScript, name, err)
	}
	return finish(name, &s, meta)
}

func finish(name string, s *Script, meta toml.MetaData) (*Script, error) {
	if keys := meta.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %s", ErrInvalidScript, name, keys[0])
	}
	for i, e := range s.Edits {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: edit %d: %w", ErrInvalidScript, name, i+1, err)
		}
	}
	return s, nil
}

func (e Edit) validate() error {
	if !knownOps[e.Op] {
		return fmt.Errorf("unknown op %q", e.Op)
	}
	if strings.TrimSpace(e.Target) == "" {
		return errors.New("missing target")
	}
	if _, err := ParseSelector(e.Target); err != nil {
		return err
	}
	need := func(field, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s needs %s", e.Op, field)
		}
		return nil
	}
	switch e.Op {
	case OpRename:
		return need("name", e.Name)
	case OpAddModifier, OpRemoveModifier:
		return need("modifier", e.Modifier)
	case OpSetType:
		return need("type", e.Type)
	case OpAddField, OpAddParameter:
		if err := need("type", e.Type); err != nil {
			return err
		}
		return need("name", e.Name)
	case OpAddStatement:
		return need("text", e.Text)
	}
	return nil
}
