// Package export writes the two artifacts produced from a ranking table: a
// human-diffable JSON file in table insertion order, and an embeddable
// script file declaring a single variable with keys in lexicographic order.
// The two views are semantically equivalent; only key ordering differs.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// Names holds the output file names and script variable name for one source.
type Names struct {
	JSONFile   string
	ScriptFile string
	Variable   string
}

// ABSNames are the artifact names for the ABS journal table.
var ABSNames = Names{JSONFile: "abs_rankings.json", ScriptFile: "abs_rankings.js", Variable: "abs_rankings"}

// CoreNames are the artifact names for the CORE conference table.
var CoreNames = Names{JSONFile: "core_rankings.json", ScriptFile: "core_rankings.js", Variable: "coreRankings"}

// SJRNames are the artifact names for the SJR journal table.
var SJRNames = Names{JSONFile: "sjr_rankings.json", ScriptFile: "sjr_rankings.js", Variable: "sjr_rankings"}

// WriteJSON writes the table as indented JSON with keys in insertion order
// and non-ASCII characters preserved literally.
func WriteJSON[V entities.Value](table *entities.Table[V], path string) error {
	compact, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("failed to indent table: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debug("JSON artifact written", "path", path, "entries", table.Len())
	return nil
}

// WriteScript writes the table as a script file declaring a single variable
// bound to an object literal. Keys are emitted in lexicographic order so the
// file diffs reproducibly regardless of source row order.
func WriteScript[V entities.Value](table *entities.Table[V], variable string, path string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "var %s = {\n", variable)

	keys := table.SortedKeys()
	for i, key := range keys {
		value, _ := table.Get(key)
		comma := ","
		if i == len(keys)-1 {
			comma = ""
		}
		fmt.Fprintf(&buf, "    %q: %s%s\n", key, value.ScriptValue(), comma)
	}
	buf.WriteString("};\n")

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debug("Script artifact written", "path", path, "entries", table.Len())
	return nil
}

// WritePair writes both artifacts for one table into outDir.
func WritePair[V entities.Value](table *entities.Table[V], names Names, outDir string) error {
	if err := WriteJSON(table, filepath.Join(outDir, names.JSONFile)); err != nil {
		return err
	}
	return WriteScript(table, names.Variable, filepath.Join(outDir, names.ScriptFile))
}
