package rankingsparser

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser/entities"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExtractFile opens a source file and runs the extraction pipeline over it.
// A missing or unreadable file is the only hard failure; everything past the
// open is row-scoped. Files that are not valid UTF-8 are decoded from
// ISO-8859-1, since SCImago and CORE exports ship in legacy encodings.
func ExtractFile[V entities.Value](path string, src Source[V]) (*entities.Table[V], Stats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open %s source %s: %w", src.Name, path, err)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("failed to decode %s source %s: %w", src.Name, path, err)
		}
		logging.Debug("Decoded source from ISO-8859-1", "source", src.Name, "path", path)
		raw = decoded
	}

	return Extract(bytes.NewReader(raw), src)
}
