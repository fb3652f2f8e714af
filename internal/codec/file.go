package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/papapumpkin/prefab/internal/prefab"
)

// Ext is the file extension the game loads prefabs from.
const Ext = ".lsp"

// WriteFile encodes doc and writes it to path, creating parent
// directories as needed.
func (c *Codec) WriteFile(path string, doc *prefab.Document) error {
	text, err := c.Encode(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	c.log.Debug("wrote prefab", "path", path, "objects", doc.Len())
	return nil
}

// ReadFile reads and decodes the prefab at path.
func (c *Codec) ReadFile(path string) (*prefab.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := c.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
