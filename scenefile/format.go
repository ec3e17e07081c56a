// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"veroengine.org/core/xyz"
)

var (
	// ErrUnknownFormat is returned for files whose extension is not
	// that of a supported format.
	ErrUnknownFormat = errors.New("scenefile: unknown file format")

	// ErrVersion is returned for files of a newer format version.
	ErrVersion = errors.New("scenefile: unsupported format version")
)

// Format is a file format for scenes.
type Format int32

const (
	JSON Format = iota
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// FormatOf returns the format for the extension of the given path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Marshal encodes the file in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case JSON:
		b, err := json.MarshalIndent(f, "", "\t")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case YAML:
		return yaml.Marshal(f)
	case TOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// Read decodes a file in the given format.
func Read(r io.Reader, format Format) (*File, error) {
	f := &File{}
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(f)
	case YAML:
		err = yaml.NewDecoder(r).Decode(f)
	case TOML:
		err = toml.NewDecoder(r).Decode(f)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if f.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	return f, nil
}

// Save saves the tree of n to the given file, in the format given
// by its extension.
func Save(path string, n xyz.Node) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	b, err := Marshal(&File{Version: Version, Root: Encode(n)}, format)
	if err != nil {
		return fmt.Errorf("scenefile.Save %s: %w", path, err)
	}
	return writeFile(path, b)
}

// writeFile replaces the file with the data in one rename, so that
// watchers never read a partial file.
func writeFile(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(b)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
	}
	return err
}

// Load reads the given file, in the format given by its extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := Read(fh, format)
	if err != nil {
		return nil, fmt.Errorf("scenefile.Load %s: %w", path, err)
	}
	return f, nil
}

// Open loads the tree in the given file. The tree has no parent.
func Open(path string) (xyz.Node, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Decode(&f.Root, DefaultResolver, nil), nil
}

// Change replaces the scene with the one in the given file. The new
// root is installed and the physics world is reset before the rest of
// the tree is built, so that bodies bind in the new world. If the file
// cannot be read the scene is left as it is.
func Change(sc *xyz.Scene, path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	root := decodeNode(&f.Root, DefaultResolver)
	sc.SetRoot(root)
	sc.ResetPhysics()
	decodeChildren(&f.Root, DefaultResolver, root)
	slog.Info("scenefile.Change", "path", path, "root", root.AsTree().Name)
	return nil
}

// Convert rewrites the scene file in into the file out, converting
// its format according to the extensions.
func Convert(in, out string) error {
	f, err := Load(in)
	if err != nil {
		return err
	}
	format, err := FormatOf(out)
	if err != nil {
		return err
	}
	f.Version = Version
	b, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("scenefile.Convert %s: %w", out, err)
	}
	return writeFile(out, b)
}
