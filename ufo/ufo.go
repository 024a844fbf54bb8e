package ufo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/letterspace/glyph"
	"howett.net/plist"
)

// File and directory names of the UFO format.
const (
	MetaInfoFile      = "metainfo.plist"
	FontInfoFile      = "fontinfo.plist"
	LayerContentsFile = "layercontents.plist"
	ContentsFile      = "contents.plist"
	DefaultLayerDir   = "glyphs"
	DefaultLayerName  = "public.default"
)

// Creator is written into metainfo.plist of newly created UFOs.
const Creator = "com.github.npillmayer.letterspace"

// LayerInfo names a layer and its directory within the UFO.
type LayerInfo struct {
	Name string
	Dir  string
}

// Font is a font source in UFO format. Only the parts relevant for spacing
// are read: font metrics, the layer structure and the glyphs of the default
// layer.
type Font struct {
	Path          string
	FormatVersion int
	Creator       string
	Family, Style string
	Metrics       glyph.FontMetrics
	Layers        []LayerInfo  // in the order of layercontents.plist
	Default       *glyph.Layer // glyphs of the default layer
}

// Open reads a UFO (format 2 or 3) from a directory.
func Open(path string) (*Font, error) {
	f := &Font{Path: path, Metrics: glyph.DefaultMetrics()}
	meta := map[string]interface{}{}
	if err := readPlist(filepath.Join(path, MetaInfoFile), &meta); err != nil {
		return nil, fmt.Errorf("ufo: %w", err)
	}
	if v, ok := number(meta["formatVersion"]); ok {
		f.FormatVersion = int(v)
	}
	f.Creator, _ = meta["creator"].(string)
	if err := f.readFontInfo(); err != nil {
		return nil, err
	}
	if err := f.readLayerContents(); err != nil {
		return nil, err
	}
	def := f.defaultLayerInfo()
	layer, err := f.readLayer(def)
	if err != nil {
		return nil, err
	}
	f.Default = layer
	tracer().Infof("opened UFO %s (%s %s), %d glyphs in default layer", path, f.Family, f.Style, layer.Len())
	return f, nil
}

func (f *Font) readFontInfo() error {
	info := map[string]interface{}{}
	err := readPlist(filepath.Join(f.Path, FontInfoFile), &info)
	if errors.Is(err, fs.ErrNotExist) {
		tracer().Infof("UFO %s has no font info, using default metrics", f.Path)
		return nil
	} else if err != nil {
		return fmt.Errorf("ufo: %w", err)
	}
	if v, ok := number(info["unitsPerEm"]); ok {
		f.Metrics.UnitsPerEm = v
	}
	if v, ok := number(info["italicAngle"]); ok {
		f.Metrics.ItalicAngle = v
	}
	if v, ok := number(info["xHeight"]); ok {
		f.Metrics.XHeight = v
	}
	f.Family, _ = info["familyName"].(string)
	f.Style, _ = info["styleName"].(string)
	return nil
}

func (f *Font) readLayerContents() error {
	var entries [][]string
	err := readPlist(filepath.Join(f.Path, LayerContentsFile), &entries)
	if errors.Is(err, fs.ErrNotExist) { // UFO 2
		f.Layers = []LayerInfo{{Name: DefaultLayerName, Dir: DefaultLayerDir}}
		return nil
	} else if err != nil {
		return fmt.Errorf("ufo: %w", err)
	}
	for _, e := range entries {
		if len(e) != 2 {
			return fmt.Errorf("ufo: malformed entry %v in %s", e, LayerContentsFile)
		}
		f.Layers = append(f.Layers, LayerInfo{Name: e[0], Dir: e[1]})
	}
	return nil
}

func (f *Font) defaultLayerInfo() LayerInfo {
	for _, l := range f.Layers {
		if l.Dir == DefaultLayerDir {
			return l
		}
	}
	return LayerInfo{Name: DefaultLayerName, Dir: DefaultLayerDir}
}

// Layer looks up the layer with the given name.
func (f *Font) Layer(name string) (LayerInfo, bool) {
	for _, l := range f.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return LayerInfo{}, false
}

// ReadLayer reads the glyphs of the layer with the given name.
func (f *Font) ReadLayer(name string) (*glyph.Layer, error) {
	info, ok := f.Layer(name)
	if !ok {
		return nil, fmt.Errorf("ufo: no layer %q in %s", name, f.Path)
	}
	return f.readLayer(info)
}

func (f *Font) readLayer(info LayerInfo) (*glyph.Layer, error) {
	dir := filepath.Join(f.Path, info.Dir)
	contents := map[string]string{}
	if err := readPlist(filepath.Join(dir, ContentsFile), &contents); err != nil {
		return nil, fmt.Errorf("ufo: layer %s: %w", info.Name, err)
	}
	layer := glyph.NewLayer(info.Name)
	for name, file := range contents {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("ufo: layer %s: %w", info.Name, err)
		}
		g, err := parseGLIF(data)
		if err != nil {
			return nil, fmt.Errorf("ufo: %s: %w", file, err)
		}
		if g.Name != name {
			tracer().Infof("glyph file %s holds glyph %q, listed as %q", file, g.Name, name)
			g.Name = name
		}
		layer.Insert(g)
	}
	tracer().Debugf("read layer %s with %d glyphs", info.Name, layer.Len())
	return layer, nil
}

// --- Writing ---------------------------------------------------------------

// WriteLayer writes the glyphs of layer into the UFO as a layer of the same
// name, replacing an existing layer of that name. New layers are registered
// in layercontents.plist. The default layer cannot be replaced.
func (f *Font) WriteLayer(layer *glyph.Layer) error {
	info, exists := f.Layer(layer.Name)
	if exists && info.Dir == DefaultLayerDir {
		return fmt.Errorf("ufo: refusing to overwrite default layer %s", layer.Name)
	}
	if !exists {
		existing := make(map[string]bool, len(f.Layers))
		for _, l := range f.Layers {
			existing[strings.ToLower(l.Dir)] = true
		}
		dir, err := UserNameToFileName(layer.Name, existing, "glyphs.", "")
		if err != nil {
			return err
		}
		info = LayerInfo{Name: layer.Name, Dir: dir}
	}
	dir := filepath.Join(f.Path, info.Dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("ufo: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ufo: %w", err)
	}
	contents := make(map[string]string, layer.Len())
	fileNames := make(map[string]bool, layer.Len())
	for g := range layer.All() {
		file, err := UserNameToFileName(g.Name, fileNames, "", ".glif")
		if err != nil {
			return err
		}
		fileNames[strings.ToLower(file)] = true
		data, err := formatGLIF(g)
		if err != nil {
			return fmt.Errorf("ufo: glyph %s: %w", g.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
			return fmt.Errorf("ufo: %w", err)
		}
		contents[g.Name] = file
	}
	if err := writePlist(filepath.Join(dir, ContentsFile), contents); err != nil {
		return err
	}
	if !exists {
		f.Layers = append(f.Layers, info)
	}
	if err := f.writeLayerContents(); err != nil {
		return err
	}
	tracer().Infof("wrote layer %s with %d glyphs to %s", layer.Name, layer.Len(), dir)
	return nil
}

// MergeLayer writes the glyphs of layer into the layer of the same name,
// keeping glyphs of an existing layer which layer does not contain. Glyphs
// present in both are replaced.
func (f *Font) MergeLayer(layer *glyph.Layer) error {
	if _, exists := f.Layer(layer.Name); !exists {
		return f.WriteLayer(layer)
	}
	merged, err := f.ReadLayer(layer.Name)
	if err != nil {
		return err
	}
	kept := merged.Len()
	for g := range layer.All() {
		if merged.Has(g.Name) {
			kept--
		}
		merged.Insert(g)
	}
	tracer().Debugf("merging layer %s, keeping %d glyphs", layer.Name, kept)
	return f.WriteLayer(merged)
}

func (f *Font) writeLayerContents() error {
	entries := make([][]string, len(f.Layers))
	for i, l := range f.Layers {
		entries[i] = []string{l.Name, l.Dir}
	}
	if err := writePlist(filepath.Join(f.Path, LayerContentsFile), entries); err != nil {
		return err
	}
	if f.FormatVersion >= 3 {
		return nil
	}
	// layers need UFO 3
	f.FormatVersion = 3
	meta := map[string]interface{}{"creator": Creator, "formatVersion": 3}
	if f.Creator != "" {
		meta["creator"] = f.Creator
	}
	return writePlist(filepath.Join(f.Path, MetaInfoFile), meta)
}

// CopyTo copies the UFO directory tree to dest and returns the copy.
// dest must not exist yet.
func (f *Font) CopyTo(dest string) (*Font, error) {
	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("ufo: %s already exists", dest)
	}
	err := filepath.WalkDir(f.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(f.Path, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
	if err != nil {
		return nil, fmt.Errorf("ufo: copying %s: %w", f.Path, err)
	}
	c := *f
	c.Path = dest
	c.Layers = append([]LayerInfo(nil), f.Layers...)
	return &c, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// --- Property lists --------------------------------------------------------

func readPlist(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func writePlist(path string, v interface{}) error {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("ufo: %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ufo: %w", err)
	}
	return nil
}

// number converts a plist <integer> or <real> to float64. The plist decoder
// yields signed integers as int64, unsigned ones as uint64.
func number(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}
