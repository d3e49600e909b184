package descriptors

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Manifest is the parsed content of one manifest file
type Manifest struct {
	Path     string
	Toolbars []types.Toolbar
	Items    []types.ItemDescriptor
}

type manifestFile struct {
	Toolbars []manifestToolbar `koanf:"toolbar"`
	Items    []manifestItem    `koanf:"item"`
}

type manifestToolbar struct {
	Key   string `koanf:"key"`
	Title string `koanf:"title"`
}

type manifestItem struct {
	ID       string `koanf:"id"`
	Toolbar  string `koanf:"toolbar"`
	Align    string `koanf:"align"`
	Index    int    `koanf:"index"`
	Fallback bool   `koanf:"fallback"`
}

// IsManifestFile reports whether path has a supported manifest extension
func IsManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml", ".xml":
		return true
	}
	return false
}

// LoadManifest parses a single manifest file, choosing the format by
// extension
func LoadManifest(path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadKoanfManifest(path, toml.Parser())
	case ".yaml", ".yml":
		return loadKoanfManifest(path, yaml.Parser())
	case ".xml":
		return loadXMLManifest(path)
	default:
		return nil, errors.Newf(errors.ErrManifestLoad, "unsupported manifest format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func loadKoanfManifest(path string, parser koanf.Parser) (*Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to load manifest %s", path).
			WithDetail("path", path)
	}

	var raw manifestFile
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, conf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to decode manifest %s", path).
			WithDetail("path", path)
	}

	m := &Manifest{Path: path}
	for i, tb := range raw.Toolbars {
		decl, err := newToolbar(path, i, tb.Key, tb.Title)
		if err != nil {
			return nil, err
		}
		m.Toolbars = append(m.Toolbars, decl)
	}
	for i, it := range raw.Items {
		d, err := newDescriptor(path, i, it)
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, d)
	}

	logger := logging.GetLogger("descriptors")
	logger.Debug().
		Str("path", path).
		Int("toolbars", len(m.Toolbars)).
		Int("items", len(m.Items)).
		Msg("Manifest loaded")
	return m, nil
}

func newToolbar(path string, pos int, key, title string) (types.Toolbar, error) {
	if strings.TrimSpace(key) == "" {
		return types.Toolbar{}, errors.Newf(errors.ErrManifestParse, "%s: toolbar #%d has no key", path, pos+1).
			WithDetail("path", path).
			WithDetail("position", pos+1)
	}
	return types.Toolbar{Key: types.ToolbarKey(key), Title: title}, nil
}

func newDescriptor(path string, pos int, it manifestItem) (types.ItemDescriptor, error) {
	fail := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrManifestParse, "%s: item #%d: "+format, append([]interface{}{path, pos + 1}, args...)...).
			WithDetail("path", path).
			WithDetail("position", pos+1)
	}

	if strings.TrimSpace(it.ID) == "" {
		return types.ItemDescriptor{}, fail("missing id")
	}
	if strings.TrimSpace(it.Toolbar) == "" {
		return types.ItemDescriptor{}, fail("%s has no toolbar", it.ID)
	}

	align := types.AlignLeft
	if it.Align != "" {
		parsed, err := types.ParseAlignment(it.Align)
		if err != nil {
			return types.ItemDescriptor{}, fail("%s: %v", it.ID, err)
		}
		align = parsed
	}

	return types.ItemDescriptor{
		ID:        it.ID,
		Toolbar:   types.ToolbarKey(it.Toolbar),
		Alignment: align,
		Index:     it.Index,
		Fallback:  it.Fallback,
		Origin:    path,
	}, nil
}

// ManifestSource reads descriptors from manifest files and directories.
// Files are re-read on every call so an invalidated registry sees edits.
type ManifestSource struct {
	Paths []string
}

// NewManifestSource creates a ManifestSource over paths
func NewManifestSource(paths ...string) *ManifestSource {
	return &ManifestSource{Paths: paths}
}

// Files expands directories into their manifest files. Directory entries
// are sorted by name; explicit files keep the given order.
func (s *ManifestSource) Files() ([]string, error) {
	var files []string
	for _, p := range s.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot access manifest path %s", p).
				WithDetail("path", p)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest directory %s", p).
				WithDetail("path", p)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && IsManifestFile(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(p, n))
		}
	}
	return files, nil
}

// Load parses every manifest
func (s *ManifestSource) Load() ([]*Manifest, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	manifests := make([]*Manifest, 0, len(files))
	for _, f := range files {
		m, err := LoadManifest(f)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

// Descriptors implements toolbar.Source
func (s *ManifestSource) Descriptors() ([]types.ItemDescriptor, error) {
	manifests, err := s.Load()
	if err != nil {
		return nil, err
	}
	var all []types.ItemDescriptor
	for _, m := range manifests {
		all = append(all, m.Items...)
	}
	return all, nil
}

// Toolbars implements toolbar.ToolbarSource
func (s *ManifestSource) Toolbars() ([]types.Toolbar, error) {
	manifests, err := s.Load()
	if err != nil {
		return nil, err
	}
	var all []types.Toolbar
	for _, m := range manifests {
		all = append(all, m.Toolbars...)
	}
	return all, nil
}
