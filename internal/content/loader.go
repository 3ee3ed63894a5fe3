// Package content loads world and level definitions from YAML files and
// turns them into progression worlds. The progression package never reads
// files itself; every load failure surfaces here as a *LoadError.
package content

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/starpath/internal/content/formats"
	"github.com/vovakirdan/starpath/internal/progression"
)

//go:embed worlds
var defaultWorlds embed.FS

// LevelDef is a validated level of a world definition.
type LevelDef struct {
	ID                string
	Name              string
	Difficulty        string
	UnlockRequirement int
	Content           *progression.Content
	FilePath          string
}

// WorldDef is a validated world definition ready to be built.
type WorldDef struct {
	Info   progression.WorldInfo
	Levels []LevelDef
	Dir    string
}

// Build creates a fresh World owned by the caller.
func (d WorldDef) Build() (*progression.World, error) {
	entries := make([]progression.LevelEntry, len(d.Levels))
	for i, lvl := range d.Levels {
		entries[i] = progression.LevelEntry{
			ID:                lvl.ID,
			Name:              lvl.Name,
			Difficulty:        lvl.Difficulty,
			UnlockRequirement: lvl.UnlockRequirement,
			Content:           lvl.Content,
		}
	}
	return progression.NewWorld(d.Info, entries...)
}

// Loader handles loading worlds from a file system.
// Paths are slash-separated and relative to the file system root.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a loader over the given file system.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// NewDirLoader creates a loader rooted at a directory on disk.
func NewDirLoader(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// Default returns a loader over the worlds embedded in the binary.
func Default() *Loader {
	sub, err := fs.Sub(defaultWorlds, "worlds")
	if err != nil {
		panic("content: embedded worlds missing: " + err.Error())
	}
	return NewLoader(sub)
}

// LoadLevel loads and validates a single level file.
func (l *Loader) LoadLevel(p string) (*progression.Content, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, &LoadError{Path: p, Code: CodeRead, Message: "cannot read level", Err: err}
	}
	yl, err := formats.ParseLevel(data)
	if err != nil {
		return nil, &LoadError{Path: p, Code: CodeParse, Message: "cannot parse level", Err: err}
	}
	return buildContent(p, yl)
}

// LoadWorld loads the manifest in dir and every level it lists.
func (l *Loader) LoadWorld(dir string) (WorldDef, error) {
	manifest := path.Join(dir, formats.ManifestName)
	data, err := fs.ReadFile(l.FS, manifest)
	if err != nil {
		return WorldDef{}, &LoadError{Path: manifest, Code: CodeRead, Message: "cannot read world manifest", Err: err}
	}
	yw, err := formats.ParseWorld(data)
	if err != nil {
		return WorldDef{}, &LoadError{Path: manifest, Code: CodeParse, Message: "cannot parse world manifest", Err: err}
	}
	if err := validateManifest(manifest, yw); err != nil {
		return WorldDef{}, err
	}

	def := WorldDef{
		Info: progression.WorldInfo{
			ID:     yw.ID,
			Number: yw.Number,
			Name:   yw.Name,
			Theme: progression.Theme{
				ID:            yw.Theme.ID,
				Background:    yw.Theme.Background,
				Music:         yw.Theme.Music,
				AmbientSounds: yw.Theme.AmbientSounds,
			},
		},
		Dir: dir,
	}

	for _, ref := range yw.Levels {
		levelPath := path.Join(dir, ref.File)
		c, err := l.LoadLevel(levelPath)
		if err != nil {
			return WorldDef{}, err
		}
		if c.ID != ref.ID {
			return WorldDef{}, loadErr(levelPath, CodeIDMismatch, "level file id %q does not match manifest id %q", c.ID, ref.ID)
		}
		name := ref.Name
		if name == "" {
			name = c.Name
		}
		def.Levels = append(def.Levels, LevelDef{
			ID:                ref.ID,
			Name:              name,
			Difficulty:        ref.Difficulty,
			UnlockRequirement: ref.Requirements.Stars,
			Content:           c,
			FilePath:          levelPath,
		})
	}

	return def, nil
}

// WorldDirs returns every directory that contains a world manifest.
func (l *Loader) WorldDirs() ([]string, error) {
	var dirs []string
	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == formats.ManifestName {
			dirs = append(dirs, path.Dir(p))
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: CodeRead, Message: "cannot walk content", Err: err}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LoadAll loads every world. Worlds are sorted by number, then id.
// The first invalid world aborts the load.
func (l *Loader) LoadAll() ([]WorldDef, error) {
	dirs, err := l.WorldDirs()
	if err != nil {
		return nil, err
	}

	var worlds []WorldDef
	seen := make(map[string]string)
	for _, dir := range dirs {
		def, err := l.LoadWorld(dir)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[def.Info.ID]; ok {
			return nil, loadErr(dir, CodeDuplicateWorld, "world %q also defined in %s", def.Info.ID, prev)
		}
		seen[def.Info.ID] = dir
		worlds = append(worlds, def)
	}

	sort.Slice(worlds, func(i, j int) bool {
		if worlds[i].Info.Number != worlds[j].Info.Number {
			return worlds[i].Info.Number < worlds[j].Info.Number
		}
		return worlds[i].Info.ID < worlds[j].Info.ID
	})
	return worlds, nil
}

// LoadByID loads a specific world by id.
func (l *Loader) LoadByID(id string) (WorldDef, error) {
	worlds, err := l.LoadAll()
	if err != nil {
		return WorldDef{}, err
	}
	for _, w := range worlds {
		if w.Info.ID == id {
			return w, nil
		}
	}
	return WorldDef{}, loadErr("", CodeWorldNotFound, "world not found: %s", id)
}

// Check validates every world and every stray level file, collecting all
// failures instead of stopping at the first one.
func (l *Loader) Check() []error {
	dirs, err := l.WorldDirs()
	if err != nil {
		return []error{err}
	}

	var errs []error
	listed := make(map[string]bool)
	failed := make(map[string]bool)
	for _, dir := range dirs {
		def, err := l.LoadWorld(dir)
		if err != nil {
			errs = append(errs, err)
			failed[dir] = true
			continue
		}
		for _, lvl := range def.Levels {
			listed[lvl.FilePath] = true
		}
	}

	// Level files not referenced by a manifest are still validated.
	// Directories of failed worlds were already reported.
	walkErr := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == formats.ManifestName || listed[p] || failed[path.Dir(p)] || !IsContentFile(p) {
			return nil
		}
		if _, err := l.LoadLevel(p); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, &LoadError{Code: CodeRead, Message: "cannot walk content", Err: walkErr})
	}
	return errs
}

// IsContentFile reports whether the path has a supported extension.
func IsContentFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// AsLoadError extracts a *LoadError from err.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	ok := errors.As(err, &le)
	return le, ok
}
