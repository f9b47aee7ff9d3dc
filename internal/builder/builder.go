package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aledsdavies/blog/pkgs/config"
	"github.com/aledsdavies/blog/pkgs/convert"
	"github.com/aledsdavies/blog/pkgs/emitter"
	"github.com/aledsdavies/blog/pkgs/result"
	"github.com/aledsdavies/blog/pkgs/styles"
)

// Site layout
const (
	SourceDir = "source"
	OutputDir = "html"
	SourceExt = ".txt"
	OutputExt = ".html"
	IndexFile = emitter.IndexName + SourceExt
)

// ErrNoRoot is returned when no ancestor directory holds a blog.toml
var ErrNoRoot = errors.New("could not find file '" + config.FileName + "' in any parent directory")

// FindRoot walks from start up through its parents and returns the first
// directory that contains a config file
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRoot
		}
		dir = parent
	}
}

// Builder converts a site's source tree into its html tree
type Builder struct {
	root    string
	cfg     *config.Config
	log     *zap.SugaredLogger
	emitter *emitter.Emitter
}

// New creates a builder for the site at root
func New(root string, cfg *config.Config, log *zap.SugaredLogger, opts ...emitter.Option) *Builder {
	return &Builder{
		root:    root,
		cfg:     cfg,
		log:     log,
		emitter: emitter.New(cfg, os.DirFS(root), opts...),
	}
}

// SourcePath returns the absolute source directory
func (b *Builder) SourcePath() string {
	return filepath.Join(b.root, SourceDir)
}

// OutputPath returns the absolute output directory
func (b *Builder) OutputPath() string {
	return filepath.Join(b.root, OutputDir)
}

// Build converts every page and copies the site assets. It does not stop
// at the first failure: the result holds the number of pages written and
// every error met along the way. Pages written before a failure are left
// in place.
func (b *Builder) Build() result.Result[int] {
	b.log.Debugw("Building site", "root", b.root)

	pages := 0
	var res result.Result[int]

	walkErr := filepath.WalkDir(b.SourcePath(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res = res.ErrContext(err, "error reading %s", path)
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}

		rel, err := filepath.Rel(b.SourcePath(), path)
		if err != nil {
			res = res.ErrContext(err, "error resolving %s", path)
			return nil
		}

		errs := b.buildPage(rel)
		if len(errs) == 0 {
			pages++
		}
		res = res.Errs(errs...)
		return nil
	})
	res = res.Err(walkErr)

	res = res.Errs(b.writeStylesheet()...)
	res = res.Errs(b.copyMedia()...)

	b.log.Infow("Build finished", "pages", pages, "errors", len(res.Errors()))

	return res.Ok(pages)
}

// buildPage converts one page given relative to the source directory
func (b *Builder) buildPage(rel string) []error {
	source := filepath.Join(b.SourcePath(), rel)
	output := filepath.Join(b.OutputPath(), strings.TrimSuffix(rel, SourceExt)+OutputExt)

	b.log.Debugw("Converting page", "source", source, "output", output)

	content, err := os.ReadFile(source)
	if err != nil {
		return []error{fmt.Errorf("error reading page: %w", err)}
	}

	page := convert.Page(string(content), emitter.Page{Path: filepath.ToSlash(rel)}, b.emitter)
	if page.Failed() {
		return page.Errors()
	}

	if err := writeFile(output, []byte(page.Value())); err != nil {
		return []error{err}
	}
	return nil
}

func (b *Builder) writeStylesheet() []error {
	if !b.cfg.HasStyle() {
		return nil
	}

	path := filepath.Join(b.OutputPath(), styles.StylesheetFileName)
	b.log.Debugw("Writing stylesheet", "style", b.cfg.SiteStyle(), "output", path)

	if err := writeFile(path, []byte(styles.Stylesheet(b.cfg.SiteStyle()))); err != nil {
		return []error{err}
	}
	return nil
}

// copyMedia mirrors every [media] include, and the icon, into the output
func (b *Builder) copyMedia() []error {
	includes := b.cfg.Media.Include
	if b.cfg.HasIcon() {
		includes = append(includes[:len(includes):len(includes)], b.cfg.Site.Icon)
	}

	var errs []error
	for _, include := range includes {
		rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(include, "/")))
		if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			errs = append(errs, fmt.Errorf("media include '%s' is outside the site root", include))
			continue
		}

		src := filepath.Join(b.root, rel)
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			target, err := filepath.Rel(b.root, path)
			if err != nil {
				return err
			}

			b.log.Debugw("Copying media", "source", path)
			return copyFile(path, filepath.Join(b.OutputPath(), target))
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("error copying media '%s': %w", include, err))
		}
	}
	return errs
}

// Clean removes the output directory
func (b *Builder) Clean() error {
	b.log.Debugw("Removing output", "path", b.OutputPath())
	if err := os.RemoveAll(b.OutputPath()); err != nil {
		return fmt.Errorf("error removing output: %w", err)
	}
	return nil
}

// Scaffold creates a new site called name in dir
func Scaffold(dir, name string) error {
	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking %s: %w", configPath, err)
	}

	if err := writeFile(configPath, []byte(config.Template(name))); err != nil {
		return err
	}

	// The name only goes in the config. Markup characters in it would
	// otherwise break the first build.
	index := fmt.Sprintf("~\n# Welcome\nThis is your new site. Edit *%s* to get started.\n\n::date\n",
		filepath.ToSlash(filepath.Join(SourceDir, IndexFile)))
	return writeFile(filepath.Join(dir, SourceDir, IndexFile), []byte(index))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFile(dst, data)
}
