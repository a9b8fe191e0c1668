package mdtemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

// Ext is the file extension of prompt templates.
const Ext = ".md"

// Store reads and writes Markdown templates in a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

var _ ports.TemplateStore = (*Store)(nil)

// Dir returns the directory the store works on.
func (s *Store) Dir() string { return s.dir }

func (s *Store) List() ([]domain.TemplateRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "mdtemplate.list",
			Kind: domain.KindNotFound,
			Path: s.dir,
			Err:  err,
		}
	}

	var refs []domain.TemplateRef
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}

		p := filepath.Join(s.dir, e.Name())
		ref := domain.TemplateRef{
			Name: strings.TrimSuffix(e.Name(), Ext),
			Path: p,
		}
		// A broken front matter still lists the file; Get reports the error.
		if t, err := readTemplate(ref.Name, p); err == nil {
			ref.Description = t.Description
		}
		refs = append(refs, ref)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Get loads a template by name ("forecast") or by file path ("./x.md").
func (s *Store) Get(nameOrPath string) (domain.Template, error) {
	name, path, err := s.locate(nameOrPath)
	if err != nil {
		return domain.Template{}, err
	}
	return readTemplate(name, path)
}

// Create writes content as a new template. Existing files are only replaced
// when overwrite is set. The content is parsed first so a broken front matter
// is rejected before anything is written.
func (s *Store) Create(name, content string, overwrite bool) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name+Ext)

	if _, _, err := parse([]byte(content)); err != nil {
		return "", &domain.OpError{
			Op:   "mdtemplate.create",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", domain.ValidationError("mdtemplate.create", "template %q already exists (use --force to replace it)", name)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "mdtemplate.create",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "mdtemplate.create",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return path, nil
}

func (s *Store) locate(nameOrPath string) (string, string, error) {
	in := strings.TrimSpace(nameOrPath)
	if strings.HasSuffix(in, Ext) || strings.ContainsRune(in, filepath.Separator) || strings.Contains(in, "/") {
		p := filepath.Clean(in)
		return strings.TrimSuffix(filepath.Base(p), Ext), p, nil
	}
	if err := validateName(in); err != nil {
		return "", "", err
	}
	return in, filepath.Join(s.dir, in+Ext), nil
}

func readTemplate(name, path string) (domain.Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
			err = fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
		}
		return domain.Template{}, &domain.OpError{
			Op:   "mdtemplate.get",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	fm, body, err := parse(b)
	if err != nil {
		return domain.Template{}, &domain.OpError{
			Op:   "mdtemplate.get",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return fm.toTemplate(name, path, body), nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationError("mdtemplate.name", "template name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return domain.ValidationError("mdtemplate.name", "invalid template name %q", name)
	}
	return nil
}
