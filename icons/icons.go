// Package icons resolves collection icon names against an icon pack directory.
package icons

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"querry/logger"
	"querry/models"
)

var allowedExt = map[string]bool{".svg": true, ".png": true}

// Pack is a directory of icon assets plus the name used when nothing can be picked.
type Pack struct {
	dir      string
	fallback string
}

func New(dir, fallback string) *Pack {
	return &Pack{dir: dir, fallback: fallback}
}

func (p *Pack) Dir() string      { return p.dir }
func (p *Pack) Fallback() string { return p.fallback }

// Names lists the icon files in the pack, sorted. A missing directory is an empty pack.
func (p *Pack) Names() ([]string, error) {
	names := []string{}
	if p.dir == "" {
		return names, nil
	}
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return names, nil
		}
		return nil, fmt.Errorf("reading icon pack %s: %w", p.dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if allowedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Search returns the icon names containing term, ignoring case. A blank term matches
// every icon.
func (p *Pack) Search(term string) ([]string, error) {
	names, err := p.Names()
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return names, nil
	}
	matches := []string{}
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), term) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

// Resolve returns the on-disk path of an icon. Names that try to leave the pack
// directory are rejected with models.ErrValidation.
func (p *Pack) Resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid icon name %q", models.ErrValidation, name)
	}
	if !allowedExt[strings.ToLower(filepath.Ext(name))] {
		return "", fmt.Errorf("%w: unsupported icon type %q", models.ErrValidation, name)
	}
	path := filepath.Join(p.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("icon %s: %w", name, models.ErrNotFound)
		}
		return "", fmt.Errorf("checking icon %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("icon %s: %w", name, models.ErrNotFound)
	}
	return path, nil
}

// Pick returns a uniformly random icon name, or the fallback when the pack is empty
// or unreadable.
func (p *Pack) Pick() string {
	names, err := p.Names()
	if err != nil {
		logger.Warn("Icon pack unreadable, using fallback %s: %v", p.fallback, err)
		return p.fallback
	}
	if len(names) == 0 {
		return p.fallback
	}
	return names[rand.IntN(len(names))]
}
