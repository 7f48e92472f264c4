package htmlpatch

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/brogergvhs/landingkit/internal/util"

	"gopkg.in/yaml.v3"
)

//go:embed fixes.yaml
var builtinFixes []byte

type patchSet struct {
	Patches []Patch `yaml:"patches"`
}

func parsePatchSet(b []byte) ([]Patch, error) {
	var ps patchSet
	if err := yaml.Unmarshal(b, &ps); err != nil {
		return nil, err
	}
	for _, p := range ps.Patches {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return ps.Patches, nil
}

// LoadPatchSet reads a YAML file with a top level "patches" list.
func LoadPatchSet(path string) ([]Patch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	patches, err := parsePatchSet(b)
	if err != nil {
		return nil, fmt.Errorf("patch set %s: %w", path, err)
	}
	return patches, nil
}

// BuiltinFixes is the landing page fix set: size selector and stock line,
// product details accordion, influencer image paths, mobile menu toggle,
// mobile and accordion CSS, and the JS driving all of them.
func BuiltinFixes() []Patch {
	patches, err := parsePatchSet(builtinFixes)
	if err != nil {
		panic("htmlpatch: broken builtin fix set: " + err.Error())
	}
	return patches
}

type FileOptions struct {
	DryRun bool
	// Backup keeps the untouched document as <path>.bak.
	Backup bool
}

// PatchFile applies patches to the file at path in place. changed reports
// whether the document differs from what was read.
func PatchFile(path string, patches []Patch, opts FileOptions) (results []Result, changed bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	doc := string(b)
	out, results := Apply(doc, patches)
	changed = out != doc

	if !changed || opts.DryRun {
		return results, changed, nil
	}

	if opts.Backup {
		if err := util.WriteFileAtomic(path+".bak", b, 0644); err != nil {
			return results, changed, fmt.Errorf("backup: %w", err)
		}
	}

	if err := util.WriteFileAtomic(path, []byte(out), 0644); err != nil {
		return results, changed, err
	}

	return results, changed, nil
}
