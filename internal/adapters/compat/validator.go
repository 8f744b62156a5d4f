// Package compat screens artifact selections against the tested-version
// matrix. Findings are advisory and never fail a resolution.
package compat

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed matrix.yaml
var seedMatrix []byte

// OverrideFileName is the matrix file operators can drop into the catalog
// directory to replace the embedded matrix.
const OverrideFileName = "compat.yaml"

type matrixFile struct {
	Base string                         `yaml:"base"`
	Rows map[string]map[string][]string `yaml:"rows"`
}

// Validator implements ports.CompatibilityValidator over a loaded matrix.
type Validator struct {
	matrix domain.CompatibilityMatrix
}

// Load builds a Validator from the embedded matrix, or from
// {catalogDir}/compat.yaml when that file exists.
func Load(catalogDir string) (*Validator, error) {
	raw := seedMatrix
	if catalogDir != "" {
		override := filepath.Join(catalogDir, OverrideFileName)
		if data, err := os.ReadFile(override); err == nil {
			raw = data
		} else if !os.IsNotExist(err) {
			return nil, domain.WithField(domain.ErrMatrixLoad, "path", override)
		}
	}

	var file matrixFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, domain.WithField(domain.ErrMatrixLoad, "cause", err.Error())
	}
	if file.Base == "" {
		return nil, domain.WithField(domain.ErrMatrixLoad, "cause", "matrix has no base artifact")
	}
	for version, row := range file.Rows {
		for artifact, allowed := range row {
			if len(allowed) == 0 {
				err := domain.WithField(domain.ErrMatrixLoad, "base_version", version)
				return nil, zerr.With(err, "cause", "empty allowed set for "+artifact)
			}
		}
	}

	return &Validator{matrix: domain.CompatibilityMatrix{
		Base: file.Base,
		Rows: file.Rows,
	}}, nil
}

// Validate checks every selected artifact against the row anchored by the
// selected base version. Artifacts the matrix does not mention pass silently,
// as does a base version without a row. Warnings come back sorted by artifact
// name so output is stable.
func (v *Validator) Validate(selection map[string]string) []domain.CompatWarning {
	baseVersion, ok := selection[v.matrix.Base]
	if !ok {
		return nil
	}
	row, ok := v.matrix.Rows[baseVersion]
	if !ok {
		return nil
	}

	var warnings []domain.CompatWarning
	for artifact, version := range selection {
		if artifact == v.matrix.Base {
			continue
		}
		allowed, ok := row[artifact]
		if !ok || slices.Contains(allowed, version) {
			continue
		}
		warnings = append(warnings, domain.CompatWarning{
			Artifact:    artifact,
			Version:     version,
			BaseName:    v.matrix.Base,
			BaseVersion: baseVersion,
			Recommended: allowed,
		})
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Artifact < warnings[j].Artifact
	})
	return warnings
}

// Base returns the artifact anchoring the matrix rows.
func (v *Validator) Base() string {
	return v.matrix.Base
}
