package domain

// CompatibilityMatrix records which dependent artifact versions are known to
// work with a given base artifact version. Read-only reference data.
type CompatibilityMatrix struct {
	// Base is the artifact whose version anchors each row, e.g. "wasm-tools".
	Base string
	// Rows maps base version -> dependent artifact -> allowed versions.
	Rows map[string]map[string][]string
}

// CompatWarning flags an untested artifact-version combination. Advisory
// only; it never fails a build.
type CompatWarning struct {
	Artifact    string
	Version     string
	BaseName    string
	BaseVersion string
	Recommended []string
}
