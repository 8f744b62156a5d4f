package catalog

// Wire DTOs for catalog records. Tool records carry tool_name/github_repo,
// component records component_name/oci_repository; both map onto the same
// domain shape.

type artifactDTO struct {
	ToolName      string                `json:"tool_name,omitempty"`
	ComponentName string                `json:"component_name,omitempty"`
	GithubRepo    string                `json:"github_repo,omitempty"`
	OCIRepository string                `json:"oci_repository,omitempty"`
	LatestVersion string                `json:"latest_version"`
	BuildType     string                `json:"build_type,omitempty"`
	Versions      map[string]versionDTO `json:"versions"`
}

type versionDTO struct {
	ReleaseDate string                 `json:"release_date"`
	Platforms   map[string]platformDTO `json:"platforms"`
}

type platformDTO struct {
	SHA256       string         `json:"sha256"`
	URLSuffix    string         `json:"url_suffix,omitempty"`
	PlatformName string         `json:"platform_name,omitempty"`
	BinaryName   string         `json:"binary_name,omitempty"`
	SourceInfo   *sourceInfoDTO `json:"source_info,omitempty"`
}

type sourceInfoDTO struct {
	Ref          string `json:"ref"`
	Commit       string `json:"commit"`
	BuildCommand string `json:"build_command"`
}

// name returns whichever identity field is set.
func (d artifactDTO) name() string {
	if d.ToolName != "" {
		return d.ToolName
	}
	return d.ComponentName
}

// repository returns whichever repository reference is set.
func (d artifactDTO) repository() string {
	if d.GithubRepo != "" {
		return d.GithubRepo
	}
	return d.OCIRepository
}

// locationHint returns the first populated hint field. The fields are
// mutually exclusive in practice; priority handles records that set more
// than one.
func (d platformDTO) locationHint() string {
	switch {
	case d.URLSuffix != "":
		return d.URLSuffix
	case d.PlatformName != "":
		return d.PlatformName
	default:
		return d.BinaryName
	}
}

// filename derives the full release asset name. Each hint field follows the
// naming scheme of the upstream that uses it: url_suffix tools publish
// {name}-{version}-{suffix} tarballs, platform_name tools publish
// {name}-cli-{platform} binaries, and binary_name is the asset name verbatim.
func (d platformDTO) filename(name, version string) string {
	switch {
	case d.URLSuffix != "":
		return name + "-" + version + "-" + d.URLSuffix
	case d.PlatformName != "":
		return name + "-cli-" + d.PlatformName
	default:
		return d.BinaryName
	}
}
