// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// ManifestSummary is the handful of manifest.json fields shown to the user.
// It is informational: a missing or malformed manifest is never an error for
// the procedures.
type ManifestSummary struct {
	PackageName string
	Name        string
	VersionName string
	VersionCode string
	SplitAPKs   int
}

// ReadManifestSummary extracts a ManifestSummary from the manifest at path.
func ReadManifestSummary(path string) (ManifestSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestSummary{}, err
	}
	if !gjson.ValidBytes(data) {
		return ManifestSummary{}, fmt.Errorf("%s is not valid JSON", path)
	}

	r := gjson.GetManyBytes(data, "package_name", "name", "version_name", "version_code", "split_apks.#")
	return ManifestSummary{
		PackageName: r[0].String(),
		Name:        r[1].String(),
		VersionName: r[2].String(),
		VersionCode: r[3].String(),
		SplitAPKs:   int(r[4].Int()),
	}, nil
}

// IsZero reports whether no field was found.
func (m ManifestSummary) IsZero() bool {
	return m == ManifestSummary{}
}

// String renders e.g. "Example (com.example.app) 1.2.3 [42], 3 split APKs".
func (m ManifestSummary) String() string {
	var sb strings.Builder
	switch {
	case m.Name != "" && m.PackageName != "":
		fmt.Fprintf(&sb, "%s (%s)", m.Name, m.PackageName)
	case m.PackageName != "":
		sb.WriteString(m.PackageName)
	default:
		sb.WriteString(m.Name)
	}
	if m.VersionName != "" {
		fmt.Fprintf(&sb, " %s", m.VersionName)
	}
	if m.VersionCode != "" {
		fmt.Fprintf(&sb, " [%s]", m.VersionCode)
	}
	if m.SplitAPKs > 0 {
		fmt.Fprintf(&sb, ", %d split APKs", m.SplitAPKs)
	}
	return strings.TrimSpace(sb.String())
}
