package config

import (
	"time"

	"git.home.luguber.info/inful/pagewright/internal/foundation/normalization"
)

// Profile selects one of the two deployment layouts of the output root.
type Profile string

const (
	// ProfileStaticSite writes to static_site/, the one-shot build layout.
	ProfileStaticSite Profile = "static_site"
	// ProfileDocs writes to docs/, the conventional static hosting path.
	ProfileDocs Profile = "docs"
)

var profileNormalizer = normalization.NewNormalizer(map[string]Profile{
	"static_site": ProfileStaticSite,
	"docs":        ProfileDocs,
}, ProfileStaticSite)

// NormalizeProfile maps raw input onto a Profile; empty input yields ProfileStaticSite.
func NormalizeProfile(raw string) (Profile, error) {
	return profileNormalizer.NormalizeWithError(raw)
}

// Directory is the output root name used by the profile.
func (p Profile) Directory() string {
	if p == ProfileDocs {
		return "docs"
	}
	return "static_site"
}

// Debounce is the profile's default debounce window.
func (p Profile) Debounce() time.Duration {
	if p == ProfileDocs {
		return time.Second
	}
	return 500 * time.Millisecond
}

// SetProfile switches profile after loading. Output directory and debounce
// window follow the new profile unless they were set to non-default values.
func (c *Config) SetProfile(p Profile) {
	if c.Output.Directory == "" || c.Output.Directory == c.Output.Profile.Directory() {
		c.Output.Directory = p.Directory()
	}
	if c.Watch.Debounce == 0 || c.Watch.Debounce == c.Output.Profile.Debounce() {
		c.Watch.Debounce = p.Debounce()
	}
	c.Output.Profile = p
}
