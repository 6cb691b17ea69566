package rocketleague

import "github.com/blang/semver"

// Version is the library version reported in the User-Agent header
const Version = "0.1.0"

// UserAgentProduct is the product token of the default User-Agent
const UserAgentProduct = "go-rocket-league"

// DefaultUserAgent returns "go-rocket-league/<version>"
func DefaultUserAgent() string {
	return UserAgentProduct + "/" + Version
}

// SemVer returns the parsed library version
func SemVer() semver.Version {
	return semver.MustParse(Version)
}
