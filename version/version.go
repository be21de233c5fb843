// Package version holds build information, set with -ldflags at release time.
package version

// AppVersion is overwritten with -ldflags "-X querry/version.AppVersion=...".
var AppVersion = "dev"
