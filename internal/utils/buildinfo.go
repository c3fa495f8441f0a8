// Package utils provides helper functions, including version retrieval.
package utils

import (
	"runtime/debug"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	vcsRevisionSetting = "vcs.revision"
	shortRevisionWidth = 12
)

// Version is injected at build time with -ldflags "-X github.com/temirov/promptpack/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the linked version, the module version, or the VCS revision, in that order.
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == vcsRevisionSetting && setting.Value != EmptyString {
			revision := setting.Value
			if len(revision) > shortRevisionWidth {
				revision = revision[:shortRevisionWidth]
			}
			return revision
		}
	}
	return unknownVersion
}
