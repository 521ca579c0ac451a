// Package misc keeps build time information.
package misc

// Values are replaced at link time:
//
//	-X fontget/misc.version=... -X fontget/misc.gitHash=...
var (
	appName = "fontget"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
