// Package misc holds build time program identification.
package misc

// set by linker, see Taskfile.yml
var (
	appName = "cblocks"
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
