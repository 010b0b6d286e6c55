package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
)

// String returns the version line printed by -version.
func String() string {
	return "png2hex " + Version + " (" + GitSHA + ")"
}
