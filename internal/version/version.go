package version

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return Version + " (" + Commit + ", " + BuildDate + ")"
}
