package version

// Set at build time with -ldflags "-X github.com/san-kum/twolink/internal/version.Version=...".
var (
	Version   = "dev"
	GitSHA    = "unknown"
	BuildTime = "unknown"
)

// String is the version line printed by the CLI.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
