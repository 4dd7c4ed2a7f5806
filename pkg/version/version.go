package version

// Set at build time with -ldflags "-X github.com/dexora-ai/dexora/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
)
