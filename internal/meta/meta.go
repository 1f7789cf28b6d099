package meta

// Version is overridden at build time with
// -ldflags "-X dropsort/internal/meta.Version=v1.2.3".
var Version = "dev"
