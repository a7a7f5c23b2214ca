package version

// Version is the semantic version of the imagesource binary. It is
// overridden at release build time via -ldflags.
var Version = "0.3.0-dev"
