package version

// Version is the current wikipath release
var Version = "0.1.0"
