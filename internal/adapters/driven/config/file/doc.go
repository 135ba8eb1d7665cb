// Package file loads boardsync configuration from the local filesystem.
//
// A configuration holds the ordered label to project table and optional
// GitHub client settings. Files ending in .toml are parsed with go-toml;
// everything else is parsed as JSON.
package file
