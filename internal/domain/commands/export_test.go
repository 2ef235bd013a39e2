package commands

// VerifyCommits exports verifyCommits for testing.
var VerifyCommits = verifyCommits //nolint:gochecknoglobals // test export

// ResolveChanges exports resolveChanges for testing.
var ResolveChanges = resolveChanges //nolint:gochecknoglobals // test export

// TrimVersionPrefix exports trimVersionPrefix for testing.
var TrimVersionPrefix = trimVersionPrefix //nolint:gochecknoglobals // test export
