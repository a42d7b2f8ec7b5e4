// Package catalog loads the version catalog ("bin list"): a plain text
// registry mapping package names to the highest version already built.
//
// Each line holds at least two whitespace separated fields, a package name
// and a file name ending in -<semver>:
//
//	widget   widget-1.2.0
//	gadget   gadget-0.9.1+build.7  extra fields are ignored
//
// Lines with fewer than two fields make the whole catalog unusable. Lines
// whose second field carries no parseable version are skipped. When a name
// repeats, the later line wins.
package catalog
