// Package registry maps schema source kinds (e.g. "hcl", "sqlite") to the
// factories that construct them.
//
// A Registry is an explicit value: it is built once at startup by calling
// Register on each Module, then handed to the application. There is no
// package-level registration, so tests can assemble a registry holding only
// the sources they need.
package registry
