// Package collector stages the application's primary jar and its dependency
// jars into the directory the packaging tool consumes.
package collector
