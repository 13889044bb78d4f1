// Package lockboxtest provides helpers for testing lockbox extensions.
package lockboxtest
