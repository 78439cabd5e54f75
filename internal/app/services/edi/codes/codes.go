// Package codes holds the closed code tables shared by the response parsers.
// Every table has an explicit unknown arm; lookups never fail.
package codes
