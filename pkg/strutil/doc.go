// Package strutil provides helpers working on slices of strings, such as looking up
// a substring in every element of a slice with a selectable comparison.
package strutil
