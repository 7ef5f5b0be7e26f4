// Package argparse turns a flat list of command-line tokens into a key/value mapping.
//
// Only long options are recognized. A token is an option when it starts with "--" and has
// at least one more character. Its value is either written inline ("--key=value") or taken
// from the following token ("--key value"), unless that token looks like another option, in
// which case the value is empty. Any other token is ignored.
//
// Keys keep their leading dashes and are compared case-insensitively.
package argparse
