// Package trace records the JNI entry points a caller makes and checks
// them against the pairing rule the bridge depends on: every entry point
// that can raise is followed by an exception check before the next one.
//
// Wrap an Env, run the code under test, then Verify the resulting Log.
// Logs encode to canonical CBOR and can be kept in a SQLite Store for
// later inspection with the jbridge CLI.
package trace
