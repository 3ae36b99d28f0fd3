// Package history records completed download sessions in a local SQLite
// database so previous invocations and per-run outcomes can be reviewed.
package history
