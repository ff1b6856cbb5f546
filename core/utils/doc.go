// Package utils provides small helpers shared across storage-probe packages,
// such as the BLAKE3 content digest used for read-back verification.
package utils
