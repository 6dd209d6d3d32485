// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// State is the tokenizer state a message was logged from
	State = "state"

	// TokenType is the kind of an emitted token
	TokenType = "tokenType"

	// TokenName is the tag or entity name of an emitted token
	TokenName = "tokenName"

	// Construct names a markup construct, e.g. "tag" or "comment"
	Construct = "construct"

	// Bytes is a size in bytes
	Bytes = "bytes"

	// Path is a file system path
	Path = "path"

	// Charset is the character encoding of an input
	Charset = "charset"

	// Limit is a size limit in characters
	Limit = "limit"
)
