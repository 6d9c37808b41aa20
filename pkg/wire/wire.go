// Package wire implements the line protocol spoken between the Coup server
// and its clients: semicolon-separated fields, newline-terminated records,
// and a closed set of typed commands and responses.
//
// Decoding is total. Anything that does not parse into a known message is
// "no message", which the server charges to the sender as a rule violation.
package wire

import (
	"strconv"
	"strings"
)

const (
	// FieldSep separates fields within a record.
	FieldSep = ";"
	// RecordEnd terminates a record.
	RecordEnd = "\n"
	// ControlReplace substitutes for both separators inside free-form
	// strings such as player names and debug text.
	ControlReplace = ","
)

// Message is one protocol record: a variant name plus positional fields.
// The field serializer is unexported so the command and response unions
// stay closed to this package.
type Message interface {
	MsgName() string
	fields() []string
}

// Command is a server-to-client message.
type Command interface {
	Message
	isCommand()
}

// Response is a client-to-server message.
type Response interface {
	Message
	isResponse()
}

// Encode serializes m into a single wire record, terminator included.
func Encode(m Message) string {
	fields := m.fields()
	if len(fields) == 0 {
		return m.MsgName() + RecordEnd
	}
	return m.MsgName() + FieldSep + strings.Join(fields, FieldSep) + RecordEnd
}

// Split breaks a read chunk into serialized records. A chunk may hold
// zero, one, or many records; empty fragments are dropped.
func Split(chunk string) []string {
	var records []string
	for _, rec := range strings.Split(chunk, RecordEnd) {
		if rec != "" {
			records = append(records, rec)
		}
	}
	return records
}

// Clean replaces both separators in free-form text so user-supplied
// strings can never break framing.
func Clean(s string) string {
	s = strings.ReplaceAll(s, FieldSep, ControlReplace)
	return strings.ReplaceAll(s, RecordEnd, ControlReplace)
}

// split cuts one record into its name and field list, tolerating a
// trailing terminator.
func split(record string) (string, []string) {
	record = strings.TrimSuffix(record, RecordEnd)
	parts := strings.Split(record, FieldSep)
	return parts[0], parts[1:]
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True":
		return true, true
	case "False":
		return false, true
	}
	return false, false
}

func formatInt(n int) string { return strconv.Itoa(n) }

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
