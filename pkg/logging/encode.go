package logging

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/dd0wney/bytebuilder/pkg/builder"
)

// appendEntry writes one newline-terminated JSON object to line:
//
//	{"time":...,"level":...,"msg":...,"fields":{...}}
//
// "fields" is left out when there are none. When two fields share a key the
// later one wins.
func appendEntry(line *builder.Builder, now time.Time, level Level, msg string, fields []Field) {
	var ts [len(time.RFC3339Nano) + 8]byte

	line.AppendString(`{"time":"`)
	line.AppendBytes(now.AppendFormat(ts[:0], time.RFC3339Nano))
	line.AppendString(`","level":"`)
	line.AppendString(level.String())
	line.AppendString(`","msg":`)
	appendValue(line, msg)

	first := true
	for i, f := range fields {
		if shadowed(fields[i+1:], f.Key) {
			continue
		}
		if first {
			line.AppendString(`,"fields":{`)
			first = false
		} else {
			line.AppendByte(',')
		}
		appendValue(line, f.Key)
		line.AppendByte(':')
		appendValue(line, f.Value)
	}
	if !first {
		line.AppendByte('}')
	}
	line.AppendString("}\n")
}

// appendValue writes v as JSON. Values the encoder rejects are written as
// a string describing the failure so the entry itself survives.
func appendValue(line *builder.Builder, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(fmt.Sprintf("!%T: %v", v, err))
	}
	line.AppendBytes(data)
}

func shadowed(later []Field, key string) bool {
	for _, f := range later {
		if f.Key == key {
			return true
		}
	}
	return false
}
