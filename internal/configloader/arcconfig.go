package configloader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ArcMaxLineLengthKey is the legacy .arcconfig key for the line length limit.
const ArcMaxLineLengthKey = "lint.text.maxlinelength"

// ArcSettings are the settings gotextlint understands in an .arcconfig.
type ArcSettings struct {
	// MaxLineLength is the configured limit, 0 when absent.
	MaxLineLength int

	// Found is true when the key is present, even with an unusable value.
	Found bool
}

// ReadArcconfig reads the legacy line length setting from an .arcconfig
// JSON file. The key may be written flat ("lint.text.maxlinelength") or
// nested ({"lint": {"text": {"maxlinelength": ...}}}), as a number or a
// numeric string.
func ReadArcconfig(path string) (ArcSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArcSettings{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseArcconfig(data)
}

// ParseArcconfig parses .arcconfig content, see ReadArcconfig. Comments
// in the JSON are tolerated.
func ParseArcconfig(data []byte) (ArcSettings, error) {
	var raw map[string]any

	dec := json.NewDecoder(bytes.NewReader(stripJSONComments(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return ArcSettings{}, fmt.Errorf("parse .arcconfig: %w", err)
	}

	value, ok := lookupArcKey(raw, ArcMaxLineLengthKey)
	if !ok || value == nil {
		return ArcSettings{}, nil
	}

	n, err := arcInt(value)
	if err != nil {
		return ArcSettings{Found: true}, fmt.Errorf("%s: %w", ArcMaxLineLengthKey, err)
	}
	return ArcSettings{MaxLineLength: n, Found: true}, nil
}

func lookupArcKey(raw map[string]any, key string) (any, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}

	var cur any = raw
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func arcInt(v any) (int, error) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", val)
		}
		return int(f), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", val)
	}
}

// stripJSONComments removes // and /* */ comments outside strings.
func stripJSONComments(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		switch {
		case inSingleComment:
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
		case inMultiComment:
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
		case inString:
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
		case char == '"':
			inString = true
			result = append(result, char)
		case char == '/' && idx+1 < len(content) && content[idx+1] == '/':
			inSingleComment = true
			idx++
		case char == '/' && idx+1 < len(content) && content[idx+1] == '*':
			inMultiComment = true
			idx++
		default:
			result = append(result, char)
		}
	}

	return result
}
