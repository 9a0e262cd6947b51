package blog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// mediaAliases maps each canonical media field to the legacy names older
// backends still send. The canonical field wins when it carries a value.
var mediaAliases = []struct {
	canonical string
	aliases   []string
}{
	{canonical: "originalName", aliases: []string{"fileName"}},
	{canonical: "url", aliases: []string{"originalUrl"}},
	{canonical: "size", aliases: []string{"fileSize"}},
}

// NormalizeMedia decodes a raw media record from the API into the stable
// Media shape. Missing names decode to "" and a missing size to 0.
func NormalizeMedia(raw json.RawMessage) (Media, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Media{}, fmt.Errorf("decoding media record: %w", err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}

	for _, rule := range mediaAliases {
		if !emptyJSON(fields[rule.canonical]) {
			continue
		}
		for _, alias := range rule.aliases {
			if v := fields[alias]; !emptyJSON(v) {
				fields[rule.canonical] = v
				break
			}
		}
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return Media{}, fmt.Errorf("re-encoding media record: %w", err)
	}
	var m Media
	if err := json.Unmarshal(merged, &m); err != nil {
		return Media{}, fmt.Errorf("decoding normalized media record: %w", err)
	}
	return m, nil
}

// NormalizeMediaList normalizes every record in raws.
func NormalizeMediaList(raws []json.RawMessage) ([]Media, error) {
	out := make([]Media, 0, len(raws))
	for i, raw := range raws {
		m, err := NormalizeMedia(raw)
		if err != nil {
			return nil, fmt.Errorf("media record %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// emptyJSON treats absent, null, "" and 0 as "no value".
func emptyJSON(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "", "null", `""`, "0":
		return true
	}
	return false
}
