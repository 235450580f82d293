package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/models"
)

// Older exports used upper-case keys, stored resources as a list of catalog
// labels under resources_booked, or used short keys inside resource objects.
// normalize rewrites all of these into the canonical record.
var (
	recordAliases = map[string]string{
		"resources_booked": "resources",
		"date":             "schedule_date",
		"work_order":       "work_order_number",
		"hours":            "hours_per_resource",
		"schedule_status":  "status",
	}
	resourceAliases = map[string]string{
		"id":    "employee_id",
		"name":  "employee_name",
		"role":  "role_code",
		"hours": "booked_hours",
	}
)

func normalize(raw json.RawMessage) (models.ScheduleRecord, error) {
	fields, err := canonicalObject(raw, recordAliases)
	if err != nil {
		return models.ScheduleRecord{}, err
	}

	coerceNumber(fields, "hours_per_resource")
	if res, ok := fields["resources"]; ok {
		fixed, err := normalizeResources(res)
		if err != nil {
			return models.ScheduleRecord{}, err
		}
		fields["resources"] = fixed
	}

	canonical, err := json.Marshal(fields)
	if err != nil {
		return models.ScheduleRecord{}, err
	}

	var r models.ScheduleRecord
	if err := json.Unmarshal(canonical, &r); err != nil {
		return models.ScheduleRecord{}, err
	}
	return r, nil
}

// normalizeResources accepts a list mixing assignment objects and
// "Name - ROLE" labels.
func normalizeResources(raw json.RawMessage) (json.RawMessage, error) {
	if isNull(raw) {
		return raw, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("resources must be a list: %w", err)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		var label string
		if err := json.Unmarshal(item, &label); err == nil {
			out = append(out, catalog.ParseResourceLabel(label))
			continue
		}
		obj, err := canonicalObject(item, resourceAliases)
		if err != nil {
			return nil, fmt.Errorf("resource entry: %w", err)
		}
		coerceNumber(obj, "booked_hours")
		out = append(out, obj)
	}
	return json.Marshal(out)
}

// canonicalObject decodes an object, lower-cases its keys and applies aliases.
// A canonical key wins over an alias that maps to it.
func canonicalObject(raw json.RawMessage, aliases map[string]string) (map[string]json.RawMessage, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("expected an object, got null")
	}
	var in map[string]json.RawMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("expected an object: %w", err)
	}

	out := make(map[string]json.RawMessage, len(in))
	aliased := make(map[string]json.RawMessage)
	for k, v := range in {
		key := strings.ToLower(strings.TrimSpace(k))
		if target, ok := aliases[key]; ok {
			aliased[target] = v
			continue
		}
		out[key] = v
	}
	for k, v := range aliased {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out, nil
}

// coerceNumber rewrites a quoted number such as "8" into a JSON number and a
// blank string into null. Anything else is left for the decoder to reject.
func coerceNumber(fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		fields[key] = json.RawMessage("null")
		return
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	fields[key] = json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

type objectEntry struct {
	key   string
	value json.RawMessage
}

// orderedObject decodes a JSON object keeping document order, so imported
// records are merged in the order they were exported.
type orderedObject []objectEntry

func (o *orderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}

	var entries orderedObject
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		entries = append(entries, objectEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = entries
	return nil
}
