package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Fields holds the listing/profile attributes a client sends that the API does not model
// explicitly. They are stored inline in the document and echoed back in JSON.
type Fields map[string]interface{}

// marshalWithFields encodes typed and merges extra keys that typed does not already carry.
func marshalWithFields(typed interface{}, extra Fields) ([]byte, error) {
	b, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}

	merged := make(map[string]json.RawMessage, len(extra)+8)
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// unmarshalWithFields decodes data into typed and returns every key typed has no field for.
func unmarshalWithFields(data []byte, typed interface{}) (Fields, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k := range jsonKeys(typed) {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Fields(all), nil
}

func jsonKeys(v interface{}) map[string]struct{} {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
		// bson names can differ from json names; both are reserved so the inline map never
		// shadows a struct field on encode.
		if bsonName := strings.Split(f.Tag.Get("bson"), ",")[0]; bsonName != "" {
			keys[bsonName] = struct{}{}
		}
	}
	return keys
}
