package install

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

var configurationKeys = jsonKeys(reflect.TypeOf(Configuration{}), "packagesStore", "base")

var partitionKeys = jsonKeys(reflect.TypeOf(Partition{}),
	"installAlongPartitions", "system_storage_info", "system_storage_info_current")

// jsonKeys collects the json tag names of t's fields plus extra.
func jsonKeys(t reflect.Type, extra ...string) map[string]bool {
	keys := make(map[string]bool, t.NumField()+len(extra))
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		keys[name] = true
	}
	for _, e := range extra {
		keys[e] = true
	}
	return keys
}

// exactKeys drops the members of the JSON object in b whose key is not in
// known. encoding/json matches keys case-insensitively, so "KERNEL" would
// otherwise land in the kernel field. Non-object input is returned as is.
func exactKeys(b []byte, known map[string]bool) ([]byte, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return b, nil
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, err
	}
	dropped := false
	for k := range members {
		if !known[k] {
			delete(members, k)
			dropped = true
		}
	}
	if !dropped {
		return b, nil
	}
	return json.Marshal(members)
}
