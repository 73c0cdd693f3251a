package helpers

import (
	"encoding/json"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// AsJSON is just a shortcut for calling json.Marshal and taking only the first result.
func AsJSON(value interface{}) []byte {
	ret, _ := json.Marshal(value)
	return ret
}

// AsJSONString calls json.Marshal and returns the result as a string.
func AsJSONString(value interface{}) string { return string(AsJSON(value)) }

// AsJSONValue calls json.Marshal and returns the result as an ldvalue.Value. The Value type
// is convenient in test code to represent arbitrary JSON data.
func AsJSONValue(value interface{}) ldvalue.Value { return ldvalue.Parse(AsJSON(value)) }
