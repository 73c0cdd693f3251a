package endpoints

import (
	"encoding/base64"
	"fmt"
)

// BasicAuthHeaders builds the header map for HTTP basic auth.
func BasicAuthHeaders(username, password string) map[string]string {
	encoded := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", username, password)))
	return map[string]string{"Authorization": "Basic " + encoded}
}
