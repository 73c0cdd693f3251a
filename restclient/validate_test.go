package restclient

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySuccessForAll2xxStatuses(t *testing.T) {
	for status := 200; status <= 299; status++ {
		result := Classify(ResponseOutcome{StatusCode: status})
		assert.True(t, result.Success, "status %d should classify as success", status)
		assert.Equal(t, status, result.StatusCode)
		assert.NotEmpty(t, result.Message)
	}
}

func TestClassifyExplicitlyTabledStatuses(t *testing.T) {
	for _, p := range []struct {
		status          int
		expectedPhrase  string
		expectedSuccess bool
	}{
		{200, "OK", true},
		{401, "Unauthorized", false},
		{403, "Forbidden", false},
		{404, "Not Found", false},
		{500, "Internal Server Error", false},
	} {
		t.Run(fmt.Sprintf("%d", p.status), func(t *testing.T) {
			result := Classify(ResponseOutcome{StatusCode: p.status})
			assert.Equal(t, p.expectedSuccess, result.Success)
			assert.Equal(t, p.status, result.StatusCode)
			assert.Contains(t, result.Message, p.expectedPhrase)
		})
	}
}

func TestClassifyGenericFailureForUntabledStatuses(t *testing.T) {
	for status := 100; status <= 599; status++ {
		if status >= 200 && status <= 299 {
			continue
		}
		if _, tabled := statusMessages[status]; tabled {
			continue
		}
		result := Classify(ResponseOutcome{StatusCode: status})
		assert.False(t, result.Success, "status %d should classify as failure", status)
		assert.Equal(t, fmt.Sprintf("unexpected status %d", status), result.Message)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for _, status := range []int{200, 204, 401, 418, 503} {
		outcome := ResponseOutcome{StatusCode: status}
		assert.Equal(t, Classify(outcome), Classify(outcome))
	}
}
