package http

import (
	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// Classify sorts a response into success, application failure or transport
// failure. On success it fills resp.Data when the body is JSON. It never
// panics, whatever the body.
func Classify(resp *rocketchat.Response) error {
	var decoded any

	decodeErr := json.Unmarshal(resp.Body, &decoded)

	if resp.StatusCode >= constants.SuccessStatusMin && resp.StatusCode <= constants.SuccessStatusMax {
		if decodeErr == nil {
			resp.Data = decoded
			resp.IsJSON = true
		}

		return nil
	}

	if decodeErr != nil {
		return &rocketchat.TransportError{StatusCode: resp.StatusCode, Text: resp.Text()}
	}

	object, isObject := decoded.(map[string]any)
	if isObject {
		if success, ok := object["success"].(bool); ok && !success {
			return &rocketchat.APIError{
				StatusCode: resp.StatusCode,
				Text:       resp.Text(),
				Body:       object,
				Message:    errorMessage(object),
				ErrorType:  stringField(object, "errorType"),
			}
		}
	}

	return &rocketchat.TransportError{StatusCode: resp.StatusCode, Text: resp.Text(), Body: decoded}
}

func errorMessage(object map[string]any) string {
	if msg := stringField(object, "error"); msg != "" {
		return msg
	}

	if msg := stringField(object, "message"); msg != "" {
		return msg
	}

	return rocketchat.UnknownAPIErrorMessage
}

func stringField(object map[string]any, key string) string {
	value, _ := object[key].(string)

	return value
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return constants.OutcomeSuccess
	case rocketchat.IsAPIError(err):
		return constants.OutcomeAPIError
	default:
		return constants.OutcomeTransport
	}
}
