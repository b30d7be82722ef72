package problem

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError implements error + Problem Details (RFC 7807)
type APIError struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`
}

func (e APIError) Error() string { return e.Detail }

func NewBadRequest(instance, detail string, params ...InvalidParam) APIError {
	return APIError{
		Instance:      instance,
		Type:          "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/400",
		Title:         "Bad Request",
		Status:        400,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewNotFound(instance, detail string) APIError {
	return APIError{
		Instance: instance,
		Type:     "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/404",
		Title:    "Not Found",
		Status:   404,
		Detail:   detail,
	}
}
