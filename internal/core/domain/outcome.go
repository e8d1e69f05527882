package domain

// Outcome is the uniform result returned for expected business conditions.
// Success outcomes carry data and no status; failures always carry a status.
type Outcome struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status,omitempty"`
	Data    any    `json:"data"`
}

// Success builds a success outcome for kind with an optional payload.
func Success(kind Kind, data any) Outcome {
	info := kind.Info()
	return Outcome{
		Kind:    kind,
		Code:    info.Code,
		Message: info.Message,
		Data:    data,
	}
}

// Failure builds an error outcome for kind. data is usually nil but may carry
// diagnostic payloads such as an upstream response body.
func Failure(kind Kind, data any) Outcome {
	info := kind.Info()
	return Outcome{
		Kind:    kind,
		Code:    info.Code,
		Message: info.Message,
		Status:  info.Status,
		Data:    data,
	}
}

// IsSuccess reports whether the outcome is the success flavour.
func (o Outcome) IsSuccess() bool {
	return o.Status == 0
}

// HTTPStatus resolves the status code used when the outcome is rendered.
func (o Outcome) HTTPStatus() int {
	if o.Status != 0 {
		return o.Status
	}
	return o.Kind.Info().Status
}
