package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeQuery rango opcional en formato YYYY-MM-DD.
type DateRangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}
