// Пакет errors — конструкторы стандартных ошибок API colorsense.
// Единый формат: {"success": false, "code": "...", "message": "...", "error": "..."}.
// Поле error (техническая деталь) отдаётся только вне production.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Коды ошибок.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeNotConfigured       = "NOT_CONFIGURED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// emptyList — пустой список данных для деградировавших ответов листинга.
var emptyList = json.RawMessage("[]")

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание,
// detail — техническая деталь (пустая строка — не отдаётся).
func WriteError(w http.ResponseWriter, statusCode int, code, message, detail string) {
	writeBody(w, statusCode, errorBody{Code: code, Message: message, Error: detail})
}

func writeBody(w http.ResponseWriter, statusCode int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message, detail)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message, detail)
}

// MethodNotAllowed — 405 метод не поддерживается.
func MethodNotAllowed(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, message, "")
}

// RateLimited — 429 LLM-провайдер ограничил частоту запросов.
func RateLimited(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusTooManyRequests, CodeRateLimited, message, detail)
}

// UpstreamUnavailable — 502 LLM-провайдер недоступен или вернул пустой ответ.
func UpstreamUnavailable(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusBadGateway, CodeUpstreamUnavailable, message, detail)
}

// NotConfigured — 503 функция не настроена.
func NotConfigured(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusServiceUnavailable, CodeNotConfigured, message, detail)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message, detail string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message, detail)
}

// EmptyResult — 500 ошибка хранилища при листинге или поиске.
// Ответ содержит пустой список data, чтобы клиент показал пустой результат.
func EmptyResult(w http.ResponseWriter, message, detail string) {
	writeBody(w, http.StatusInternalServerError, errorBody{
		Code:    CodeInternalError,
		Message: message,
		Error:   detail,
		Data:    emptyList,
	})
}
