package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response общий конверт всех JSON ответов API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"` // Детали ошибки, только в development
}

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithData отправляет успешный ответ с данными
func RespondWithData(w http.ResponseWriter, r *http.Request, statusCode int, message string, data interface{}) {
	RespondWithJSON(w, r, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithList отправляет успешный ответ со списком и количеством элементов
func RespondWithList(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	RespondWithJSON(w, r, http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}
