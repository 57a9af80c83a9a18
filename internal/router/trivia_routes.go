package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/handler"
)

// RegisterTrivia mounts the question bank and quiz endpoints.
func RegisterTrivia(e *echo.Echo, h *handler.TriviaHandler, m scoped) {
	e.GET("/categories", h.ListCategories, m.read...)
	e.GET("/categories/:id/questions", h.QuestionsByCategory, m.read...)
	e.GET("/questions", h.ListQuestions, m.read...)

	e.POST("/questions", h.CreateQuestion, m.write...)
	e.DELETE("/questions/:id", h.DeleteQuestion, m.write...)

	e.POST("/questions/search", h.SearchQuestions, m.query...)
	e.POST("/quizzes", h.PlayQuiz, m.query...)
}
