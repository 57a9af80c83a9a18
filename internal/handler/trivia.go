package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/service"
)

// TriviaHandler serves the question bank and the quiz.
type TriviaHandler struct {
	Questions  *repository.QuestionRepo
	Categories *repository.CategoryRepo
	Picker     *service.QuizPicker
	PageSize   int
	Events     queue.Publisher
}

// NewTriviaHandler panics if a repository or the picker is missing.
func NewTriviaHandler(questions *repository.QuestionRepo, categories *repository.CategoryRepo, picker *service.QuizPicker, pageSize int, events queue.Publisher) *TriviaHandler {
	if questions == nil || categories == nil || picker == nil {
		panic("nil dependency passed to NewTriviaHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &TriviaHandler{Questions: questions, Categories: categories, Picker: picker, PageSize: pageSize, Events: events}
}

// ListCategories handles GET /categories.
func (h *TriviaHandler) ListCategories(c echo.Context) error {
	cats, err := h.Categories.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"categories": model.CategoryMap(cats),
	})
}

// ListQuestions handles GET /questions?page=N.  A page with no questions,
// including page 1 of an empty bank, is a 404.
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
	ctx := c.Request().Context()
	n, _ := strconv.Atoi(c.QueryParam("page")) // junk means page 1
	qs, total, err := h.Questions.ListPage(ctx, repository.NewPage(n, h.PageSize))
	if err != nil {
		return err
	}
	cats, err := h.Categories.Referenced(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"questions":        qs,
		"total_questions":  total,
		"categories":       model.CategoryMap(cats),
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/:id.
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Questions.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	emit(c, h.Events, "trivia", "question", queue.ActionDeleted, id, "")
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Question deleted",
		"deleted": id,
	})
}

type createQuestionRequest struct {
	Question   string   `json:"question" form:"question"`
	Answer     string   `json:"answer" form:"answer"`
	Category   *flexInt `json:"category" form:"category"`
	Difficulty *flexInt `json:"difficulty" form:"difficulty"`
}

// CreateQuestion handles POST /questions.  Every field is required; an
// unknown category is a 422.
func (h *TriviaHandler) CreateQuestion(c echo.Context) error {
	var body createQuestionRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	q := &model.Question{
		Question: strings.TrimSpace(body.Question),
		Answer:   strings.TrimSpace(body.Answer),
	}
	switch {
	case q.Question == "" || q.Answer == "":
		return apperr.Invalidf("question and answer are required")
	case body.Category == nil || *body.Category <= 0:
		return apperr.Invalidf("category is required")
	case body.Difficulty == nil:
		return apperr.Invalidf("difficulty is required")
	}
	q.CategoryID = uint64(*body.Category)
	q.Difficulty = int(*body.Difficulty)

	if err := h.Questions.Create(c.Request().Context(), q); err != nil {
		return err
	}
	emit(c, h.Events, "trivia", "question", queue.ActionCreated, q.ID, q.Question)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Question added",
		"created": q.ID,
	})
}

// SearchQuestions handles POST /questions/search.  A missing or empty
// searchTerm matches every question.
func (h *TriviaHandler) SearchQuestions(c echo.Context) error {
	var body struct {
		SearchTerm string `json:"searchTerm" form:"searchTerm"`
	}
	if err := bindBody(c, &body); err != nil {
		return err
	}
	ctx := c.Request().Context()
	qs, total, err := h.Questions.Search(ctx, strings.TrimSpace(body.SearchTerm))
	if err != nil {
		return err
	}
	cats, err := h.Categories.ForQuestions(ctx, qs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"questions":      qs,
		"totalQuestions": total,
		"categories":     model.CategoryMap(cats),
	})
}

// QuestionsByCategory handles GET /categories/:id/questions.  An unknown or
// empty category is a 404.
func (h *TriviaHandler) QuestionsByCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	qs, err := h.Questions.ByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return apperr.NotFoundf("no questions in category %s", cat.Type)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"questions":        qs,
		"total_questions":  len(qs),
		"current_category": cat.Type,
	})
}

type quizRequest struct {
	QuizCategory *struct {
		ID   *flexInt `json:"id"`
		Type string  `json:"type"`
	} `json:"quiz_category"`
	PreviousQuestions *flexIDs `json:"previous_questions"`
}

// PlayQuiz handles POST /quizzes.  It returns the next unseen question, or
// question:false once the category has been exhausted.
func (h *TriviaHandler) PlayQuiz(c echo.Context) error {
	var body quizRequest
	if err := bindBody(c, &body); err != nil {
		return apperr.Wrap(apperr.Unprocessable, err, "")
	}
	if body.QuizCategory == nil || body.QuizCategory.ID == nil || *body.QuizCategory.ID < 0 || body.PreviousQuestions == nil {
		return apperr.Unprocessablef("quiz_category and previous_questions are required")
	}

	q, err := h.Picker.Next(c.Request().Context(), uint64(*body.QuizCategory.ID), body.PreviousQuestions.uint64s())
	if err != nil {
		return err
	}
	var question any = false
	if q != nil {
		question = q
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}
