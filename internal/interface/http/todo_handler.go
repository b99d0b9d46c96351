package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-api/internal/application"
	"todo-api/internal/domain/repository"
	"todo-api/internal/interface/middleware"
	"todo-api/pkg/helpers"
	"todo-api/pkg/response"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     *int64 `json:"dueDate"`
}

// updateTodoRequest uses pointers throughout: a nil field was absent from
// the body and must leave the stored value untouched.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *int64  `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

// fail maps a service error onto the response taxonomy. Anything unexpected
// is logged with detail server-side and answered generically.
func (h *TodoHandler) fail(c *gin.Context, err error, logMsg string) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Validation(c, ve.Fields)
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, "Todo not found")
	default:
		helpers.LogError(h.Logger, logMsg, err, logrus.Fields{"user_id": c.GetString(middleware.CtxUserIDKey)})
		response.ServerError(c)
	}
}

// Create handles POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindDetails(err))
		return
	}

	todo, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.fail(c, err, "create todo failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Todo created successfully", "todo": todo})
}

// List handles GET /api/todos with optional completed and overdue filters.
func (h *TodoHandler) List(c *gin.Context) {
	var in application.ListTodosInput

	if raw, ok := c.GetQuery("completed"); ok {
		switch raw {
		case "true", "false":
			v := raw == "true"
			in.Completed = &v
		default:
			response.Validation(c, response.FieldErrors{"completed": `Filter must be "true" or "false"`})
			return
		}
	}
	in.Overdue = c.Query("overdue") == "true"

	todos, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), in)
	if err != nil {
		h.fail(c, err, "list todos failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todos retrieved successfully",
		"count":   len(todos),
		"todos":   todos,
	})
}

// Get handles GET /api/todos/:id
func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "get todo failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo retrieved successfully", "todo": todo})
}

// Update handles PUT /api/todos/:id with partial-update semantics.
func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindDetails(err))
		return
	}

	todo, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), application.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		h.fail(c, err, "update todo failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo updated successfully", "todo": todo})
}

// Delete handles DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	todo, err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "delete todo failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully", "todo": todo})
}

// Toggle handles PATCH /api/todos/:id/toggle
func (h *TodoHandler) Toggle(c *gin.Context) {
	todo, err := h.Svc.Toggle(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "toggle todo failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo status toggled successfully", "todo": todo})
}
