package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskboard/internal/ai"
	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	tasks     service.TaskService
	issuer    *auth.TokenIssuer
	generator ai.Generator
	aiTimeout time.Duration
	storage   storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	tasks service.TaskService,
	issuer *auth.TokenIssuer,
	generator ai.Generator,
	aiTimeout time.Duration,
	store storage.Service,
	bucket, keyPrefix string,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	if aiTimeout <= 0 {
		aiTimeout = 15 * time.Second
	}
	return &Handler{
		users:     users,
		tasks:     tasks,
		issuer:    issuer,
		generator: generator,
		aiTimeout: aiTimeout,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
		}

		tasks := api.Group("/tasks", h.authRequired())
		{
			tasks.GET("", h.listTasks)
			tasks.POST("", h.createTask)
			tasks.GET("/:id", h.getTask)
			tasks.PUT("/:id", h.updateTask)
			tasks.DELETE("/:id", h.deleteTask)
			tasks.PATCH("/:id/status", h.updateTaskStatus)
		}

		aiGroup := api.Group("/ai", h.authRequired())
		{
			aiGroup.POST("/suggest", h.suggestDescription)
		}

		exports := api.Group("/exports", h.authRequired())
		{
			exports.POST("", h.exportTasks)
			exports.GET("", h.listExports)
		}
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	TotalMinutes *int    `json:"totalMinutes"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type suggestRequest struct {
	Title string `json:"title"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    userToResponse(user),
		"token":   token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    userToResponse(user),
		"token":   token,
	})
}

func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) getTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(*task)})
}

func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), currentUser(c), req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"data":    taskToResponse(*task),
	})
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		TotalMinutes: req.TotalMinutes,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), currentUser(c), id, update)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"data":    taskToResponse(*task),
	})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *Handler) updateTaskStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.SetStatus(c.Request.Context(), currentUser(c), id, domain.TaskStatus(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status updated successfully",
		"data":    taskToResponse(*task),
	})
}

func (h *Handler) suggestDescription(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	if h.generator == nil {
		c.JSON(http.StatusOK, gin.H{"description": ai.FallbackDescription(req.Title)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.aiTimeout)
	defer cancel()

	description, err := h.generator.GenerateDescription(ctx, req.Title)
	if err != nil {
		// generator failure is recoverable; never a 5xx for the caller
		h.logger.WithError(err).Warn("ai suggestion failed, using fallback")
		c.JSON(http.StatusOK, gin.H{"description": ai.FallbackDescription(req.Title)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

type exportSnapshot struct {
	ExportedAt string         `json:"exportedAt"`
	UserID     int64          `json:"userId"`
	Email      string         `json:"email"`
	Tasks      []taskResponse `json:"tasks"`
}

func (h *Handler) exportTasks(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage not configured"})
		return
	}

	user := currentUser(c)
	tasks, err := h.tasks.List(c.Request.Context(), user)
	if err != nil {
		h.renderError(c, err)
		return
	}

	snapshot := exportSnapshot{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		UserID:     user.ID,
		Email:      user.Email,
		Tasks:      make([]taskResponse, len(tasks)),
	}
	for i := range tasks {
		snapshot.Tasks[i] = taskToResponse(tasks[i])
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		h.renderError(c, err)
		return
	}

	key := fmt.Sprintf("%s/%s", h.userExportPrefix(user.ID), fmt.Sprintf("export-%s.json", uuid.NewString()))
	location, err := h.storage.UploadSnapshot(c.Request.Context(), h.bucket, key, body)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"location": location,
		"count":    len(tasks),
	})
}

func (h *Handler) listExports(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage not configured"})
		return
	}

	// the prefix is scoped to the caller, so exports of other users are
	// not enumerable
	prefix := h.userExportPrefix(currentUser(c).ID) + "/"
	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, prefix)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]exportObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) userExportPrefix(userID int64) string {
	return fmt.Sprintf("%s/user-%d", h.keyPrefix, userID)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
	case errors.Is(err, service.ErrNoUpdateFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields provided for update"})
	case errors.Is(err, service.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
	case errors.Is(err, service.ErrNegativeMinutes):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total minutes cannot be negative"})
	case errors.Is(err, service.ErrEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
	case errors.Is(err, service.ErrPasswordRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		h.logger.WithError(err).Error("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type taskResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	TotalMinutes int    `json:"totalMinutes"`
	UserID       int64  `json:"userId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type exportObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func taskToResponse(task domain.Task) taskResponse {
	return taskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		TotalMinutes: task.TotalMinutes,
		UserID:       task.UserID,
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}
}

func objectToResponse(obj storage.ObjectInfo) exportObjectResponse {
	resp := exportObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
