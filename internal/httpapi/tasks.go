package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/models"
)

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "id")

	var req taskRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	task := &models.Task{
		ID:          uuid.New().String(),
		HouseholdID: householdID,
		Title:       req.Title,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if err := s.store.CreateTask(r.Context(), task); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTaskDTO(task))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTaskDTO(task))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req taskRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	task.Title = req.Title
	task.AssigneeID = req.AssigneeID
	task.DueDate = req.DueDate
	task.Done = req.Done
	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTaskDTO(task))
}

func (s *Server) markTaskDone(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	task.Done = true
	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTaskDTO(task))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusNoContent, nil)
}
