package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Makepad-fr/tada-lists/internal/export"
	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/session"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

const (
	msgListCreated  = "The list has been created."
	msgListUpdated  = "The list has been updated."
	msgListDeleted  = "The list has been deleted."
	msgTodoAdded    = "The todo was added."
	msgTodoDeleted  = "The todo has been deleted."
	msgTodoUpdated  = "The todo has been updated."
	msgAllCompleted = "All todos have been completed."
)

// ---------------------------------------------------
// reply helpers
// ---------------------------------------------------

func redirect(path string) reply {
	return func(c *gin.Context) {
		code := http.StatusSeeOther
		if c.Request.Method == http.MethodGet {
			code = http.StatusFound
		}
		c.Redirect(code, path)
	}
}

func render(code int, name string, data any) reply {
	return func(c *gin.Context) { c.HTML(code, name, data) }
}

func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func listPath(id int) string { return fmt.Sprintf("/lists/%d", id) }

// loadList resolves the :id param. On failure the error notice is set and
// the returned reply sends the user back to the overview.
func loadList(c *gin.Context, d *session.Data) (*model.List, reply) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		d.Flash.Error = todo.ErrListNotFound.Message
		return nil, redirect("/lists")
	}
	l, err := d.Store.FindList(id)
	if err != nil {
		d.Flash.Error = err.Error()
		return nil, redirect("/lists")
	}
	return l, nil
}

// loadTodo resolves :todo_id inside l, same contract as loadList.
func loadTodo(c *gin.Context, d *session.Data, l *model.List) (*model.Todo, reply) {
	id, err := strconv.Atoi(c.Param("todo_id"))
	if err != nil {
		d.Flash.Error = todo.ErrTodoNotFound.Message
		return nil, redirect("/lists")
	}
	t, err := todo.FindTodo(l, id)
	if err != nil {
		d.Flash.Error = err.Error()
		return nil, redirect("/lists")
	}
	return t, nil
}

func (s *Server) listPage(code int, d *session.Data, l *model.List, todoName string) reply {
	return render(code, "list", listPage{
		Flash:    d.TakeFlash(),
		List:     newListView(indexOf(d.Store.Lists, l.ID), *l),
		Todos:    sortedTodoViews(l.Todos),
		TodoName: todoName,
	})
}

// ---------------------------------------------------
// lists
// ---------------------------------------------------

func (s *Server) handleLists(c *gin.Context, d *session.Data) reply {
	return render(http.StatusOK, "lists", listsPage{
		Flash: d.TakeFlash(),
		Lists: sortedListViews(d.Store.Lists),
	})
}

func (s *Server) handleNewList(c *gin.Context, d *session.Data) reply {
	return render(http.StatusOK, "new_list", listFormPage{Flash: d.TakeFlash()})
}

func (s *Server) handleCreateList(c *gin.Context, d *session.Data) reply {
	name := strings.TrimSpace(c.PostForm("list_name"))
	if _, err := d.Store.CreateList(name); err != nil {
		d.Flash.Error = err.Error()
		return render(http.StatusUnprocessableEntity, "new_list", listFormPage{
			Flash:    d.TakeFlash(),
			ListName: name,
		})
	}
	d.Flash.Success = msgListCreated
	return redirect("/lists")
}

func (s *Server) handleShowList(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	return s.listPage(http.StatusOK, d, l, "")
}

func (s *Server) handleEditList(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	return render(http.StatusOK, "edit_list", listFormPage{
		Flash:    d.TakeFlash(),
		List:     newListView(indexOf(d.Store.Lists, l.ID), *l),
		ListName: l.Name,
	})
}

func (s *Server) handleRenameList(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	name := strings.TrimSpace(c.PostForm("list_name"))
	if err := d.Store.RenameList(l.ID, name); err != nil {
		d.Flash.Error = err.Error()
		return render(http.StatusUnprocessableEntity, "edit_list", listFormPage{
			Flash:    d.TakeFlash(),
			List:     newListView(indexOf(d.Store.Lists, l.ID), *l),
			ListName: name,
		})
	}
	d.Flash.Success = msgListUpdated
	return redirect(listPath(l.ID))
}

func (s *Server) handleDeleteList(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	if _, err := d.Store.DeleteList(l.ID); err != nil {
		d.Flash.Error = err.Error()
		return redirect("/lists")
	}
	d.Flash.Success = msgListDeleted
	if isXHR(c) {
		return func(c *gin.Context) { c.String(http.StatusOK, "/lists") }
	}
	return redirect("/lists")
}

func (s *Server) handleCompleteAll(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	todo.CompleteAll(l)
	d.Flash.Success = msgAllCompleted
	return redirect(listPath(l.ID))
}

func (s *Server) handleExportList(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, *l); err != nil {
		s.logger.Error("export list", "list", l.ID, "err", err)
		return func(c *gin.Context) {
			c.String(http.StatusInternalServerError, "Something went wrong.")
		}
	}
	filename := fmt.Sprintf("list-%d.pdf", l.ID)
	return func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// ---------------------------------------------------
// todos
// ---------------------------------------------------

func (s *Server) handleAddTodo(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	name := strings.TrimSpace(c.PostForm("todo"))
	if _, err := todo.AddTodo(l, name); err != nil {
		d.Flash.Error = err.Error()
		return s.listPage(http.StatusUnprocessableEntity, d, l, name)
	}
	d.Flash.Success = msgTodoAdded
	return redirect(listPath(l.ID))
}

func (s *Server) handleUpdateTodo(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	t, r := loadTodo(c, d, l)
	if r != nil {
		return r
	}
	completed := strings.TrimSpace(c.PostForm("completed")) == "true"
	if err := todo.SetCompleted(l, t.ID, completed); err != nil {
		d.Flash.Error = err.Error()
		return redirect("/lists")
	}
	d.Flash.Success = msgTodoUpdated
	return redirect(listPath(l.ID))
}

func (s *Server) handleDeleteTodo(c *gin.Context, d *session.Data) reply {
	l, r := loadList(c, d)
	if r != nil {
		return r
	}
	t, r := loadTodo(c, d, l)
	if r != nil {
		return r
	}
	todo.RemoveTodo(l, t.ID)
	if isXHR(c) {
		return func(c *gin.Context) { c.Status(http.StatusNoContent) }
	}
	d.Flash.Success = msgTodoDeleted
	return redirect(listPath(l.ID))
}
