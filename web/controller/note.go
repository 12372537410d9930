package controller

import (
	"net/http"

	"gerisafe/database"
	"gerisafe/logger"
	"gerisafe/web/entity"
	"gerisafe/web/service"
	"gerisafe/web/session"

	"github.com/gin-gonic/gin"
)

// NoteController serves the per-subject note board: listing every
// clinician's notes and upserting the caller's own note.
type NoteController struct {
	BaseController

	catalogService service.CatalogService
	noteService    service.NoteService
}

func NewNoteController(g *gin.RouterGroup) *NoteController {
	a := &NoteController{}
	a.initRouter(g)
	return a
}

func (a *NoteController) initRouter(g *gin.RouterGroup) {
	g.GET("/:category/:name/notes/", a.checkLogin, a.showNotes)
	g.GET("/:category/:name/submit_notes/", a.checkLogin, a.submitNotes)
	g.POST("/:category/:name/submit_notes/", a.checkLogin, a.submitNotes)
}

// resolveSubject maps the URL to a Subject or renders the not-found page.
func (a *NoteController) resolveSubject(c *gin.Context) *service.Subject {
	subject, err := a.catalogService.ResolveSubject(c.Param("category"), c.Param("name"))
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("resolve subject err:", err)
		}
		ErrorPage(c)
		return nil
	}
	return subject
}

func (a *NoteController) showNotes(c *gin.Context) {
	subject := a.resolveSubject(c)
	if subject == nil {
		return
	}

	notes, err := a.noteService.NotesForSubject(subject)
	if err != nil {
		logger.Warning("list notes err:", err)
		ErrorPage(c)
		return
	}
	html(c, "notes.html", "Notes for "+subject.Name(), gin.H{
		"subject": subject.Name(),
		"notes":   notes,
	})
}

// submitNotes renders the note form prefilled with the caller's existing
// note; a valid POST creates or replaces that note in place.
func (a *NoteController) submitNotes(c *gin.Context) {
	subject := a.resolveSubject(c)
	if subject == nil {
		return
	}
	user := session.GetLoginUser(c)

	if c.Request.Method == http.MethodPost {
		var form entity.NoteForm
		if err := c.ShouldBind(&form); err != nil {
			_ = session.AddFlash(c, "Note content cannot be empty.")
		} else {
			created, err := a.noteService.UpsertNote(user.Id, subject, form.Content)
			if err != nil {
				logger.Warning("upsert note err:", err)
				ErrorPage(c)
				return
			}
			if created {
				_ = session.AddFlash(c, "Note Added")
			} else {
				_ = session.AddFlash(c, "Note Updated")
			}
		}
	}

	current, err := a.noteService.NoteForUser(user.Id, subject)
	if err != nil {
		logger.Warning("load note err:", err)
		ErrorPage(c)
		return
	}
	content := ""
	if current != nil {
		content = current.Content
	}
	html(c, "submit.html", "Submit Note for "+subject.Name(), gin.H{
		"subject":    subject.Name(),
		"category":   subject.Category(),
		"content":    content,
		"submitPath": "/" + subject.Category() + "/" + subject.Name() + "/submit_notes/",
	})
}
