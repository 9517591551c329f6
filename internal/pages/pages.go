// Package pages renders the club's server-side HTML views.
package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/oseayemenre/upepo/internal/thread"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	upcomingOnHome    = 3
	discussionsOnBook = 5
	replyLevelsShown  = 2
)

// Source is the read side of the store the pages need.
type Source interface {
	GetCurrentBook(ctx context.Context) (*models.Book, error)
	ListUpcomingBooks(ctx context.Context, limit int) ([]models.Book, error)
	GetBookDetail(ctx context.Context, id uuid.UUID) (*models.Book, error)
	GetDiscussion(ctx context.Context, id uuid.UUID) (*models.Discussion, error)
	ListComments(ctx context.Context, discussionID uuid.UUID) ([]models.Comment, error)
	GetAdminStats(ctx context.Context, now time.Time) (*models.AdminStats, error)
}

type Pages struct {
	source    Source
	logger    logger.Logger
	templates map[string]*template.Template
	now       func() time.Time
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan 2")
	},
	"datetime": func(t time.Time) string {
		return t.Format("Jan 2, 15:04 MST")
	},
	"themes": func(s string) []string {
		if s == "" {
			return nil
		}
		return strings.Split(s, ",")
	},
	"isWeek": func(week *models.WeeklyPlan, id uuid.UUID) bool {
		return week != nil && week.ID == id
	},
}

// New parses every page against the shared layout.
func New(source Source, log logger.Logger) (*Pages, error) {
	p := &Pages{
		source:    source,
		logger:    log,
		templates: map[string]*template.Template{},
		now:       time.Now,
	}

	for _, name := range []string{"home", "book", "discussion", "admin"} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")

		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", name, err)
		}

		p.templates[name] = tmpl
	}

	return p, nil
}

// Routes expects auth.LoadSessionUser to run ahead of it.
func (p *Pages) Routes(r chi.Router) {
	r.Get("/", p.HandleHome)
	r.Get("/books/{bookId}", p.HandleBook)
	r.Get("/discussions/{discussionId}", p.HandleDiscussion)
	r.Get("/admin", p.HandleAdmin)
}

type base struct {
	Title string
	User  *models.User
}

func newBase(r *http.Request, title string) base {
	user, _ := auth.UserFromContext(r.Context())
	return base{Title: title, User: user}
}

func (p *Pages) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer

	if err := p.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		p.logger.Error(err.Error(), "service", "pages.render", "page", name)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (p *Pages) fail(w http.ResponseWriter, service string, err error) {
	if errors.Is(err, store.ErrBookNotFound) || errors.Is(err, store.ErrDiscussionNotFound) {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	p.logger.Error(err.Error(), "service", service)
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}

func (p *Pages) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := struct {
		base
		Current  *models.Book
		Week     *models.WeeklyPlan
		Upcoming []models.Book
	}{base: newBase(r, "Home")}

	current, err := p.source.GetCurrentBook(r.Context())

	switch {
	case errors.Is(err, store.ErrBookNotFound):
	case err != nil:
		p.fail(w, "HandleHome", err)
		return
	default:
		detail, err := p.source.GetBookDetail(r.Context(), current.ID)

		if err != nil {
			p.fail(w, "HandleHome", err)
			return
		}

		data.Current = detail
		data.Week = reading.CurrentWeek(detail.WeeklyPlans, p.now())
	}

	data.Upcoming, err = p.source.ListUpcomingBooks(r.Context(), upcomingOnHome)

	if err != nil {
		p.fail(w, "HandleHome", err)
		return
	}

	p.render(w, "home", data)
}

func (p *Pages) HandleBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookId"))

	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	book, err := p.source.GetBookDetail(r.Context(), id)

	if err != nil {
		p.fail(w, "HandleBook", err)
		return
	}

	discussions := book.Discussions

	if len(discussions) > discussionsOnBook {
		discussions = discussions[:discussionsOnBook]
	}

	p.render(w, "book", struct {
		base
		Book        *models.Book
		Week        *models.WeeklyPlan
		Discussions []models.Discussion
	}{
		base:        newBase(r, book.Title),
		Book:        book,
		Week:        reading.CurrentWeek(book.WeeklyPlans, p.now()),
		Discussions: discussions,
	})
}

func (p *Pages) HandleDiscussion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "discussionId"))

	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	discussion, err := p.source.GetDiscussion(r.Context(), id)

	if err != nil {
		p.fail(w, "HandleDiscussion", err)
		return
	}

	comments, err := p.source.ListComments(r.Context(), id)

	if err != nil {
		p.fail(w, "HandleDiscussion", err)
		return
	}

	tree := thread.Build(comments)

	p.render(w, "discussion", struct {
		base
		Discussion *models.Discussion
		Comments   []models.CommentThread
		Count      int
	}{
		base:       newBase(r, discussion.Title),
		Discussion: discussion,
		Comments:   tree,
		Count:      thread.CountToDepth(tree, replyLevelsShown),
	})
}

// HandleAdmin sends anonymous and non-admin browsers back to the home page.
func (p *Pages) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())

	if !ok || !user.IsAdmin() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	stats, err := p.source.GetAdminStats(r.Context(), p.now())

	if err != nil {
		p.fail(w, "HandleAdmin", err)
		return
	}

	p.render(w, "admin", struct {
		base
		Stats *models.AdminStats
	}{
		base:  newBase(r, "Admin"),
		Stats: stats,
	})
}
