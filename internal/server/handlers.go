package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/timeline"
	"github.com/Zachkp/portfolio/internal/view"
)

const (
	noticeSent    = "Thank you for your message! I'll get back to you soon."
	noticeInvalid = "Please check the highlighted fields."
	noticeFailed  = "Sorry, there was an error sending your message. Please try again later."
)

// gallery returns a gallery with the requested category selected. Unknown
// categories leave the sentinel selected.
func (s *Server) gallery(c *gin.Context) *projects.Gallery {
	g := projects.NewGallery(s.site)
	if category := c.Query("category"); category != "" && !g.Select(category) {
		log.Printf("Ignoring unknown project category %q", category)
	}
	return g
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", view.NewPage(s.site, s.gallery(c), view.ContactForm{}))
}

// handleProjects returns the gallery fragment for HTMX and the whole page
// otherwise, so /projects?category=X links still work without JavaScript.
func (s *Server) handleProjects(c *gin.Context) {
	g := s.gallery(c)
	if c.GetHeader("HX-Request") != "true" {
		c.HTML(http.StatusOK, "index.html", view.NewPage(s.site, g, view.ContactForm{}))
		return
	}
	c.HTML(http.StatusOK, "project-gallery", view.NewProjects(g))
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", view.ContactForm{})
}

// readForm applies each posted field to an empty form.
func readForm(c *gin.Context) contact.Form {
	var form contact.Form
	for _, field := range contact.Fields {
		form, _ = form.Set(field, c.PostForm(string(field)))
	}
	return form
}

// handleContact validates and submits the form and answers with the form
// fragment. Values are kept after submission and the response never
// redirects.
func (s *Server) handleContact(c *gin.Context) {
	form := readForm(c)
	state := view.ContactForm{Values: form}

	if err := form.Validate(); err != nil {
		var fieldErrs contact.FieldErrors
		if errors.As(err, &fieldErrs) {
			state.Errors = fieldErrs
		}
		state.Notice, state.Failed = noticeInvalid, true
		s.renderContact(c, state)
		return
	}

	if err := s.submitter.Submit(c.Request.Context(), contact.NewSubmission(form)); err != nil {
		log.Printf("Error submitting contact form: %v", err)
		state.Notice, state.Failed = noticeFailed, true
		s.renderContact(c, state)
		return
	}

	state.Notice = noticeSent
	s.renderContact(c, state)
}

// renderContact answers HTMX with the form fragment. A plain form post
// gets the whole page with the form state in place.
func (s *Server) renderContact(c *gin.Context, state view.ContactForm) {
	if c.GetHeader("HX-Request") != "true" {
		c.HTML(http.StatusOK, "index.html", view.NewPage(s.site, projects.NewGallery(s.site), state))
		return
	}
	c.HTML(http.StatusOK, "contact-form", state)
}

// handleContactJSON is the same flow for non-HTML clients.
func (s *Server) handleContactJSON(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := form.Validate(); err != nil {
		var fieldErrs contact.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(httpStatus(err), gin.H{"error": "invalid form", "fields": fieldErrs})
			return
		}
		respondError(c, httpStatus(err), err.Error())
		return
	}

	submission := contact.NewSubmission(form)
	if err := s.submitter.Submit(c.Request.Context(), submission); err != nil {
		log.Printf("Error submitting contact form %s: %v", submission.ID, err)
		respondError(c, httpStatus(err), noticeFailed)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": submission.ID.String(), "status": "received"})
}

type connectorResponse struct {
	Top     float64 `json:"top"`
	Bottom  float64 `json:"bottom"`
	Height  float64 `json:"height"`
	Applied bool    `json:"applied"`
}

// handleConnector measures the connector line for one layout snapshot.
// When the endpoints are not laid out yet the default zero span is
// returned with applied=false.
func (s *Server) handleConnector(c *gin.Context) {
	var layout timeline.Layout
	if err := c.ShouldBindJSON(&layout); err != nil {
		respondError(c, http.StatusBadRequest, "invalid layout")
		return
	}

	var conn timeline.Connector
	applied := conn.Update(layout)
	pos := conn.Position()

	c.JSON(http.StatusOK, connectorResponse{
		Top:     pos.Top,
		Bottom:  pos.Bottom,
		Height:  pos.Height(),
		Applied: applied,
	})
}

func (s *Server) handleContent(c *gin.Context) {
	c.JSON(http.StatusOK, s.site)
}

func (s *Server) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"retention": retentionText(s.cfg.Retention),
		"delivers":  s.cfg.SMTP.Enabled(),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
