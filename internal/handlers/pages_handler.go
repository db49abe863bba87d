package handlers

import (
	"html"

	"github.com/complaintbox/backend/internal/roster"
	"github.com/gofiber/fiber/v2"
)

// PagesHandler serves the minimal public pages. The complaint form is behind
// the access gate middleware; everything else here is a plain stub.
type PagesHandler struct {
	roster *roster.Registry
}

func NewPagesHandler(r *roster.Registry) *PagesHandler {
	return &PagesHandler{roster: r}
}

func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Complaint Box</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}</style>
</head><body>
<h1>Complaint Box</h1>
<p>The complaint form is reachable only through the link or QR code you were given.</p>
</body></html>`)
}

func (h *PagesHandler) ComplaintForm(c *fiber.Ctx) error {
	options := `<option value="general">General complaint</option>`
	for _, person := range h.roster.All() {
		options += `<option value="` + html.EscapeString(person.ID) + `">` +
			html.EscapeString(person.Name) + ` (` + html.EscapeString(person.Role) + `)</option>`
	}

	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Submit a Complaint</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}textarea,select,button{width:100%;margin:8px 0;padding:8px;font-size:16px}#status{margin-top:12px}</style>
</head><body>
<h1>Submit a Complaint</h1>
<p>Your submission is anonymous. It can be between 10 and 5000 characters.</p>
<select id="person">` + options + `</select>
<textarea id="complaint" rows="8" placeholder="Describe your complaint"></textarea>
<button onclick="submitComplaint()">Submit</button>
<div id="status"></div>
<script>
async function submitComplaint() {
  const status = document.getElementById('status');
  const res = await fetch('/api/complaints', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      againstPersonId: document.getElementById('person').value,
      complaint: document.getElementById('complaint').value
    })
  });
  const body = await res.json();
  if (res.ok) {
    status.textContent = body.message;
    document.getElementById('complaint').value = '';
  } else {
    status.textContent = body.error || 'Something went wrong. Please try again.';
  }
}
</script>
</body></html>`)
}

// Roster returns the configured people the form's selector offers.
func (h *PagesHandler) Roster(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"people": h.roster.All()})
}
