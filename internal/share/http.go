package share

import (
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/muurk/roseday/internal/logging"
)

var cardTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>A rose for {{.Name}}</title>
<style>
body { background: #fff0f3; color: #881337; font-family: Georgia, serif; text-align: center; padding: 3rem 1rem; }
.rose { font-size: 5rem; }
h1 { color: #e11d48; }
#note { max-width: 32rem; margin: 0 auto; font-size: 1.3rem; line-height: 1.6; }
.style { color: #9f1239; font-style: italic; margin-top: 2rem; }
</style>
</head>
<body>
<div class="rose">🌹</div>
<h1>For {{.Name}}</h1>
<p id="note" data-note="{{.Note}}"></p>
<p class="style">{{.Icon}} {{.Label}}</p>
<script>
(function () {
  var el = document.getElementById("note");
  var ws;
  try { ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws"); }
  catch (e) { el.textContent = el.dataset.note; return; }
  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    if (m.done) { return; }
    el.textContent += (m.index > 0 ? " " : "") + m.word;
  };
  ws.onerror = function () { el.textContent = el.dataset.note; };
})();
</script>
</body>
</html>
`))

type cardView struct {
	Name  string
	Note  string
	Icon  string
	Label string
}

// Handler returns the routes of the share server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleCard)
	mux.HandleFunc("GET /note.json", s.handleNoteJSON)
	mux.HandleFunc("GET /ws", s.handleStream)
	return mux
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	logging.LogShareEvent(r.RemoteAddr, "card_viewed")

	info := s.card.Style.Info()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardTemplate.Execute(w, cardView{
		Name:  s.card.Name,
		Note:  s.card.Note,
		Icon:  info.Icon,
		Label: info.Label,
	}); err != nil {
		logging.Error("Failed to render card", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
	}
}

func (s *Server) handleNoteJSON(w http.ResponseWriter, r *http.Request) {
	logging.LogShareEvent(r.RemoteAddr, "note_fetched")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.card); err != nil {
		logging.Error("Failed to encode note", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
	}
}
